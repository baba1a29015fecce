package models_test

import (
	"time"

	"github.com/centsible/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionValidation() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Transaction{
		Direction: models.DirectionOutflow,
		Amount:    decimal.Zero,
		Method:    models.MethodCash,
		UserID:    user.ID,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrTransactionAmountNotPositive)

	err = models.DB.Create(&models.Transaction{
		Direction: "SIDEWAYS",
		Amount:    decimal.NewFromFloat(10),
		Method:    models.MethodCash,
		UserID:    user.ID,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrTransactionDirectionInvalid)

	err = models.DB.Create(&models.Transaction{
		Direction: models.DirectionInflow,
		Amount:    decimal.NewFromFloat(10),
		Method:    "IOU",
		UserID:    user.ID,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrPaymentMethodInvalid)
}

func (suite *TestSuiteStandard) TestTransactionAmountRounded() {
	user := suite.createTestUser(models.User{})

	transaction := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromFloat(12.345),
		UserID: user.ID,
	})

	suite.Assert().True(transaction.Amount.Equal(decimal.NewFromFloat(12.35)), "amount is %s", transaction.Amount)
}

func (suite *TestSuiteStandard) TestTransactionDateUTC() {
	user := suite.createTestUser(models.User{})

	loc, err := time.LoadLocation("America/Sao_Paulo")
	suite.Require().Nil(err)

	transaction := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromFloat(10),
		Date:   time.Date(2026, 3, 14, 21, 0, 0, 0, loc),
		UserID: user.ID,
	})

	var reread models.Transaction
	suite.Require().Nil(models.DB.First(&reread, transaction.ID).Error)
	suite.Assert().Equal(time.UTC, reread.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionDateDefaults() {
	user := suite.createTestUser(models.User{})

	transaction := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromFloat(10),
		UserID: user.ID,
	})

	suite.Assert().False(transaction.Date.IsZero())
}

func (suite *TestSuiteStandard) TestTransactionsSum() {
	user := suite.createTestUser(models.User{})
	reserve := suite.createTestReserve(models.Reserve{
		Name:   "Summed",
		Value:  decimal.NewFromFloat(100),
		UserID: user.ID,
	})

	suite.createTestTransaction(models.Transaction{
		Direction: models.DirectionInflow,
		Amount:    decimal.NewFromFloat(25.50),
		ReserveID: &reserve.ID,
		UserID:    user.ID,
	})
	suite.createTestTransaction(models.Transaction{
		Direction: models.DirectionOutflow,
		Amount:    decimal.NewFromFloat(10),
		ReserveID: &reserve.ID,
		UserID:    user.ID,
	})

	inflows, err := models.TransactionsSum(models.DB, models.Transaction{
		Direction: models.DirectionInflow,
		ReserveID: &reserve.ID,
		UserID:    user.ID,
	})
	suite.Require().Nil(err)
	// Initial deposit from reserve creation plus the explicit inflow
	suite.Assert().True(inflows.Equal(decimal.NewFromFloat(125.50)), "inflows are %s", inflows)

	outflows, err := models.TransactionsSum(models.DB, models.Transaction{
		Direction: models.DirectionOutflow,
		ReserveID: &reserve.ID,
		UserID:    user.ID,
	})
	suite.Require().Nil(err)
	suite.Assert().True(outflows.Equal(decimal.NewFromFloat(10)))
}

func (suite *TestSuiteStandard) TestTransactionsSumEmpty() {
	user := suite.createTestUser(models.User{})

	sum, err := models.TransactionsSum(models.DB, models.Transaction{
		Direction: models.DirectionInflow,
		UserID:    user.ID,
	})
	suite.Require().Nil(err)
	suite.Assert().True(sum.IsZero())
}
