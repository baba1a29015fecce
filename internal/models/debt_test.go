package models_test

import (
	"errors"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestDebtValidation() {
	user := suite.createTestUser(models.User{})

	_, err := models.CreateDebt(models.DB, user.ID, models.Debt{
		Amount: decimal.NewFromFloat(100),
		Method: models.MethodCash,
	}, nil)
	suite.Assert().ErrorIs(err, models.ErrDebtNameRequired)

	_, err = models.CreateDebt(models.DB, user.ID, models.Debt{
		Name:   "Rent",
		Amount: decimal.Zero,
		Method: models.MethodCash,
	}, nil)
	suite.Assert().ErrorIs(err, models.ErrDebtAmountNotPositive)

	_, err = models.CreateDebt(models.DB, user.ID, models.Debt{
		Name:   "Rent",
		Amount: decimal.NewFromFloat(100),
		Method: "CHECK",
	}, nil)
	suite.Assert().ErrorIs(err, models.ErrPaymentMethodInvalid)
}

// TestCreateDebtFromReserveValidation checks that an invalid debt is
// rejected before the reserve is touched.
func (suite *TestSuiteStandard) TestCreateDebtFromReserveValidation() {
	user := suite.createTestUser(models.User{})
	reserve := suite.createTestReserve(models.Reserve{
		Name:   "Holiday fund",
		Value:  decimal.NewFromFloat(250),
		UserID: user.ID,
	})

	_, err := models.CreateDebt(models.DB, user.ID, models.Debt{
		Amount: decimal.NewFromFloat(100),
		Method: models.MethodCash,
	}, &reserve.ID)
	suite.Require().ErrorIs(err, models.ErrDebtNameRequired)

	// The reserve keeps its balance and the ledger only holds the
	// initial deposit
	balance, err := models.ReserveBalance(models.DB, user.ID, reserve.ID)
	suite.Require().Nil(err)
	suite.Assert().True(balance.Equal(decimal.NewFromFloat(250)), "balance is %s", balance)

	var entries int64
	suite.Require().Nil(models.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&entries).Error)
	suite.Assert().Equal(int64(1), entries)
}

func (suite *TestSuiteStandard) TestDebtRecurringHasNoEndDate() {
	user := suite.createTestUser(models.User{})

	end := types.NewDate(2026, 12, 1)
	debt, err := models.CreateDebt(models.DB, user.ID, models.Debt{
		Name:      "Streaming subscription",
		Amount:    decimal.NewFromFloat(19.90),
		StartDate: types.NewDate(2026, 1, 1),
		EndDate:   &end,
		Recurring: true,
		Method:    models.MethodCredit,
	}, nil)

	suite.Require().Nil(err)
	suite.Assert().Nil(debt.EndDate)
}

func (suite *TestSuiteStandard) TestPayDebtAccumulates() {
	user := suite.createTestUser(models.User{})
	debt := suite.createTestDebt(models.Debt{
		Name:   "Car loan",
		Amount: decimal.NewFromFloat(1000),
		UserID: user.ID,
	})

	// First partial payment
	updated, reserve, err := models.PayDebt(models.DB, user.ID, debt.ID, models.DebtPayment{
		Amount: decimal.NewFromFloat(400),
		Method: models.MethodCash,
	})
	suite.Require().Nil(err)
	suite.Assert().Nil(reserve)
	suite.Assert().True(updated.PaidAmount.Equal(decimal.NewFromFloat(400)), "PaidAmount is %s", updated.PaidAmount)
	suite.Assert().False(updated.Paid)

	// Second payment settles the debt
	updated, _, err = models.PayDebt(models.DB, user.ID, debt.ID, models.DebtPayment{
		Amount: decimal.NewFromFloat(600),
		Method: models.MethodCash,
	})
	suite.Require().Nil(err)
	suite.Assert().True(updated.PaidAmount.Equal(decimal.NewFromFloat(1000)), "PaidAmount is %s", updated.PaidAmount)
	suite.Assert().True(updated.Paid)

	// A fully paid debt rejects further payments
	_, _, err = models.PayDebt(models.DB, user.ID, debt.ID, models.DebtPayment{
		Amount: decimal.NewFromFloat(0.01),
		Method: models.MethodCash,
	})
	suite.Assert().ErrorIs(err, models.ErrDebtAlreadyPaid)

	// PaidAmount is unchanged after the rejection
	var reread models.Debt
	suite.Require().Nil(models.DB.First(&reread, debt.ID).Error)
	suite.Assert().True(reread.PaidAmount.Equal(decimal.NewFromFloat(1000)))
}

func (suite *TestSuiteStandard) TestPayDebtOverpaymentMarksPaid() {
	user := suite.createTestUser(models.User{})
	debt := suite.createTestDebt(models.Debt{
		Name:   "Dentist",
		Amount: decimal.NewFromFloat(149.99),
		UserID: user.ID,
	})

	updated, _, err := models.PayDebt(models.DB, user.ID, debt.ID, models.DebtPayment{
		Amount: decimal.NewFromFloat(150),
		Method: models.MethodDebit,
	})
	suite.Require().Nil(err)
	suite.Assert().True(updated.Paid, "payment above the principal must settle the debt")
}

func (suite *TestSuiteStandard) TestPayDebtValidation() {
	user := suite.createTestUser(models.User{})
	debt := suite.createTestDebt(models.Debt{
		Name:   "Utilities",
		Amount: decimal.NewFromFloat(80),
		UserID: user.ID,
	})

	_, _, err := models.PayDebt(models.DB, user.ID, debt.ID, models.DebtPayment{
		Amount: decimal.Zero,
		Method: models.MethodCash,
	})
	suite.Assert().ErrorIs(err, models.ErrPaymentAmountNotPositive)

	_, _, err = models.PayDebt(models.DB, user.ID, debt.ID, models.DebtPayment{
		Amount: decimal.NewFromFloat(10),
		Method: "CHECK",
	})
	suite.Assert().ErrorIs(err, models.ErrPaymentMethodInvalid)

	_, _, err = models.PayDebt(models.DB, user.ID, uuid.New(), models.DebtPayment{
		Amount: decimal.NewFromFloat(10),
		Method: models.MethodCash,
	})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestPayDebtOtherUser() {
	owner := suite.createTestUser(models.User{})
	stranger := suite.createTestUser(models.User{})

	debt := suite.createTestDebt(models.Debt{
		Name:   "Private debt",
		Amount: decimal.NewFromFloat(50),
		UserID: owner.ID,
	})

	_, _, err := models.PayDebt(models.DB, stranger.ID, debt.ID, models.DebtPayment{
		Amount: decimal.NewFromFloat(50),
		Method: models.MethodCash,
	})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestPayDebtFromReserve() {
	user := suite.createTestUser(models.User{})
	reserve := suite.createTestReserve(models.Reserve{
		Name:   "Emergency",
		Value:  decimal.NewFromFloat(500),
		UserID: user.ID,
	})

	balance, err := models.ReserveBalance(models.DB, user.ID, reserve.ID)
	suite.Require().Nil(err)
	suite.Assert().True(balance.Equal(decimal.NewFromFloat(500)), "balance is %s", balance)

	first := suite.createTestDebt(models.Debt{
		Name:   "Repair",
		Amount: decimal.NewFromFloat(300),
		UserID: user.ID,
	})

	updated, remaining, err := models.PayDebt(models.DB, user.ID, first.ID, models.DebtPayment{
		Amount:    decimal.NewFromFloat(300),
		Method:    models.MethodBankTransfer,
		ReserveID: &reserve.ID,
	})
	suite.Require().Nil(err)
	suite.Assert().True(updated.Paid)
	suite.Require().NotNil(remaining, "reserve with funds left must survive the draw")
	suite.Assert().True(remaining.Value.Equal(decimal.NewFromFloat(200)), "reserve value is %s", remaining.Value)

	// Draining the rest deletes the reserve
	second := suite.createTestDebt(models.Debt{
		Name:   "Insurance",
		Amount: decimal.NewFromFloat(200),
		UserID: user.ID,
	})

	_, gone, err := models.PayDebt(models.DB, user.ID, second.ID, models.DebtPayment{
		Amount:    decimal.NewFromFloat(200),
		Method:    models.MethodBankTransfer,
		ReserveID: &reserve.ID,
	})
	suite.Require().Nil(err)
	suite.Assert().Nil(gone)

	_, err = models.ReserveBalance(models.DB, user.ID, reserve.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestPayDebtInsufficientReserve() {
	user := suite.createTestUser(models.User{})
	reserve := suite.createTestReserve(models.Reserve{
		Name:   "Small stash",
		Value:  decimal.NewFromFloat(100),
		UserID: user.ID,
	})

	debt := suite.createTestDebt(models.Debt{
		Name:   "Vet bill",
		Amount: decimal.NewFromFloat(150),
		UserID: user.ID,
	})

	_, _, err := models.PayDebt(models.DB, user.ID, debt.ID, models.DebtPayment{
		Amount:    decimal.NewFromFloat(150),
		Method:    models.MethodBankTransfer,
		ReserveID: &reserve.ID,
	})
	suite.Require().ErrorIs(err, models.ErrReserveInsufficient)

	var insufficient models.InsufficientBalanceError
	suite.Require().True(errors.As(err, &insufficient))
	suite.Assert().True(insufficient.Available.Equal(decimal.NewFromFloat(100)), "available is %s", insufficient.Available)
	suite.Assert().True(insufficient.Requested.Equal(decimal.NewFromFloat(150)), "requested is %s", insufficient.Requested)

	// Nothing changed: the debt is untouched and the reserve keeps its balance
	var reread models.Debt
	suite.Require().Nil(models.DB.First(&reread, debt.ID).Error)
	suite.Assert().True(reread.PaidAmount.IsZero())
	suite.Assert().False(reread.Paid)

	balance, err := models.ReserveBalance(models.DB, user.ID, reserve.ID)
	suite.Require().Nil(err)
	suite.Assert().True(balance.Equal(decimal.NewFromFloat(100)), "balance is %s", balance)
}

// TestPayDebtConservation checks that the ledger outflows tagged to a debt
// add up to exactly the payments applied to it.
func (suite *TestSuiteStandard) TestPayDebtConservation() {
	user := suite.createTestUser(models.User{})
	reserve := suite.createTestReserve(models.Reserve{
		Name:   "Buffer",
		Value:  decimal.NewFromFloat(1000),
		UserID: user.ID,
	})

	debt := suite.createTestDebt(models.Debt{
		Name:   "Laptop installments",
		Amount: decimal.NewFromFloat(900),
		UserID: user.ID,
	})

	payments := []float64{150, 250.50, 499.50}
	for _, amount := range payments {
		_, _, err := models.PayDebt(models.DB, user.ID, debt.ID, models.DebtPayment{
			Amount:    decimal.NewFromFloat(amount),
			Method:    models.MethodBankTransfer,
			ReserveID: &reserve.ID,
		})
		suite.Require().Nil(err)
	}

	outflows, err := models.TransactionsSum(models.DB, models.Transaction{
		Direction: models.DirectionOutflow,
		DebtID:    &debt.ID,
		UserID:    user.ID,
	})
	suite.Require().Nil(err)
	suite.Assert().True(outflows.Equal(decimal.NewFromFloat(900)), "outflow sum is %s", outflows)

	var reread models.Debt
	suite.Require().Nil(models.DB.First(&reread, debt.ID).Error)
	suite.Assert().True(reread.PaidAmount.Equal(outflows))
}

func (suite *TestSuiteStandard) TestCreateDebtPaidFromReserve() {
	user := suite.createTestUser(models.User{})
	reserve := suite.createTestReserve(models.Reserve{
		Name:   "Vacation fund",
		Value:  decimal.NewFromFloat(800),
		UserID: user.ID,
	})

	debt, err := models.CreateDebt(models.DB, user.ID, models.Debt{
		Name:      "Flight tickets",
		Amount:    decimal.NewFromFloat(600),
		StartDate: types.NewDate(2026, 8, 1),
		Method:    models.MethodInstantTransfer,
	}, &reserve.ID)
	suite.Require().Nil(err)

	suite.Assert().True(debt.Paid)
	suite.Assert().True(debt.PaidAmount.Equal(decimal.NewFromFloat(600)))

	balance, err := models.ReserveBalance(models.DB, user.ID, reserve.ID)
	suite.Require().Nil(err)
	suite.Assert().True(balance.Equal(decimal.NewFromFloat(200)), "balance is %s", balance)

	// One outflow tagged to both the debt and the reserve
	outflows, err := models.TransactionsSum(models.DB, models.Transaction{
		Direction: models.DirectionOutflow,
		DebtID:    &debt.ID,
		ReserveID: &reserve.ID,
		UserID:    user.ID,
	})
	suite.Require().Nil(err)
	suite.Assert().True(outflows.Equal(decimal.NewFromFloat(600)))
}

func (suite *TestSuiteStandard) TestCreateDebtInsufficientReserveRollsBack() {
	user := suite.createTestUser(models.User{})
	reserve := suite.createTestReserve(models.Reserve{
		Name:   "Tiny fund",
		Value:  decimal.NewFromFloat(10),
		UserID: user.ID,
	})

	_, err := models.CreateDebt(models.DB, user.ID, models.Debt{
		Name:   "New phone",
		Amount: decimal.NewFromFloat(400),
		Method: models.MethodCredit,
	}, &reserve.ID)
	suite.Require().ErrorIs(err, models.ErrReserveInsufficient)

	// The debt row was rolled back together with the draw
	var count int64
	suite.Require().Nil(models.DB.Model(&models.Debt{}).Where("user_id = ?", user.ID).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestCreateDebtUnknownReserve() {
	user := suite.createTestUser(models.User{})

	missing := uuid.New()
	_, err := models.CreateDebt(models.DB, user.ID, models.Debt{
		Name:   "Gym membership",
		Amount: decimal.NewFromFloat(30),
		Method: models.MethodDebit,
	}, &missing)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
