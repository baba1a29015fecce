package models_test

import (
	"github.com/centsible/backend/internal/models"
)

func (suite *TestSuiteStandard) TestUserValidation() {
	err := models.DB.Create(&models.User{Email: "no-name@example.com"}).Error
	suite.Assert().ErrorIs(err, models.ErrUserNameRequired)

	err = models.DB.Create(&models.User{Name: "No Mail"}).Error
	suite.Assert().ErrorIs(err, models.ErrUserEmailRequired)
}

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := suite.createTestUser(models.User{Email: "  Mixed.Case@Example.COM "})
	suite.Assert().Equal("mixed.case@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	suite.createTestUser(models.User{Email: "taken@example.com"})

	err := models.DB.Create(&models.User{
		Name:  "Copycat",
		Email: "taken@example.com",
	}).Error
	suite.Assert().ErrorIs(err, models.ErrEmailAlreadyInUse)
}

func (suite *TestSuiteStandard) TestUserByEmail() {
	user := suite.createTestUser(models.User{Email: "findme@example.com"})

	found, err := models.UserByEmail(models.DB, "findme@example.com")
	suite.Require().Nil(err)
	suite.Assert().Equal(user.ID, found.ID)

	_, err = models.UserByEmail(models.DB, "ghost@example.com")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
