package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Settings are the per-user financial settings driving the projection
// chart: the monthly income, the savings goal and the horizon of the
// simulation. Exactly one row exists per user.
type Settings struct {
	DefaultModel
	MonthlyIncome    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	SavingsGoal      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	SimulationMonths uint8           `gorm:"default:12"`
	User             User            `json:"-"`
	UserID           uuid.UUID       `gorm:"uniqueIndex"`
}

var ErrSettingsExist = errors.New("settings for this user already exist")

// BeforeSave normalizes the settings.
func (s *Settings) BeforeSave(_ *gorm.DB) error {
	s.MonthlyIncome = s.MonthlyIncome.Round(2)
	s.SavingsGoal = s.SavingsGoal.Round(2)

	if s.SimulationMonths == 0 {
		s.SimulationMonths = 12
	}

	return nil
}

// SettingsForUser returns the settings row for the user, an all zero one
// when nothing has been stored yet.
func SettingsForUser(db *gorm.DB, userID uuid.UUID) (Settings, error) {
	var settings Settings
	err := db.Where(&Settings{UserID: userID}).Limit(1).Find(&settings).Error
	if err != nil {
		return Settings{}, err
	}

	settings.UserID = userID
	return settings, nil
}

// UpsertSettings creates or updates the settings row for the user.
func UpsertSettings(db *gorm.DB, userID uuid.UUID, update Settings) (Settings, error) {
	var settings Settings
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&Settings{UserID: userID}).Limit(1).Find(&settings).Error
		if err != nil {
			return err
		}

		settings.UserID = userID
		settings.MonthlyIncome = update.MonthlyIncome
		settings.SavingsGoal = update.SavingsGoal
		settings.SimulationMonths = update.SimulationMonths

		return tx.Save(&settings).Error
	})
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}
