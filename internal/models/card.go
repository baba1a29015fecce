package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Card represents a payment card, e.g. a bank debit or credit card.
type Card struct {
	DefaultModel
	Name       string
	Type       CardType
	Bank       string
	Limit      decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Credit limit, only used for credit cards
	ClosingDay uint8           // Day of month the invoice closes, only used for credit cards
	DueDay     uint8           // Day of month the invoice is due, only used for credit cards
	User       User            `json:"-"`
	UserID     uuid.UUID       `gorm:"index"`
}

// CardType is the type of a payment card.
//
// swagger:enum CardType
type CardType string

const (
	CardTypeCredit      CardType = "CREDIT"
	CardTypeDebit       CardType = "DEBIT"
	CardTypeCreditDebit CardType = "CREDIT_DEBIT"
)

// Valid reports whether the card type is one of the known types.
func (t CardType) Valid() bool {
	return t == CardTypeCredit || t == CardTypeDebit || t == CardTypeCreditDebit
}

// Credit reports whether the card has a credit function.
func (t CardType) Credit() bool {
	return t == CardTypeCredit || t == CardTypeCreditDebit
}

// CardTypes returns all known card types.
func CardTypes() []CardType {
	return []CardType{
		CardTypeCredit,
		CardTypeDebit,
		CardTypeCreditDebit,
	}
}

var (
	ErrCardNameRequired       = errors.New("the card name must be set")
	ErrCardBankRequired       = errors.New("the card bank must be set")
	ErrCardTypeInvalid        = errors.New("the specified card type is invalid")
	ErrCardInvoiceDaysInvalid = errors.New("credit cards need a closing day and a due day between 1 and 31")
	ErrCardLimitNotPositive   = errors.New("credit cards need a limit larger than zero")
	ErrCardInUse              = errors.New("the card cannot be deleted because it is referenced by a debt")
)

// BeforeSave validates the card.
//
// The invoice days and the limit are only meaningful for cards with a
// credit function and are zeroed for debit only cards.
func (c *Card) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Bank = strings.TrimSpace(c.Bank)

	if c.Name == "" {
		return ErrCardNameRequired
	}

	if c.Bank == "" {
		return ErrCardBankRequired
	}

	if !c.Type.Valid() {
		return ErrCardTypeInvalid
	}

	if c.Type.Credit() {
		if c.ClosingDay < 1 || c.ClosingDay > 31 || c.DueDay < 1 || c.DueDay > 31 {
			return ErrCardInvoiceDaysInvalid
		}

		if !c.Limit.IsPositive() {
			return ErrCardLimitNotPositive
		}

		c.Limit = c.Limit.Round(2)
		return nil
	}

	c.Limit = decimal.Zero
	c.ClosingDay = 0
	c.DueDay = 0

	return nil
}

// BeforeDelete blocks deletion while debts reference the card.
func (c *Card) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Debt{}).Where("card_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrCardInUse
	}

	return nil
}
