package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is one immutable ledger entry: money flowing into or out of
// a reserve, optionally tied to a debt payment.
//
// Entries are append only. The core never updates or deletes them, it only
// aggregates them to derive reserve balances.
type Transaction struct {
	DefaultModel
	Direction TransactionDirection `gorm:"index"`
	Amount    decimal.Decimal      `gorm:"type:DECIMAL(20,8)"`
	Note      string
	Date      time.Time
	Method    PaymentMethod
	Card      *Card `json:"-"`
	CardID    *uuid.UUID
	Reserve   *Reserve `json:"-"`
	ReserveID *uuid.UUID `gorm:"index"`
	Debt      *Debt      `json:"-"`
	DebtID    *uuid.UUID `gorm:"index"`
	User      User       `json:"-"`
	UserID    uuid.UUID  `gorm:"index"`
}

// TransactionDirection is the direction of a ledger entry.
//
// swagger:enum TransactionDirection
type TransactionDirection string

const (
	DirectionInflow  TransactionDirection = "INFLOW"
	DirectionOutflow TransactionDirection = "OUTFLOW"
)

// Valid reports whether the direction is one of the known directions.
func (d TransactionDirection) Valid() bool {
	return d == DirectionInflow || d == DirectionOutflow
}

// PaymentMethod is the way a payment was made.
//
// swagger:enum PaymentMethod
type PaymentMethod string

const (
	MethodDebit           PaymentMethod = "DEBIT"
	MethodCredit          PaymentMethod = "CREDIT"
	MethodCash            PaymentMethod = "CASH"
	MethodInstantTransfer PaymentMethod = "INSTANT_TRANSFER"
	MethodBankTransfer    PaymentMethod = "BANK_TRANSFER"
	MethodOther           PaymentMethod = "OTHER"
)

// PaymentMethods lists all valid payment methods.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		MethodDebit,
		MethodCredit,
		MethodCash,
		MethodInstantTransfer,
		MethodBankTransfer,
		MethodOther,
	}
}

// Valid reports whether the payment method is one of the known methods.
func (m PaymentMethod) Valid() bool {
	for _, method := range PaymentMethods() {
		if m == method {
			return true
		}
	}

	return false
}

var (
	ErrTransactionAmountNotPositive = errors.New("ledger transaction amounts must be larger than zero")
	ErrTransactionDirectionInvalid  = errors.New("the specified transaction direction is invalid")
	ErrPaymentMethodInvalid         = errors.New("the specified payment method is invalid")
)

// BeforeSave validates the ledger entry and sets the timezone for the
// Date to UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)
	t.Amount = t.Amount.Round(2)

	if !t.Direction.Valid() {
		return ErrTransactionDirectionInvalid
	}

	if !t.Method.Valid() {
		return ErrPaymentMethodInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// TransactionsSum returns the sum of all ledger transactions matching the
// Transaction struct passed in.
func TransactionsSum(db *gorm.DB, match Transaction) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Model(&Transaction{}).
		Where(&match).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal.Round(2), nil
}
