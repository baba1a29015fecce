package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Debt is a tracked payable obligation.
//
// Amount is the principal, PaidAmount accumulates payments. Paid is
// derived from the two on every payment: a debt is fully paid once
// PaidAmount reaches the principal. Comparisons use >= so that rounding
// in the last installment cannot keep a debt open forever.
type Debt struct {
	DefaultModel
	Name       string
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The principal
	PaidAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Sum of all payments applied so far
	Paid       bool
	StartDate  types.Date
	EndDate    *types.Date // nil for recurring debts
	Recurring  bool
	Method     PaymentMethod
	Card       *Card `json:"-"`
	CardID     *uuid.UUID
	User       User      `json:"-"`
	UserID     uuid.UUID `gorm:"index"`
}

var (
	ErrDebtNameRequired         = errors.New("the debt name must be set")
	ErrDebtAmountNotPositive    = errors.New("the debt amount must be larger than zero")
	ErrDebtAlreadyPaid          = errors.New("the debt is already fully paid")
	ErrPaymentAmountNotPositive = errors.New("payment amounts must be larger than zero")
)

// validate normalizes and checks the debt. Recurring debts have no end
// date, an end date sent by the client is discarded.
func (d *Debt) validate() error {
	d.Name = strings.TrimSpace(d.Name)
	d.Amount = d.Amount.Round(2)
	d.PaidAmount = d.PaidAmount.Round(2)

	if d.Name == "" {
		return ErrDebtNameRequired
	}

	if !d.Amount.IsPositive() {
		return ErrDebtAmountNotPositive
	}

	if !d.Method.Valid() {
		return ErrPaymentMethodInvalid
	}

	if d.Recurring {
		d.EndDate = nil
	}

	return nil
}

func (d *Debt) BeforeSave(_ *gorm.DB) error {
	return d.validate()
}

// CreateDebt creates a debt for the user.
//
// When a reserve is designated, the debt is created fully paid and the
// whole amount is drawn from the reserve in the same transaction: the
// reserve is locked and checked for sufficiency, the outflow is recorded
// in the ledger and the reserve is shrunk or deleted. Any failure rolls
// everything back, including the debt row.
func CreateDebt(db *gorm.DB, userID uuid.UUID, debt Debt, reserveID *uuid.UUID) (Debt, error) {
	debt.UserID = userID

	// Reject invalid debts before a transaction is opened
	if err := debt.validate(); err != nil {
		return Debt{}, err
	}

	if reserveID == nil {
		debt.PaidAmount = decimal.Zero
		debt.Paid = false

		err := db.Create(&debt).Error
		if err != nil {
			return Debt{}, err
		}

		return debt, nil
	}

	debt.PaidAmount = debt.Amount.Round(2)
	debt.Paid = true

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&debt).Error
		if err != nil {
			return err
		}

		_, err = drawFromReserve(tx, userID, *reserveID, debt.Amount, Transaction{
			Note:   fmt.Sprintf("Payment: %s", debt.Name),
			Method: debt.Method,
			CardID: debt.CardID,
			DebtID: &debt.ID,
		})
		return err
	})
	if err != nil {
		return Debt{}, err
	}

	return debt, nil
}

// DebtPayment are the caller supplied values for paying a debt.
type DebtPayment struct {
	Amount    decimal.Decimal
	Method    PaymentMethod
	CardID    *uuid.UUID
	ReserveID *uuid.UUID
}

// PayDebt applies a payment to a debt.
//
// The debt row is locked for the whole transaction, two concurrent
// payments against the same debt serialize and the second one sees the
// first one's committed state. When the payment draws on a reserve, the
// reserve row is locked too, sufficiency is checked against the
// ledger-derived balance and the outflow is recorded. Reserve-less
// payments leave no ledger trace.
//
// The updated debt is returned together with the reserve the payment drew
// on. The reserve is nil when none was used or when the draw exhausted and
// deleted it.
func PayDebt(db *gorm.DB, userID uuid.UUID, debtID uuid.UUID, payment DebtPayment) (Debt, *Reserve, error) {
	payment.Amount = payment.Amount.Round(2)
	if !payment.Amount.IsPositive() {
		return Debt{}, nil, ErrPaymentAmountNotPositive
	}

	if !payment.Method.Valid() {
		return Debt{}, nil, ErrPaymentMethodInvalid
	}

	var debt Debt
	var reserve *Reserve
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&debt, "id = ? AND user_id = ?", debtID, userID).Error
		if err != nil {
			return err
		}

		// Once fully paid, a debt stays paid. Further payments would
		// inflate PaidAmount past the principal.
		if debt.Paid {
			return ErrDebtAlreadyPaid
		}

		debt.PaidAmount = debt.PaidAmount.Add(payment.Amount)
		debt.Paid = debt.PaidAmount.GreaterThanOrEqual(debt.Amount)
		debt.Method = payment.Method
		debt.CardID = payment.CardID
		err = tx.Save(&debt).Error
		if err != nil {
			return err
		}

		if payment.ReserveID != nil {
			reserve, err = drawFromReserve(tx, userID, *payment.ReserveID, payment.Amount, Transaction{
				Note:   fmt.Sprintf("Debt payment: %s", debt.Name),
				Method: payment.Method,
				CardID: payment.CardID,
				DebtID: &debt.ID,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Debt{}, nil, err
	}

	return debt, reserve, nil
}
