package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reserve is a named pool of saved funds that can be drawn on to pay debts.
//
// The authoritative balance of a reserve is derived from the ledger:
// sum of its inflows minus sum of its outflows. Value caches that balance
// and is recomputed in the same transaction as every draw and deposit, so
// it never drifts from the ledger for committed state.
type Reserve struct {
	DefaultModel
	Name   string
	Value  decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Cached ledger-derived balance
	Type   ReserveType
	Note   string
	User   User      `json:"-"`
	UserID uuid.UUID `gorm:"index"`
}

// ReserveType is the kind of a reserve.
//
// swagger:enum ReserveType
type ReserveType string

const (
	ReserveTypeSavings       ReserveType = "SAVINGS"
	ReserveTypeInvestment    ReserveType = "INVESTMENT"
	ReserveTypeEmergencyFund ReserveType = "EMERGENCY_FUND"
	ReserveTypeOther         ReserveType = "OTHER"
)

// Valid reports whether the reserve type is one of the known types.
func (t ReserveType) Valid() bool {
	return t == ReserveTypeSavings || t == ReserveTypeInvestment || t == ReserveTypeEmergencyFund || t == ReserveTypeOther
}

// ReserveTypes returns all known reserve types.
func ReserveTypes() []ReserveType {
	return []ReserveType{
		ReserveTypeSavings,
		ReserveTypeInvestment,
		ReserveTypeEmergencyFund,
		ReserveTypeOther,
	}
}

var (
	ErrReserveNameRequired     = errors.New("the reserve name must be set")
	ErrReserveTypeInvalid      = errors.New("the specified reserve type is invalid")
	ErrReserveValueNotPositive = errors.New("the reserve starting value must be larger than zero")
	ErrDepositNotPositive      = errors.New("deposit amounts must be larger than zero")
	ErrReserveInsufficient     = errors.New("the reserve balance is insufficient")
)

// InsufficientBalanceError is returned when a draw requests more than the
// reserve holds. It carries both figures so that callers can render a
// precise message.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: %s is available, %s was requested", ErrReserveInsufficient, e.Available, e.Requested)
}

func (e InsufficientBalanceError) Unwrap() error {
	return ErrReserveInsufficient
}

// BeforeSave validates the reserve.
func (r *Reserve) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Note = strings.TrimSpace(r.Note)
	r.Value = r.Value.Round(2)

	if r.Name == "" {
		return ErrReserveNameRequired
	}

	if !r.Type.Valid() {
		return ErrReserveTypeInvalid
	}

	return nil
}

// Balance derives the usable balance of the reserve from the ledger.
//
// Sufficiency checks must call this on the same transaction that holds the
// lock on the reserve row, otherwise the value can be stale by the time it
// is used.
func (r Reserve) Balance(db *gorm.DB) (decimal.Decimal, error) {
	inflow, err := TransactionsSum(db, Transaction{
		Direction: DirectionInflow,
		ReserveID: &r.ID,
		UserID:    r.UserID,
	})
	if err != nil {
		return decimal.Zero, err
	}

	outflow, err := TransactionsSum(db, Transaction{
		Direction: DirectionOutflow,
		ReserveID: &r.ID,
		UserID:    r.UserID,
	})
	if err != nil {
		return decimal.Zero, err
	}

	return inflow.Sub(outflow), nil
}

// CreateReserve creates the reserve together with the initial deposit in
// the ledger, establishing balance == starting value.
func CreateReserve(db *gorm.DB, userID uuid.UUID, reserve Reserve) (Reserve, error) {
	reserve.UserID = userID
	reserve.Value = reserve.Value.Round(2)

	if !reserve.Value.IsPositive() {
		return Reserve{}, ErrReserveValueNotPositive
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&reserve).Error
		if err != nil {
			return err
		}

		deposit := Transaction{
			Direction: DirectionInflow,
			Amount:    reserve.Value,
			Note:      "Initial deposit",
			Method:    MethodBankTransfer,
			ReserveID: &reserve.ID,
			UserID:    userID,
		}
		return tx.Create(&deposit).Error
	})
	if err != nil {
		return Reserve{}, err
	}

	return reserve, nil
}

// ReserveDeposit are the caller supplied values for adding funds to a
// reserve.
type ReserveDeposit struct {
	Amount decimal.Decimal
	Note   string
	Method PaymentMethod
}

// AddToReserve appends an inflow to the ledger and updates the cached
// reserve value, both in one transaction.
func AddToReserve(db *gorm.DB, userID uuid.UUID, reserveID uuid.UUID, deposit ReserveDeposit) (Reserve, error) {
	deposit.Amount = deposit.Amount.Round(2)
	if !deposit.Amount.IsPositive() {
		return Reserve{}, ErrDepositNotPositive
	}

	if deposit.Note == "" {
		deposit.Note = "Deposit"
	}

	if deposit.Method == "" {
		deposit.Method = MethodBankTransfer
	}

	var reserve Reserve
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reserve, "id = ? AND user_id = ?", reserveID, userID).Error
		if err != nil {
			return err
		}

		inflow := Transaction{
			Direction: DirectionInflow,
			Amount:    deposit.Amount,
			Note:      deposit.Note,
			Method:    deposit.Method,
			ReserveID: &reserve.ID,
			UserID:    userID,
		}
		err = tx.Create(&inflow).Error
		if err != nil {
			return err
		}

		balance, err := reserve.Balance(tx)
		if err != nil {
			return err
		}

		reserve.Value = balance
		return tx.Save(&reserve).Error
	})
	if err != nil {
		return Reserve{}, err
	}

	return reserve, nil
}

// ReserveBalance returns the ledger-derived balance for a reserve.
func ReserveBalance(db *gorm.DB, userID uuid.UUID, reserveID uuid.UUID) (decimal.Decimal, error) {
	var reserve Reserve
	err := db.First(&reserve, "id = ? AND user_id = ?", reserveID, userID).Error
	if err != nil {
		return decimal.Zero, err
	}

	return reserve.Balance(db)
}

// ReservesTotal sums the ledger-derived balances of all reserves of the
// user.
func ReservesTotal(db *gorm.DB, userID uuid.UUID) (decimal.Decimal, error) {
	var reserves []Reserve
	err := db.Where(&Reserve{UserID: userID}).Find(&reserves).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, reserve := range reserves {
		balance, err := reserve.Balance(db)
		if err != nil {
			return decimal.Zero, err
		}

		total = total.Add(balance)
	}

	return total, nil
}

// drawFromReserve validates sufficiency against the ledger-derived balance,
// appends the outflow and shrinks or deletes the reserve.
//
// It must be called inside a transaction. The reserve row is locked for the
// rest of the transaction, so the balance cannot change between the check
// and the mutation.
//
// A reserve that is drawn down to zero ceases to exist: the row is deleted
// and nil is returned for it.
func drawFromReserve(tx *gorm.DB, userID uuid.UUID, reserveID uuid.UUID, amount decimal.Decimal, outflow Transaction) (*Reserve, error) {
	var reserve Reserve
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&reserve, "id = ? AND user_id = ?", reserveID, userID).Error
	if err != nil {
		return nil, err
	}

	balance, err := reserve.Balance(tx)
	if err != nil {
		return nil, err
	}

	if balance.LessThan(amount) {
		return nil, InsufficientBalanceError{Available: balance, Requested: amount}
	}

	outflow.Direction = DirectionOutflow
	outflow.Amount = amount
	outflow.ReserveID = &reserve.ID
	outflow.UserID = userID
	err = tx.Create(&outflow).Error
	if err != nil {
		return nil, err
	}

	remaining := balance.Sub(amount)
	if remaining.LessThanOrEqual(decimal.Zero) {
		err = tx.Delete(&reserve).Error
		if err != nil {
			return nil, err
		}

		return nil, nil
	}

	reserve.Value = remaining
	err = tx.Save(&reserve).Error
	if err != nil {
		return nil, err
	}

	return &reserve, nil
}
