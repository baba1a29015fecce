package v1

import (
	"fmt"
	"time"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the API representation of a ledger entry. The ledger is
// append-only, entries are written by deposits and debt payments and can
// only be read here.
type Transaction struct {
	models.DefaultModel
	Direction models.TransactionDirection `json:"direction" example:"OUTFLOW"`                              // INFLOW or OUTFLOW
	Amount    decimal.Decimal             `json:"amount" example:"250.50"`                                  // Amount moved
	Note      string                      `json:"note" example:"Debt payment: Car loan"`                    // Note for the entry
	Date      time.Time                   `json:"date" example:"2026-01-02T15:04:05Z"`                      // Date the entry applies to
	Method    models.PaymentMethod        `json:"method" example:"BANK_TRANSFER"`                           // How the money moved
	CardID    *uuid.UUID                  `json:"cardId" example:"d1b4b8c6-bd1f-4e1d-8bc1-0f8bbd4e0e3f"`    // Card involved, if any
	ReserveID *uuid.UUID                  `json:"reserveId" example:"5b8dcc3a-fa5a-4ad6-9c42-1da0c53f40c2"` // Reserve involved, if any
	DebtID    *uuid.UUID                  `json:"debtId" example:"a4e9c9dd-4e3c-4b8c-bc47-536db7ac0a94"`    // Debt involved, if any
	Links     TransactionLinks            `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		Direction:    model.Direction,
		Amount:       model.Amount,
		Note:         model.Note,
		Date:         model.Date,
		Method:       model.Method,
		CardID:       model.CardID,
		ReserveID:    model.ReserveID,
		DebtID:       model.DebtID,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionResponse struct {
	Data Transaction `json:"data"` // Data for the transaction
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`       // List of transactions
	Pagination Pagination    `json:"pagination"` // Pagination information
}

type TransactionQueryFilter struct {
	Direction string `form:"direction"`                  // By direction (INFLOW, OUTFLOW)
	Method    string `form:"method"`                     // By payment method
	ReserveID string `form:"reserve"`                    // By the reserve involved
	DebtID    string `form:"debt"`                       // By the debt involved
	Offset    uint   `form:"offset" filterField:"false"` // The offset of the first Transaction returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`  // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	var reserveID, debtID *uuid.UUID

	if f.ReserveID != "" {
		parsed, err := httputil.UUIDFromString(f.ReserveID)
		if err != nil {
			return models.Transaction{}, err
		}
		reserveID = &parsed
	}

	if f.DebtID != "" {
		parsed, err := httputil.UUIDFromString(f.DebtID)
		if err != nil {
			return models.Transaction{}, err
		}
		debtID = &parsed
	}

	return models.Transaction{
		Direction: models.TransactionDirection(f.Direction),
		Method:    models.PaymentMethod(f.Method),
		ReserveID: reserveID,
		DebtID:    debtID,
	}, nil
}
