package v1

import (
	"fmt"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DebtEditable struct {
	Name      string               `json:"name" example:"Car loan" default:""`                            // Name of the debt
	Amount    decimal.Decimal      `json:"amount" example:"1500" multipleOf:"0.01"`                       // The principal
	StartDate types.Date           `json:"startDate" example:"2026-01-01"`                                // First day the debt applies to
	EndDate   *types.Date          `json:"endDate" example:"2026-12-01"`                                  // Last day the debt applies to, null for recurring debts
	Recurring bool                 `json:"recurring" example:"false" default:"false"`                     // Does the debt repeat monthly?
	Method    models.PaymentMethod `json:"method" example:"BANK_TRANSFER"`                                // How the debt is paid
	CardID    *uuid.UUID           `json:"cardId" example:"d1b4b8c6-bd1f-4e1d-8bc1-0f8bbd4e0e3f"`         // Card used to pay the debt
}

// model returns the database resource for the editable fields
func (editable DebtEditable) model() models.Debt {
	return models.Debt{
		Name:      editable.Name,
		Amount:    editable.Amount,
		StartDate: editable.StartDate,
		EndDate:   editable.EndDate,
		Recurring: editable.Recurring,
		Method:    editable.Method,
		CardID:    editable.CardID,
	}
}

// DebtCreateRequest is a DebtEditable with an optional reserve to pay the
// debt from on creation.
type DebtCreateRequest struct {
	DebtEditable
	ReserveID *uuid.UUID `json:"reserveId" example:"5b8dcc3a-fa5a-4ad6-9c42-1da0c53f40c2"` // Reserve to immediately pay the full debt from
}

// PaymentRequest are the caller supplied values for a debt payment.
type PaymentRequest struct {
	Amount    decimal.Decimal      `json:"amount" example:"250.50" multipleOf:"0.01"`                 // Amount to pay
	Method    models.PaymentMethod `json:"method" example:"BANK_TRANSFER"`                            // How the payment is made
	CardID    *uuid.UUID           `json:"cardId" example:"d1b4b8c6-bd1f-4e1d-8bc1-0f8bbd4e0e3f"`     // Card used for the payment
	ReserveID *uuid.UUID           `json:"reserveId" example:"5b8dcc3a-fa5a-4ad6-9c42-1da0c53f40c2"`  // Reserve to draw the payment from
}

type DebtLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/debts/d1b4b8c6-bd1f-4e1d-8bc1-0f8bbd4e0e3f"`              // The debt itself
	Payments string `json:"payments" example:"https://example.com/api/v1/debts/d1b4b8c6-bd1f-4e1d-8bc1-0f8bbd4e0e3f/payments"` // Endpoint to apply payments
	Ledger   string `json:"ledger" example:"https://example.com/api/v1/transactions?debt=d1b4b8c6-bd1f-4e1d-8bc1-0f8bbd4e0e3f"` // Ledger entries referencing the debt
}

// Debt is the API representation of a Debt.
type Debt struct {
	models.DefaultModel
	DebtEditable
	PaidAmount decimal.Decimal `json:"paidAmount" example:"500"` // Sum of all payments applied so far
	Paid       bool            `json:"paid" example:"false"`     // Is the debt fully paid?
	Links      DebtLinks       `json:"links"`
}

func newDebt(c *gin.Context, model models.Debt) Debt {
	url := c.GetString(string(models.DBContextURL))

	return Debt{
		DefaultModel: model.DefaultModel,
		DebtEditable: DebtEditable{
			Name:      model.Name,
			Amount:    model.Amount,
			StartDate: model.StartDate,
			EndDate:   model.EndDate,
			Recurring: model.Recurring,
			Method:    model.Method,
			CardID:    model.CardID,
		},
		PaidAmount: model.PaidAmount,
		Paid:       model.Paid,
		Links: DebtLinks{
			Self:     fmt.Sprintf("%s/v1/debts/%s", url, model.ID),
			Payments: fmt.Sprintf("%s/v1/debts/%s/payments", url, model.ID),
			Ledger:   fmt.Sprintf("%s/v1/transactions?debt=%s", url, model.ID),
		},
	}
}

type DebtResponse struct {
	Data Debt `json:"data"` // Data for the debt
}

type DebtListResponse struct {
	Data       []Debt     `json:"data"`       // List of debts
	Pagination Pagination `json:"pagination"` // Pagination information
}

// Payment is the result of applying a payment to a debt.
type Payment struct {
	Debt      Debt     `json:"debt"`      // The debt after the payment
	Reserve   *Reserve `json:"reserve"`   // The reserve drawn on, null when none was used or it was exhausted
	FullyPaid bool     `json:"fullyPaid"` // Did this payment settle the debt?
}

type PaymentResponse struct {
	Data Payment `json:"data"` // Data for the payment
}

// PaymentMethods is the static method enum together with the user's
// cards, everything a client needs to render a payment form.
type PaymentMethods struct {
	Methods []models.PaymentMethod `json:"methods"` // The valid payment methods
	Cards   []Card                 `json:"cards"`   // The user's cards
}

type PaymentMethodsResponse struct {
	Data PaymentMethods `json:"data"` // Data for the payment methods
}

type DebtQueryFilter struct {
	Name      string `form:"name" filterField:"false"`   // Fuzzy filter for the debt name
	CardID    string `form:"card"`                       // By card the debt is paid with
	Paid      bool   `form:"paid"`                       // Is the debt fully paid?
	Recurring bool   `form:"recurring"`                  // Does the debt repeat monthly?
	Offset    uint   `form:"offset" filterField:"false"` // The offset of the first Debt returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`  // Maximum number of Debts to return. Defaults to 50.
}

func (f DebtQueryFilter) model() (models.Debt, error) {
	var cardID *uuid.UUID
	if f.CardID != "" {
		parsed, err := httputil.UUIDFromString(f.CardID)
		if err != nil {
			return models.Debt{}, err
		}
		cardID = &parsed
	}

	return models.Debt{
		CardID:    cardID,
		Paid:      f.Paid,
		Recurring: f.Recurring,
	}, nil
}
