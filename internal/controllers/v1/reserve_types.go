package v1

import (
	"fmt"

	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReserveEditable struct {
	Name  string             `json:"name" example:"Emergency fund" default:""`             // Name of the reserve
	Value decimal.Decimal    `json:"value" example:"500" multipleOf:"0.01"`                // Starting value, recorded as the initial deposit
	Type  models.ReserveType `json:"type" example:"EMERGENCY_FUND" default:"SAVINGS"`      // SAVINGS, INVESTMENT, EMERGENCY_FUND or OTHER
	Note  string             `json:"note" example:"Six months of expenses" default:""`     // A longer description for the reserve
}

// model returns the database resource for the editable fields
func (editable ReserveEditable) model() models.Reserve {
	return models.Reserve{
		Name:  editable.Name,
		Value: editable.Value,
		Type:  editable.Type,
		Note:  editable.Note,
	}
}

// ReserveUpdatable are the fields that can be changed after creation. The
// value is ledger-derived and only changes through deposits and draws.
type ReserveUpdatable struct {
	Name string             `json:"name" example:"Emergency fund"`    // Name of the reserve
	Type models.ReserveType `json:"type" example:"EMERGENCY_FUND"`    // SAVINGS, INVESTMENT, EMERGENCY_FUND or OTHER
	Note string             `json:"note" example:"Six months worth"`  // A longer description for the reserve
}

// DepositRequest are the caller supplied values for adding funds.
type DepositRequest struct {
	ReserveID uuid.UUID            `json:"reserveId" example:"5b8dcc3a-fa5a-4ad6-9c42-1da0c53f40c2"` // Reserve to add the funds to
	Amount    decimal.Decimal      `json:"amount" example:"100" multipleOf:"0.01"`                   // Amount to add
	Note      string               `json:"note" example:"Salary leftover"`                           // A note for the ledger entry
	Method    models.PaymentMethod `json:"method" example:"BANK_TRANSFER"`                           // How the funds arrived
}

type ReserveLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/reserves/5b8dcc3a-fa5a-4ad6-9c42-1da0c53f40c2"`            // The reserve itself
	Balance string `json:"balance" example:"https://example.com/api/v1/reserves/5b8dcc3a-fa5a-4ad6-9c42-1da0c53f40c2/balance"` // The ledger-derived balance
	Ledger  string `json:"ledger" example:"https://example.com/api/v1/transactions?reserve=5b8dcc3a-fa5a-4ad6-9c42-1da0c53f40c2"` // Ledger entries referencing the reserve
}

// Reserve is the API representation of a Reserve.
type Reserve struct {
	models.DefaultModel
	ReserveEditable
	Links ReserveLinks `json:"links"`
}

func newReserve(c *gin.Context, model models.Reserve) Reserve {
	url := c.GetString(string(models.DBContextURL))

	return Reserve{
		DefaultModel: model.DefaultModel,
		ReserveEditable: ReserveEditable{
			Name:  model.Name,
			Value: model.Value,
			Type:  model.Type,
			Note:  model.Note,
		},
		Links: ReserveLinks{
			Self:    fmt.Sprintf("%s/v1/reserves/%s", url, model.ID),
			Balance: fmt.Sprintf("%s/v1/reserves/%s/balance", url, model.ID),
			Ledger:  fmt.Sprintf("%s/v1/transactions?reserve=%s", url, model.ID),
		},
	}
}

type ReserveResponse struct {
	Data Reserve `json:"data"` // Data for the reserve
}

type ReserveListResponse struct {
	Data       []Reserve  `json:"data"`       // List of reserves
	Pagination Pagination `json:"pagination"` // Pagination information
}

type BalanceResponse struct {
	Data Balance `json:"data"` // Data for the balance
}

type Balance struct {
	Balance decimal.Decimal `json:"balance" example:"123.45"` // The ledger-derived balance
}

type TotalResponse struct {
	Data Total `json:"data"` // Data for the total
}

type Total struct {
	Total decimal.Decimal `json:"total" example:"1234.56"` // Sum of all reserve balances
}

type ReserveQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // Fuzzy filter for the reserve name
	Type   string `form:"type"`                       // By reserve type
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Reserve returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Reserves to return. Defaults to 50.
}

func (f ReserveQueryFilter) model() models.Reserve {
	return models.Reserve{
		Type: models.ReserveType(f.Type),
	}
}
