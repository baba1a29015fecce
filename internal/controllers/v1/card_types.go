package v1

import (
	"fmt"

	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CardEditable struct {
	Name       string          `json:"name" example:"Platinum" default:""`                       // Name of the card
	Type       models.CardType `json:"type" example:"CREDIT" default:"DEBIT"`                    // CREDIT, DEBIT or CREDIT_DEBIT
	Bank       string          `json:"bank" example:"Acme Bank" default:""`                      // Name of the issuing bank
	Limit      decimal.Decimal `json:"limit" example:"5000" default:"0" multipleOf:"0.01"`       // Credit limit, only for credit cards
	ClosingDay uint8           `json:"closingDay" example:"2" default:"0" maximum:"31"`          // Day of the month the invoice closes
	DueDay     uint8           `json:"dueDay" example:"10" default:"0" maximum:"31"`             // Day of the month the invoice is due
}

// model returns the database resource for the editable fields
func (editable CardEditable) model() models.Card {
	return models.Card{
		Name:       editable.Name,
		Type:       editable.Type,
		Bank:       editable.Bank,
		Limit:      editable.Limit,
		ClosingDay: editable.ClosingDay,
		DueDay:     editable.DueDay,
	}
}

type CardLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/cards/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`          // The card itself
	Debts string `json:"debts" example:"https://example.com/api/v1/debts?card=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`    // Debts paid with this card
}

// Card is the API representation of a Card.
type Card struct {
	models.DefaultModel
	CardEditable
	Links CardLinks `json:"links"`
}

func newCard(c *gin.Context, model models.Card) Card {
	url := c.GetString(string(models.DBContextURL))

	return Card{
		DefaultModel: model.DefaultModel,
		CardEditable: CardEditable{
			Name:       model.Name,
			Type:       model.Type,
			Bank:       model.Bank,
			Limit:      model.Limit,
			ClosingDay: model.ClosingDay,
			DueDay:     model.DueDay,
		},
		Links: CardLinks{
			Self:  fmt.Sprintf("%s/v1/cards/%s", url, model.ID),
			Debts: fmt.Sprintf("%s/v1/debts?card=%s", url, model.ID),
		},
	}
}

type CardResponse struct {
	Data Card `json:"data"` // Data for the card
}

type CardListResponse struct {
	Data       []Card     `json:"data"`       // List of cards
	Pagination Pagination `json:"pagination"` // Pagination information
}

type CardTypesResponse struct {
	Data []models.CardType `json:"data"` // The valid card types
}

type CardQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // Fuzzy filter for the card name
	Bank   string `form:"bank" filterField:"false"`   // Fuzzy filter for the bank name
	Type   string `form:"type"`                       // By card type
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Card returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Cards to return. Defaults to 50.
}

func (f CardQueryFilter) model() models.Card {
	return models.Card{
		Type: models.CardType(f.Type),
	}
}
