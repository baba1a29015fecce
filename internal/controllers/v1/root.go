package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
}

type RootResponse struct {
	Links RootLinks `json:"links"` // Links for the v1 API
}

type RootLinks struct {
	Auth         string `json:"auth" example:"https://example.com/api/v1/auth"`                 // URL of the authentication endpoints
	Cards        string `json:"cards" example:"https://example.com/api/v1/cards"`               // URL of the Card collection endpoint
	Debts        string `json:"debts" example:"https://example.com/api/v1/debts"`               // URL of the Debt collection endpoint
	Reserves     string `json:"reserves" example:"https://example.com/api/v1/reserves"`         // URL of the Reserve collection endpoint
	Settings     string `json:"settings" example:"https://example.com/api/v1/settings"`         // URL of the Settings endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of the Transaction collection endpoint
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	RootResponse
// @Router			/v1 [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Auth:         url + "/v1/auth",
			Cards:        url + "/v1/cards",
			Debts:        url + "/v1/debts",
			Reserves:     url + "/v1/reserves",
			Settings:     url + "/v1/settings",
			Transactions: url + "/v1/transactions",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}
