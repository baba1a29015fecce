package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/httperror"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterSettingsRoutes registers the routes for Settings with
// the RouterGroup that is passed. Settings are a singleton per user.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", GetSettings)
	r.POST("", UpsertSettings)
}

type SettingsEditable struct {
	MonthlyIncome    decimal.Decimal `json:"monthlyIncome" example:"4200" multipleOf:"0.01"` // Net income per month
	SavingsGoal      decimal.Decimal `json:"savingsGoal" example:"10000" multipleOf:"0.01"`  // Long term savings goal
	SimulationMonths uint8           `json:"simulationMonths" example:"12" default:"12"`     // Months projected in simulations
}

// model returns the database resource for the editable fields
func (editable SettingsEditable) model() models.Settings {
	return models.Settings{
		MonthlyIncome:    editable.MonthlyIncome,
		SavingsGoal:      editable.SavingsGoal,
		SimulationMonths: editable.SimulationMonths,
	}
}

// Settings is the API representation of the user's Settings.
type Settings struct {
	models.DefaultModel
	SettingsEditable
}

func newSettings(model models.Settings) Settings {
	return Settings{
		DefaultModel: model.DefaultModel,
		SettingsEditable: SettingsEditable{
			MonthlyIncome:    model.MonthlyIncome,
			SavingsGoal:      model.SavingsGoal,
			SimulationMonths: model.SimulationMonths,
		},
	}
}

type SettingsResponse struct {
	Data Settings `json:"data"` // Data for the settings
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Get settings
// @Description	Returns the user's settings. Defaults are returned when nothing is stored yet.
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		500	{object}	httperror.Error
// @Router			/v1/settings [get]
func GetSettings(c *gin.Context) {
	settings, err := models.SettingsForUser(models.DB, userID(c))
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: newSettings(settings)})
}

// @Summary		Save settings
// @Description	Creates or replaces the user's settings
// @Tags			Settings
// @Accept			json
// @Produce		json
// @Success		200			{object}	SettingsResponse
// @Failure		400			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			settings	body		SettingsEditable	true	"Settings"
// @Router			/v1/settings [post]
func UpsertSettings(c *gin.Context) {
	var editable SettingsEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	settings, err := models.UpsertSettings(models.DB, userID(c), editable.model())
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: newSettings(settings)})
}
