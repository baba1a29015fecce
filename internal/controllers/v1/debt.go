package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/httperror"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterDebtRoutes registers the routes for Debts with
// the RouterGroup that is passed.
func RegisterDebtRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDebtList)
		r.GET("", GetDebts)
		r.POST("", CreateDebt)
	}

	// Static lookup, needs to be registered before the ID route
	r.GET("/payment-methods", GetPaymentMethods)

	// Debt with ID
	{
		r.OPTIONS("/:id", OptionsDebtDetail)
		r.GET("/:id", GetDebt)
		r.PATCH("/:id", UpdateDebt)
		r.DELETE("/:id", DeleteDebt)
		r.POST("/:id/payments", PayDebt)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Debts
// @Success		204
// @Router			/v1/debts [options]
func OptionsDebtList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Debts
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [options]
func OptionsDebtDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	err = models.DB.First(&models.Debt{}, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Payment methods
// @Description	Returns the valid payment methods and the user's cards
// @Tags			Debts
// @Produce		json
// @Success		200	{object}	PaymentMethodsResponse
// @Failure		500	{object}	httperror.Error
// @Router			/v1/debts/payment-methods [get]
func GetPaymentMethods(c *gin.Context) {
	var cards []models.Card
	err := models.DB.Where(&models.Card{UserID: userID(c)}).Order("name ASC").Find(&cards).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	apiCards := make([]Card, 0)
	for _, card := range cards {
		apiCards = append(apiCards, newCard(c, card))
	}

	c.JSON(http.StatusOK, PaymentMethodsResponse{
		Data: PaymentMethods{
			Methods: models.PaymentMethods(),
			Cards:   apiCards,
		},
	})
}

// @Summary		Create debt
// @Description	Creates a new debt. When reserveId is set, the full amount is drawn from that reserve and the debt is created fully paid.
// @Tags			Debts
// @Accept			json
// @Produce		json
// @Success		201		{object}	DebtResponse
// @Failure		400		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			debt	body		DebtCreateRequest	true	"Debt"
// @Router			/v1/debts [post]
func CreateDebt(c *gin.Context) {
	var request DebtCreateRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	debt, err := models.CreateDebt(models.DB, userID(c), request.model(), request.ReserveID)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusCreated, DebtResponse{Data: newDebt(c, debt)})
}

// @Summary		List debts
// @Description	Returns a list of the user's debts
// @Tags			Debts
// @Produce		json
// @Success		200	{object}	DebtListResponse
// @Failure		400	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/v1/debts [get]
// @Param			name		query	string	false	"Fuzzy filter for the name"
// @Param			card		query	string	false	"Filter by card ID"
// @Param			paid		query	bool	false	"Filter by paid state"
// @Param			recurring	query	bool	false	"Filter by recurrence"
// @Param			offset		query	uint	false	"The offset of the first Debt returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Debts to return. Defaults to 50."
func GetDebts(c *gin.Context) {
	var filter DebtQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var debts []models.Debt

	q := models.DB.
		Order("start_date DESC, name ASC").
		Where(&models.Debt{UserID: userID(c)}).
		Where(filterModel, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err = q.Find(&debts).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	apiResources := make([]Debt, 0)
	for _, debt := range debts {
		apiResources = append(apiResources, newDebt(c, debt))
	}

	c.JSON(http.StatusOK, DebtListResponse{
		Data: apiResources,
		Pagination: Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get debt
// @Description	Returns a specific debt
// @Tags			Debts
// @Produce		json
// @Success		200	{object}	DebtResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [get]
func GetDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var debt models.Debt
	err = models.DB.First(&debt, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, DebtResponse{Data: newDebt(c, debt)})
}

// @Summary		Update debt
// @Description	Update an existing debt. Only values to be updated need to be specified. Payments cannot be changed here, use the payments endpoint.
// @Tags			Debts
// @Accept			json
// @Produce		json
// @Success		200	{object}	DebtResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id		path	URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			debt	body	DebtEditable	true	"Debt"
// @Router			/v1/debts/{id} [patch]
func UpdateDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var debt models.Debt
	err = models.DB.First(&debt, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DebtEditable{})
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var data DebtEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	err = models.DB.Model(&debt).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, DebtResponse{Data: newDebt(c, debt)})
}

// @Summary		Delete debt
// @Description	Deletes a debt
// @Tags			Debts
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [delete]
func DeleteDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var debt models.Debt
	err = models.DB.First(&debt, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	err = models.DB.Delete(&debt).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Pay debt
// @Description	Applies a payment to the debt. When reserveId is set, the amount is drawn from that reserve in the same transaction.
// @Tags			Debts
// @Accept			json
// @Produce		json
// @Success		200		{object}	PaymentResponse
// @Failure		400		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		PaymentRequest	true	"Payment"
// @Router			/v1/debts/{id}/payments [post]
func PayDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var request PaymentRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	debt, reserve, err := models.PayDebt(models.DB, userID(c), uri.ID.UUID, models.DebtPayment{
		Amount:    request.Amount,
		Method:    request.Method,
		CardID:    request.CardID,
		ReserveID: request.ReserveID,
	})
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	payment := Payment{
		Debt:      newDebt(c, debt),
		FullyPaid: debt.Paid,
	}

	if reserve != nil {
		r := newReserve(c, *reserve)
		payment.Reserve = &r
	}

	c.JSON(http.StatusOK, PaymentResponse{Data: payment})
}
