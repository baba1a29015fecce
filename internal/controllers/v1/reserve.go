package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/httperror"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterReserveRoutes registers the routes for Reserves with
// the RouterGroup that is passed.
func RegisterReserveRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsReserveList)
		r.GET("", GetReserves)
		r.POST("", CreateReserve)
	}

	// Collection level operations, need to be registered before the ID route
	r.POST("/deposits", CreateDeposit)
	r.GET("/total", GetReservesTotal)

	// Reserve with ID
	{
		r.OPTIONS("/:id", OptionsReserveDetail)
		r.GET("/:id", GetReserve)
		r.PUT("/:id", UpdateReserve)
		r.DELETE("/:id", DeleteReserve)
		r.GET("/:id/balance", GetReserveBalance)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reserves
// @Success		204
// @Router			/v1/reserves [options]
func OptionsReserveList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reserves
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reserves/{id} [options]
func OptionsReserveDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	err = models.DB.First(&models.Reserve{}, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	httputil.OptionsGetPutDelete(c)
}

// @Summary		Create reserve
// @Description	Creates a new reserve. The starting value is recorded as the initial deposit in the ledger.
// @Tags			Reserves
// @Accept			json
// @Produce		json
// @Success		201		{object}	ReserveResponse
// @Failure		400		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			reserve	body		ReserveEditable	true	"Reserve"
// @Router			/v1/reserves [post]
func CreateReserve(c *gin.Context) {
	var editable ReserveEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	reserve, err := models.CreateReserve(models.DB, userID(c), editable.model())
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusCreated, ReserveResponse{Data: newReserve(c, reserve)})
}

// @Summary		Add funds
// @Description	Adds funds to a reserve. The inflow is recorded in the ledger and the reserve value is updated in the same transaction.
// @Tags			Reserves
// @Accept			json
// @Produce		json
// @Success		201		{object}	ReserveResponse
// @Failure		400		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Param			deposit	body		DepositRequest	true	"Deposit"
// @Router			/v1/reserves/deposits [post]
func CreateDeposit(c *gin.Context) {
	var request DepositRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	reserve, err := models.AddToReserve(models.DB, userID(c), request.ReserveID, models.ReserveDeposit{
		Amount: request.Amount,
		Note:   request.Note,
		Method: request.Method,
	})
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusCreated, ReserveResponse{Data: newReserve(c, reserve)})
}

// @Summary		Total of all reserves
// @Description	Returns the sum of all reserve balances of the user
// @Tags			Reserves
// @Produce		json
// @Success		200	{object}	TotalResponse
// @Failure		500	{object}	httperror.Error
// @Router			/v1/reserves/total [get]
func GetReservesTotal(c *gin.Context) {
	total, err := models.ReservesTotal(models.DB, userID(c))
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, TotalResponse{Data: Total{Total: total}})
}

// @Summary		List reserves
// @Description	Returns a list of the user's reserves
// @Tags			Reserves
// @Produce		json
// @Success		200	{object}	ReserveListResponse
// @Failure		500	{object}	httperror.Error
// @Router			/v1/reserves [get]
// @Param			name	query	string	false	"Fuzzy filter for the name"
// @Param			type	query	string	false	"Filter by reserve type"
// @Param			offset	query	uint	false	"The offset of the first Reserve returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Reserves to return. Defaults to 50."
func GetReserves(c *gin.Context) {
	var filter ReserveQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var reserves []models.Reserve

	q := models.DB.
		Order("name ASC").
		Where(&models.Reserve{UserID: userID(c)}).
		Where(filter.model(), queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&reserves).Error
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

	apiResources := make([]Reserve, 0)
	for _, reserve := range reserves {
		apiResources = append(apiResources, newReserve(c, reserve))
	}

	c.JSON(http.StatusOK, ReserveListResponse{
		Data: apiResources,
		Pagination: Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get reserve
// @Description	Returns a specific reserve
// @Tags			Reserves
// @Produce		json
// @Success		200	{object}	ReserveResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reserves/{id} [get]
func GetReserve(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var reserve models.Reserve
	err = models.DB.First(&reserve, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, ReserveResponse{Data: newReserve(c, reserve)})
}

// @Summary		Reserve balance
// @Description	Returns the ledger-derived balance of the reserve
// @Tags			Reserves
// @Produce		json
// @Success		200	{object}	BalanceResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reserves/{id}/balance [get]
func GetReserveBalance(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	balance, err := models.ReserveBalance(models.DB, userID(c), uri.ID.UUID)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{Data: Balance{Balance: balance}})
}

// @Summary		Update reserve
// @Description	Updates the name, type and note of the reserve. The value only changes through deposits and draws.
// @Tags			Reserves
// @Accept			json
// @Produce		json
// @Success		200		{object}	ReserveResponse
// @Failure		400		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			reserve	body		ReserveUpdatable	true	"Reserve"
// @Router			/v1/reserves/{id} [put]
func UpdateReserve(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var reserve models.Reserve
	err = models.DB.First(&reserve, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var updatable ReserveUpdatable
	err = httputil.BindData(c, &updatable)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	reserve.Name = updatable.Name
	reserve.Type = updatable.Type
	reserve.Note = updatable.Note

	err = models.DB.Save(&reserve).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, ReserveResponse{Data: newReserve(c, reserve)})
}

// @Summary		Delete reserve
// @Description	Deletes a reserve. Ledger entries referencing it are kept.
// @Tags			Reserves
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reserves/{id} [delete]
func DeleteReserve(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var reserve models.Reserve
	err = models.DB.First(&reserve, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	err = models.DB.Delete(&reserve).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
