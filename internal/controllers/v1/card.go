package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/httperror"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterCardRoutes registers the routes for Cards with
// the RouterGroup that is passed.
func RegisterCardRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCardList)
		r.GET("", GetCards)
		r.POST("", CreateCard)
	}

	// Static lookup, needs to be registered before the ID route
	r.GET("/types", GetCardTypes)

	// Card with ID
	{
		r.OPTIONS("/:id", OptionsCardDetail)
		r.GET("/:id", GetCard)
		r.PUT("/:id", UpdateCard)
		r.DELETE("/:id", DeleteCard)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cards
// @Success		204
// @Router			/v1/cards [options]
func OptionsCardList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cards
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id} [options]
func OptionsCardDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	err = models.DB.First(&models.Card{}, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	httputil.OptionsGetPutDelete(c)
}

// @Summary		Card types
// @Description	Returns the valid card types
// @Tags			Cards
// @Produce		json
// @Success		200	{object}	CardTypesResponse
// @Router			/v1/cards/types [get]
func GetCardTypes(c *gin.Context) {
	c.JSON(http.StatusOK, CardTypesResponse{Data: models.CardTypes()})
}

// @Summary		Create card
// @Description	Creates a new card
// @Tags			Cards
// @Accept			json
// @Produce		json
// @Success		201		{object}	CardResponse
// @Failure		400		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			card	body		CardEditable	true	"Card"
// @Router			/v1/cards [post]
func CreateCard(c *gin.Context) {
	var editable CardEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	card := editable.model()
	card.UserID = userID(c)

	err = models.DB.Create(&card).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusCreated, CardResponse{Data: newCard(c, card)})
}

// @Summary		List cards
// @Description	Returns a list of the user's cards
// @Tags			Cards
// @Produce		json
// @Success		200	{object}	CardListResponse
// @Failure		500	{object}	httperror.Error
// @Router			/v1/cards [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			bank	query	string	false	"Filter by bank"
// @Param			type	query	string	false	"Filter by card type"
// @Param			offset	query	uint	false	"The offset of the first Card returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Cards to return. Defaults to 50."
func GetCards(c *gin.Context) {
	var filter CardQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var cards []models.Card

	q := models.DB.
		Order("name ASC").
		Where(&models.Card{UserID: userID(c)}).
		Where(filter.model(), queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	if filter.Bank != "" {
		q = q.Where("bank LIKE ?", "%"+filter.Bank+"%")
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&cards).Error
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

	apiResources := make([]Card, 0)
	for _, card := range cards {
		apiResources = append(apiResources, newCard(c, card))
	}

	c.JSON(http.StatusOK, CardListResponse{
		Data: apiResources,
		Pagination: Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get card
// @Description	Returns a specific card
// @Tags			Cards
// @Produce		json
// @Success		200	{object}	CardResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id} [get]
func GetCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var card models.Card
	err = models.DB.First(&card, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, CardResponse{Data: newCard(c, card)})
}

// @Summary		Update card
// @Description	Replaces the card with the submitted resource
// @Tags			Cards
// @Accept			json
// @Produce		json
// @Success		200		{object}	CardResponse
// @Failure		400		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			card	body		CardEditable	true	"Card"
// @Router			/v1/cards/{id} [put]
func UpdateCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var card models.Card
	err = models.DB.First(&card, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var editable CardEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	updated := editable.model()
	updated.DefaultModel = card.DefaultModel
	updated.UserID = card.UserID

	err = models.DB.Save(&updated).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, CardResponse{Data: newCard(c, updated)})
}

// @Summary		Delete card
// @Description	Deletes a card. Fails while debts reference it.
// @Tags			Cards
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/cards/{id} [delete]
func DeleteCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var card models.Card
	err = models.DB.First(&card, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	err = models.DB.Delete(&card).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
