package v1

import (
	"net/http"

	"github.com/centsible/backend/internal/httperror"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for the ledger with
// the RouterGroup that is passed. The ledger is read-only.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	err = models.DB.First(&models.Transaction{}, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		List transactions
// @Description	Returns the user's ledger entries, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/v1/transactions [get]
// @Param			direction	query	string	false	"Filter by direction (INFLOW, OUTFLOW)"
// @Param			method		query	string	false	"Filter by payment method"
// @Param			reserve		query	string	false	"Filter by reserve ID"
// @Param			debt		query	string	false	"Filter by debt ID"
// @Param			offset		query	uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var transactions []models.Transaction

	q := models.DB.
		Order("date DESC").
		Where(&models.Transaction{UserID: userID(c)}).
		Where(filterModel, queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err = q.Find(&transactions).Error
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

	apiResources := make([]Transaction, 0)
	for _, transaction := range transactions {
		apiResources = append(apiResources, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: apiResources,
		Pagination: Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific ledger entry
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ? AND user_id = ?", uri.ID.UUID, userID(c)).Error
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: newTransaction(c, transaction)})
}
