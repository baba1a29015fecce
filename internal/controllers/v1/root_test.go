package v1_test

import (
	"net/http"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetRoot() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RootResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), v1.RootLinks{
		Auth:         "http://example.com/v1/auth",
		Cards:        "http://example.com/v1/cards",
		Debts:        "http://example.com/v1/debts",
		Reserves:     "http://example.com/v1/reserves",
		Settings:     "http://example.com/v1/settings",
		Transactions: "http://example.com/v1/transactions",
	}, response.Links)
}

func (suite *TestSuiteStandard) TestOptionsRoot() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}
