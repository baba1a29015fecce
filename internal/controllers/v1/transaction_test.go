package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTransactionsLedger verifies that deposits and reserve draws leave
// entries in the ledger.
func (suite *TestSuiteStandard) TestTransactionsLedger() {
	_, headers := testSession(suite.T())

	// The initial deposit is the first ledger entry
	reserve := createTestReserve(suite.T(), headers, testEmergencyFund())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.Equal(suite.T(), models.DirectionInflow, list.Data[0].Direction)
	assert.True(suite.T(), list.Data[0].Amount.Equal(decimal.NewFromInt(500)))

	// Paying a debt from the reserve adds an outflow
	debt := createTestDebt(suite.T(), headers, testCarLoan())
	payment := test.Request(suite.T(), http.MethodPost, debt.Data.Links.Payments, v1.PaymentRequest{
		Amount:    decimal.NewFromInt(150),
		Method:    models.MethodBankTransfer,
		ReserveID: &reserve.Data.ID,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &payment, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "", headers)
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 2)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"Inflows", "direction=INFLOW", 1},
		{"Outflows", "direction=OUTFLOW", 1},
		{"By reserve", fmt.Sprintf("reserve=%s", reserve.Data.ID), 2},
		{"By debt", fmt.Sprintf("debt=%s", debt.Data.ID), 1},
		{"By method", "method=BANK_TRANSFER", 2},
		{"Unknown debt", fmt.Sprintf("debt=%s", uuid.New()), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "", headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var list v1.TransactionListResponse
			test.DecodeResponse(t, &r, &list)
			assert.Len(t, list.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilterInvalidUUID() {
	_, headers := testSession(suite.T())

	for _, query := range []string{"reserve=notauuid", "debt=notauuid"} {
		r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", query), "", headers)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		assert.Equal(suite.T(), httputil.ErrInvalidUUID.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetSingle() {
	_, headers := testSession(suite.T())
	_ = createTestReserve(suite.T(), headers, testEmergencyFund())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "", headers)
	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	require.Len(suite.T(), list.Data, 1)

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing entry", list.Data[0].ID.String(), http.StatusOK},
		{"No entry with this ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID", "notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", tt.id), "", headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestTransactionsScopedToUser verifies that the ledger of one user is
// invisible to another.
func (suite *TestSuiteStandard) TestTransactionsScopedToUser() {
	_, headers := testSession(suite.T())
	_, strangerHeaders := testSession(suite.T())

	_ = createTestReserve(suite.T(), headers, testEmergencyFund())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "", strangerHeaders)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	assert.Len(suite.T(), list.Data, 0)
}

// TestTransactionsReadOnly verifies that the ledger cannot be written to
// directly.
func (suite *TestSuiteStandard) TestTransactionsReadOnly() {
	_, headers := testSession(suite.T())

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", `{"amount": "10"}`, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)

	r = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/transactions", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}
