package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testEmergencyFund() v1.ReserveEditable {
	return v1.ReserveEditable{
		Name:  "Emergency fund",
		Value: decimal.NewFromInt(500),
		Type:  models.ReserveTypeEmergencyFund,
		Note:  "Six months of expenses",
	}
}

func (suite *TestSuiteStandard) TestReservesCreate() {
	_, headers := testSession(suite.T())

	reserve := createTestReserve(suite.T(), headers, testEmergencyFund())

	assert.Equal(suite.T(), "Emergency fund", reserve.Data.Name)
	assert.True(suite.T(), reserve.Data.Value.Equal(decimal.NewFromInt(500)))
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/reserves/%s/balance", reserve.Data.ID), reserve.Data.Links.Balance)
}

func (suite *TestSuiteStandard) TestReservesCreateInvalid() {
	_, headers := testSession(suite.T())

	tests := []struct {
		name     string
		editable v1.ReserveEditable
		message  string
	}{
		{"Name missing", v1.ReserveEditable{Value: decimal.NewFromInt(100), Type: models.ReserveTypeSavings}, "name must be set"},
		{"Value zero", v1.ReserveEditable{Name: "Savings", Type: models.ReserveTypeSavings}, "larger than zero"},
		{"Value negative", v1.ReserveEditable{Name: "Savings", Value: decimal.NewFromInt(-10), Type: models.ReserveTypeSavings}, "larger than zero"},
		{"Invalid type", v1.ReserveEditable{Name: "Savings", Value: decimal.NewFromInt(100), Type: "MATTRESS"}, "reserve type is invalid"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/reserves", tt.editable, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			assert.Contains(t, test.DecodeError(t, r.Body.Bytes()), tt.message)
		})
	}
}

func (suite *TestSuiteStandard) TestReserveDeposits() {
	_, headers := testSession(suite.T())
	reserve := createTestReserve(suite.T(), headers, testEmergencyFund())

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/reserves/deposits", v1.DepositRequest{
		ReserveID: reserve.Data.ID,
		Amount:    decimal.NewFromFloat(50.50),
		Note:      "Salary leftover",
		Method:    models.MethodBankTransfer,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ReserveResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Value.Equal(decimal.NewFromFloat(550.50)), response.Data.Value.String())
}

func (suite *TestSuiteStandard) TestReserveDepositsInvalid() {
	_, headers := testSession(suite.T())
	reserve := createTestReserve(suite.T(), headers, testEmergencyFund())

	tests := []struct {
		name    string
		request v1.DepositRequest
		status  int
	}{
		{"Amount zero", v1.DepositRequest{ReserveID: reserve.Data.ID, Method: models.MethodCash}, http.StatusBadRequest},
		{"Amount negative", v1.DepositRequest{ReserveID: reserve.Data.ID, Amount: decimal.NewFromInt(-10), Method: models.MethodCash}, http.StatusBadRequest},
		{"Unknown reserve", v1.DepositRequest{ReserveID: uuid.New(), Amount: decimal.NewFromInt(10), Method: models.MethodCash}, http.StatusNotFound},
		{"Invalid method", v1.DepositRequest{ReserveID: reserve.Data.ID, Amount: decimal.NewFromInt(10), Method: "IOU"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/reserves/deposits", tt.request, headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestReserveBalance verifies that the balance endpoint returns the
// ledger-derived balance, which matches the cached value.
func (suite *TestSuiteStandard) TestReserveBalance() {
	_, headers := testSession(suite.T())
	reserve := createTestReserve(suite.T(), headers, testEmergencyFund())

	r := test.Request(suite.T(), http.MethodGet, reserve.Data.Links.Balance, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromInt(500)), response.Data.Balance.String())
}

func (suite *TestSuiteStandard) TestReservesTotal() {
	_, headers := testSession(suite.T())
	_, strangerHeaders := testSession(suite.T())

	_ = createTestReserve(suite.T(), headers, testEmergencyFund())

	savings := testEmergencyFund()
	savings.Name = "Vacation"
	savings.Type = models.ReserveTypeSavings
	savings.Value = decimal.NewFromFloat(120.25)
	_ = createTestReserve(suite.T(), headers, savings)

	// Another user's reserve does not count towards the total
	_ = createTestReserve(suite.T(), strangerHeaders, testEmergencyFund())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reserves/total", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TotalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Total.Equal(decimal.NewFromFloat(620.25)), response.Data.Total.String())
}

func (suite *TestSuiteStandard) TestReservesList() {
	_, headers := testSession(suite.T())

	_ = createTestReserve(suite.T(), headers, testEmergencyFund())

	savings := testEmergencyFund()
	savings.Name = "Vacation"
	savings.Type = models.ReserveTypeSavings
	_ = createTestReserve(suite.T(), headers, savings)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All reserves", "", 2},
		{"Fuzzy name", "name=mergen", 1},
		{"By type", "type=SAVINGS", 1},
		{"No match", "name=Car", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reserves?%s", tt.query), "", headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var list v1.ReserveListResponse
			test.DecodeResponse(t, &r, &list)
			assert.Len(t, list.Data, tt.count)
		})
	}
}

// TestReservesUpdate verifies that the metadata can be changed, but the
// value stays untouched since it is derived from the ledger.
func (suite *TestSuiteStandard) TestReservesUpdate() {
	_, headers := testSession(suite.T())
	reserve := createTestReserve(suite.T(), headers, testEmergencyFund())

	r := test.Request(suite.T(), http.MethodPut, reserve.Data.Links.Self, v1.ReserveUpdatable{
		Name: "Rainy day fund",
		Type: models.ReserveTypeOther,
		Note: "Renamed",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ReserveResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Rainy day fund", response.Data.Name)
	assert.Equal(suite.T(), models.ReserveTypeOther, response.Data.Type)
	assert.True(suite.T(), response.Data.Value.Equal(decimal.NewFromInt(500)), "the value must not be updatable")
}

func (suite *TestSuiteStandard) TestReservesDelete() {
	_, headers := testSession(suite.T())
	reserve := createTestReserve(suite.T(), headers, testEmergencyFund())

	r := test.Request(suite.T(), http.MethodDelete, reserve.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, reserve.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestReservesOptions() {
	_, headers := testSession(suite.T())
	reserve := createTestReserve(suite.T(), headers, testEmergencyFund())

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/reserves", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, reserve.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PUT, DELETE", r.Header().Get("allow"))
}
