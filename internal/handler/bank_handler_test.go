package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atm-service/internal/bank"
	"atm-service/internal/handler"
	"atm-service/internal/server"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := bank.NewService(logger)
	require.NoError(t, bank.SeedDemoData(s))
	return server.NewServer(s, logger).GetRouter()
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.Error {
	t.Helper()
	var envelope struct {
		Error *handler.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	return *envelope.Error
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/login", handler.LoginRequest{
		AccountNumber: "ACC1001",
		PIN:           "1234",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.LoginResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, []string{"ACC1001"}, resp.AccountNumbers)
}

func TestLoginWrongPINReturns401(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/login", handler.LoginRequest{
		AccountNumber: "ACC1001",
		PIN:           "0000",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", decodeError(t, rec).Code)
}

func TestBalanceEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/accounts/ACC1001/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.BalanceResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "ACC1001", resp.AccountNumber)
	assert.Equal(t, "1000", resp.Balance)
}

func TestBalanceUnknownAccountReturns404(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/accounts/ACC9999/balance", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "account_not_found", decodeError(t, rec).Code)
}

func TestDepositEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/accounts/ACC1001/deposits", handler.AmountRequest{Amount: "250.50"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.TransactionResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "deposit", resp.Kind)

	amount, err := decimal.NewFromString(resp.Amount)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("250.50")))
}

func TestDepositInvalidAmountReturns400(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/accounts/ACC1001/deposits", handler.AmountRequest{Amount: "abc"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_amount", decodeError(t, rec).Code)

	rec = doRequest(t, router, http.MethodPost, "/accounts/ACC1001/deposits", handler.AmountRequest{Amount: "-5"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_amount", decodeError(t, rec).Code)
}

func TestWithdrawInsufficientFundsReturns409(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/accounts/ACC2001/withdrawals", handler.AmountRequest{Amount: "10000"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "insufficient_funds", decodeError(t, rec).Code)

	// Failed withdrawal left the balance alone
	rec = doRequest(t, router, http.MethodGet, "/accounts/ACC2001/balance", nil)
	var resp handler.BalanceResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "500", resp.Balance)
}

func TestTransactionsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/accounts/ACC1001/transactions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.TransactionListResponse
	decodeData(t, rec, &resp)
	assert.Empty(t, resp.Transactions)

	doRequest(t, router, http.MethodPost, "/accounts/ACC1001/deposits", handler.AmountRequest{Amount: "100"})
	doRequest(t, router, http.MethodPost, "/accounts/ACC1001/withdrawals", handler.AmountRequest{Amount: "40"})

	rec = doRequest(t, router, http.MethodGet, "/accounts/ACC1001/transactions", nil)
	decodeData(t, rec, &resp)
	require.Len(t, resp.Transactions, 2)
	assert.Equal(t, "deposit", resp.Transactions[0].Kind)
	assert.Equal(t, "withdraw", resp.Transactions[1].Kind)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}
