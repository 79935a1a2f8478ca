// Package client implements the bank service capability over HTTP, so an
// ATM can run against a remote bankd instead of the in-process bank. It
// satisfies the same contract as the in-memory service, including not-found
// and insufficient-funds behavior.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
	"atm-service/internal/handler"
)

type Bank struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func New(baseURL string, logger *slog.Logger) *Bank {
	return &Bank{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

var _ domain.BankService = (*Bank)(nil)

func (b *Bank) Login(accountNumber, pin string) (*domain.User, error) {
	var out handler.LoginResponse
	err := b.do(http.MethodPost, "/login", handler.LoginRequest{
		AccountNumber: accountNumber,
		PIN:           pin,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Name:           out.Name,
		AccountNumbers: out.AccountNumbers,
	}, nil
}

func (b *Bank) Deposit(accountNumber string, amount decimal.Decimal) (*domain.Transaction, error) {
	return b.mutate(accountNumber, "deposits", amount)
}

func (b *Bank) Withdraw(accountNumber string, amount decimal.Decimal) (*domain.Transaction, error) {
	return b.mutate(accountNumber, "withdrawals", amount)
}

func (b *Bank) mutate(accountNumber, op string, amount decimal.Decimal) (*domain.Transaction, error) {
	var out handler.TransactionResponse
	path := fmt.Sprintf("/accounts/%s/%s", url.PathEscape(accountNumber), op)
	err := b.do(http.MethodPost, path, handler.AmountRequest{Amount: amount.String()}, &out)
	if err != nil {
		return nil, err
	}
	return parseTransaction(out)
}

func (b *Bank) Balance(accountNumber string) (decimal.Decimal, error) {
	var out handler.BalanceResponse
	path := fmt.Sprintf("/accounts/%s/balance", url.PathEscape(accountNumber))
	if err := b.do(http.MethodGet, path, nil, &out); err != nil {
		return decimal.Zero, err
	}

	balance, err := decimal.NewFromString(out.Balance)
	if err != nil {
		return decimal.Zero, errors.NewAppError(errors.InternalError, "failed to parse balance").WithDetails(err.Error())
	}
	return balance, nil
}

func (b *Bank) Transactions(accountNumber string) ([]domain.Transaction, error) {
	var out handler.TransactionListResponse
	path := fmt.Sprintf("/accounts/%s/transactions", url.PathEscape(accountNumber))
	if err := b.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, 0, len(out.Transactions))
	for _, tr := range out.Transactions {
		tx, err := parseTransaction(tr)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *tx)
	}
	return transactions, nil
}

// do issues one request and decodes the data/error envelope. Application
// errors come back as AppError with the server's code, so callers see the
// same taxonomy either way.
func (b *Bank) do(method, path string, in, out interface{}) error {
	var body *bytes.Buffer
	if in != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return errors.NewAppError(errors.InternalError, "failed to encode request").WithDetails(err.Error())
		}
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, b.baseURL+path, body)
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to build request").WithDetails(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.Error("Bank request failed", "method", method, "path", path, "error", err)
		return errors.NewAppError(errors.InternalError, "bank service unreachable").WithDetails(err.Error())
	}
	defer resp.Body.Close()

	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *handler.Error  `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.NewAppError(errors.InternalError, "failed to decode response").WithDetails(err.Error())
	}

	if envelope.Error != nil {
		appErr := errors.NewAppError(errors.ErrorCode(envelope.Error.Code), envelope.Error.Message)
		if envelope.Error.Details != "" {
			appErr = appErr.WithDetails(envelope.Error.Details)
		}
		return appErr
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errors.NewAppError(errors.InternalError, "failed to decode response data").WithDetails(err.Error())
		}
	}
	return nil
}

func parseTransaction(tr handler.TransactionResponse) (*domain.Transaction, error) {
	id, err := uuid.Parse(tr.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to parse transaction id").WithDetails(err.Error())
	}

	amount, err := decimal.NewFromString(tr.Amount)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to parse amount").WithDetails(err.Error())
	}

	createdAt, err := time.Parse(time.RFC3339Nano, tr.CreatedAt)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to parse timestamp").WithDetails(err.Error())
	}

	return &domain.Transaction{
		ID:        id,
		Kind:      domain.TransactionKind(tr.Kind),
		Amount:    amount,
		CreatedAt: createdAt,
	}, nil
}
