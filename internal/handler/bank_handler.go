// Package handler exposes the bank service operations over HTTP using the
// shared data/error response envelope.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
)

type BankHandler struct {
	bank domain.BankService
}

func NewBankHandler(bank domain.BankService) *BankHandler {
	return &BankHandler{
		bank: bank,
	}
}

type LoginRequest struct {
	AccountNumber string `json:"account_number"`
	PIN           string `json:"pin"`
}

type LoginResponse struct {
	Name           string   `json:"name"`
	AccountNumbers []string `json:"account_numbers"`
}

type AmountRequest struct {
	Amount string `json:"amount"`
}

type BalanceResponse struct {
	AccountNumber string `json:"account_number"`
	Balance       string `json:"balance"`
}

type TransactionResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type TransactionListResponse struct {
	AccountNumber string                `json:"account_number"`
	Transactions  []TransactionResponse `json:"transactions"`
}

func (h *BankHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	user, err := h.bank.Login(req.AccountNumber, req.PIN)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Name:           user.Name,
		AccountNumbers: user.AccountNumbers,
	})
}

func (h *BankHandler) Balance(w http.ResponseWriter, r *http.Request) {
	accountNumber := mux.Vars(r)["account_number"]

	balance, err := h.bank.Balance(accountNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{
		AccountNumber: accountNumber,
		Balance:       balance.String(),
	})
}

func (h *BankHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.bank.Deposit)
}

func (h *BankHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.bank.Withdraw)
}

func (h *BankHandler) mutate(w http.ResponseWriter, r *http.Request, op func(string, decimal.Decimal) (*domain.Transaction, error)) {
	accountNumber := mux.Vars(r)["account_number"]

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount format").WithDetails(err.Error()))
		return
	}

	tx, err := op(accountNumber, amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(*tx))
}

func (h *BankHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	accountNumber := mux.Vars(r)["account_number"]

	transactions, err := h.bank.Transactions(accountNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	response := TransactionListResponse{
		AccountNumber: accountNumber,
		Transactions:  make([]TransactionResponse, 0, len(transactions)),
	}
	for _, tx := range transactions {
		response.Transactions = append(response.Transactions, toTransactionResponse(tx))
	}

	writeJSON(w, http.StatusOK, response)
}

func toTransactionResponse(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID.String(),
		Kind:      string(tx.Kind),
		Amount:    tx.Amount.String(),
		CreatedAt: tx.CreatedAt.Format(time.RFC3339Nano),
	}
}
