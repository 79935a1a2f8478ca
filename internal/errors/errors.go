package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	AccountNotFound    ErrorCode = "account_not_found"
	InvalidCredentials ErrorCode = "invalid_credentials"
	InsufficientFunds  ErrorCode = "insufficient_funds"
	InvalidAmount      ErrorCode = "invalid_amount"
	InvalidInput       ErrorCode = "invalid_input"
	InvalidMenuChoice  ErrorCode = "invalid_menu_choice"
	DuplicateAccount   ErrorCode = "duplicate_account"
	InternalError      ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy so the predefined errors stay untouched.
func (e *AppError) WithDetails(details string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// HTTPStatus maps an error code to the status the HTTP layer reports.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case AccountNotFound:
		return http.StatusNotFound
	case InvalidCredentials:
		return http.StatusUnauthorized
	case InsufficientFunds, DuplicateAccount:
		return http.StatusConflict
	case InvalidAmount, InvalidInput, InvalidMenuChoice:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrAccountNotFound    = NewAppError(AccountNotFound, "account not found")
	ErrInvalidCredentials = NewAppError(InvalidCredentials, "invalid account number or PIN")
	ErrInsufficientFunds  = NewAppError(InsufficientFunds, "insufficient funds")
	ErrInvalidAmount      = NewAppError(InvalidAmount, "amount must be greater than zero")
	ErrDuplicateAccount   = NewAppError(DuplicateAccount, "account number already registered")
)
