package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a point-in-time snapshot of one account's public state.
// The live aggregate (balance, log, lock) stays inside the bank package.
type Account struct {
	Number    string          `json:"account_number"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// User is the wire-safe profile of an authenticated customer.
// Account associations are held as account numbers and resolved through the
// bank directory, never as references into it.
type User struct {
	Name           string   `json:"name"`
	AccountNumbers []string `json:"account_numbers"`
}

// BankService is the capability the ATM front end depends on. The in-memory
// bank and the remote HTTP client both satisfy it; alternate backends must
// keep the same not-found and insufficient-funds behavior.
type BankService interface {
	Login(accountNumber, pin string) (*User, error)
	Deposit(accountNumber string, amount decimal.Decimal) (*Transaction, error)
	Withdraw(accountNumber string, amount decimal.Decimal) (*Transaction, error)
	Balance(accountNumber string) (decimal.Decimal, error)
	Transactions(accountNumber string) ([]Transaction, error)
}
