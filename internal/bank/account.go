package bank

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
)

// Account is the sole authority over one account's balance and history.
// Every operation, reads included, runs under the account's mutex for its
// full duration, so no caller ever observes a balance/log pair mid-update.
type Account struct {
	number    string
	createdAt time.Time

	mu           sync.Mutex
	balance      decimal.Decimal
	transactions []domain.Transaction
}

// NewAccount creates an account with the given opening balance.
// The opening balance may be zero but never negative.
func NewAccount(number string, openingBalance decimal.Decimal) (*Account, error) {
	if number == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "account number is required")
	}
	if openingBalance.IsNegative() {
		return nil, errors.NewAppError(errors.InvalidAmount, "opening balance cannot be negative")
	}
	return &Account{
		number:    number,
		createdAt: time.Now().UTC(),
		balance:   openingBalance,
	}, nil
}

func (a *Account) Number() string {
	return a.number
}

// Deposit adds amount to the balance and appends exactly one deposit record.
func (a *Account) Deposit(amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.balance = a.balance.Add(amount)
	tx := domain.Transaction{
		ID:        uuid.New(),
		Kind:      domain.KindDeposit,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	a.transactions = append(a.transactions, tx)
	return &tx, nil
}

// Withdraw subtracts amount from the balance. When the amount exceeds the
// balance it fails with insufficient funds; the balance and log are left
// untouched and no record is appended.
func (a *Account) Withdraw(amount decimal.Decimal) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if amount.GreaterThan(a.balance) {
		return nil, errors.ErrInsufficientFunds
	}

	a.balance = a.balance.Sub(amount)
	tx := domain.Transaction{
		ID:        uuid.New(),
		Kind:      domain.KindWithdraw,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	a.transactions = append(a.transactions, tx)
	return &tx, nil
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Transactions returns the full history in chronological order. The result
// is a copy; an empty slice means no transactions yet, which is a valid
// caller-visible state rather than an error. Callers must not mutate the
// returned records.
func (a *Account) Transactions() []domain.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]domain.Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// Snapshot returns the account's public state as a value copy.
func (a *Account) Snapshot() *domain.Account {
	a.mu.Lock()
	defer a.mu.Unlock()

	return &domain.Account{
		Number:    a.number,
		Balance:   a.balance,
		CreatedAt: a.createdAt,
	}
}
