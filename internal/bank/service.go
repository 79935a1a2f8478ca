// Package bank implements the in-memory bank backend: a directory resolving
// account numbers to users and accounts, delegating balance operations to
// per-account aggregates.
package bank

import (
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
)

// Service is the production implementation of domain.BankService. The two
// directory maps are guarded by a single RWMutex; per-account state is
// guarded by each account's own lock, and no operation ever holds two
// account locks at once.
type Service struct {
	logger *slog.Logger

	mu       sync.RWMutex
	users    map[string]*User
	accounts map[string]*Account
}

func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger:   logger,
		users:    make(map[string]*User),
		accounts: make(map[string]*Account),
	}
}

var _ domain.BankService = (*Service)(nil)

// Register inserts the user and its accounts into both directory maps,
// keyed by account number. If any number is already registered the whole
// registration is rejected and nothing is inserted.
func (s *Service) Register(user *User, accounts ...*Account) error {
	if user == nil {
		return errors.NewAppError(errors.InvalidInput, "user is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range accounts {
		if _, exists := s.accounts[acc.Number()]; exists {
			s.logger.Warn("Duplicate account registration attempt", "account_number", acc.Number())
			return errors.ErrDuplicateAccount
		}
	}

	for _, acc := range accounts {
		user.AddAccount(acc.Number())
		s.users[acc.Number()] = user
		s.accounts[acc.Number()] = acc
		s.logger.Info("Account registered", "account_number", acc.Number(), "user", user.Name())
	}
	return nil
}

// FindAccount resolves an account number to a snapshot of its public state.
func (s *Service) FindAccount(accountNumber string) (*domain.Account, error) {
	acc, err := s.account(accountNumber)
	if err != nil {
		return nil, err
	}
	return acc.Snapshot(), nil
}

// FindUserByAccount resolves an account number to its owning user.
func (s *Service) FindUserByAccount(accountNumber string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[accountNumber]
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	return user, nil
}

// Login authenticates the PIN of the user owning the given account. Unknown
// accounts and wrong PINs are indistinguishable to the caller.
func (s *Service) Login(accountNumber, pin string) (*domain.User, error) {
	user, err := s.FindUserByAccount(accountNumber)
	if err != nil {
		s.logger.Warn("Login attempt for unknown account", "account_number", accountNumber)
		return nil, errors.ErrInvalidCredentials
	}

	if !user.Authenticate(pin) {
		s.logger.Warn("Login attempt with wrong PIN", "account_number", accountNumber)
		return nil, errors.ErrInvalidCredentials
	}

	s.logger.Info("Login successful", "account_number", accountNumber, "user", user.Name())
	return user.Profile(), nil
}

// Deposit resolves the account and delegates to its deposit operation.
func (s *Service) Deposit(accountNumber string, amount decimal.Decimal) (*domain.Transaction, error) {
	acc, err := s.account(accountNumber)
	if err != nil {
		return nil, err
	}

	tx, err := acc.Deposit(amount)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Deposit completed", "account_number", accountNumber, "amount", amount, "transaction_id", tx.ID)
	return tx, nil
}

// Withdraw resolves the account and delegates to its withdraw operation.
func (s *Service) Withdraw(accountNumber string, amount decimal.Decimal) (*domain.Transaction, error) {
	acc, err := s.account(accountNumber)
	if err != nil {
		return nil, err
	}

	tx, err := acc.Withdraw(amount)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Withdrawal completed", "account_number", accountNumber, "amount", amount, "transaction_id", tx.ID)
	return tx, nil
}

// Balance returns the account's current balance.
func (s *Service) Balance(accountNumber string) (decimal.Decimal, error) {
	acc, err := s.account(accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Balance(), nil
}

// Transactions returns the account's full ordered history.
func (s *Service) Transactions(accountNumber string) ([]domain.Transaction, error) {
	acc, err := s.account(accountNumber)
	if err != nil {
		return nil, err
	}
	return acc.Transactions(), nil
}

func (s *Service) account(accountNumber string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountNumber]
	if !ok {
		s.logger.Warn("Account not found", "account_number", accountNumber)
		return nil, errors.ErrAccountNotFound
	}
	return acc, nil
}
