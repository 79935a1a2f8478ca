package bank

import (
	"golang.org/x/crypto/bcrypt"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
)

// User holds a customer's credential and account associations. It carries no
// business logic beyond the PIN check; accounts are referenced by number and
// resolved through the directory.
type User struct {
	name           string
	pinHash        []byte
	accountNumbers []string
}

// NewUser creates a user with a bcrypt-hashed PIN.
func NewUser(name, pin string) (*User, error) {
	if name == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "user name is required")
	}
	if pin == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "PIN is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to hash PIN").WithDetails(err.Error())
	}

	return &User{
		name:    name,
		pinHash: hash,
	}, nil
}

func (u *User) Name() string {
	return u.name
}

// Authenticate reports whether the given PIN matches.
func (u *User) Authenticate(pin string) bool {
	return bcrypt.CompareHashAndPassword(u.pinHash, []byte(pin)) == nil
}

// AddAccount associates an account number with the user. Duplicate numbers
// are ignored so a re-registration cannot double-list an account.
func (u *User) AddAccount(accountNumber string) {
	for _, n := range u.accountNumbers {
		if n == accountNumber {
			return
		}
	}
	u.accountNumbers = append(u.accountNumbers, accountNumber)
}

// AccountNumbers returns the associated account numbers in insertion order.
func (u *User) AccountNumbers() []string {
	out := make([]string, len(u.accountNumbers))
	copy(out, u.accountNumbers)
	return out
}

// Profile returns the wire-safe view of the user, without the credential.
func (u *User) Profile() *domain.User {
	return &domain.User{
		Name:           u.name,
		AccountNumbers: u.AccountNumbers(),
	}
}
