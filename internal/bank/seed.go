package bank

import (
	"github.com/shopspring/decimal"
)

// SeedDemoData registers the two demo customers the interactive ATM ships
// with: Alice (PIN 1234, account ACC1001, balance 1000) and Bob (PIN 4321,
// account ACC2001, balance 500).
func SeedDemoData(s *Service) error {
	alice, err := NewUser("Alice", "1234")
	if err != nil {
		return err
	}
	acc1, err := NewAccount("ACC1001", decimal.NewFromInt(1000))
	if err != nil {
		return err
	}
	if err := s.Register(alice, acc1); err != nil {
		return err
	}

	bob, err := NewUser("Bob", "4321")
	if err != nil {
		return err
	}
	acc2, err := NewAccount("ACC2001", decimal.NewFromInt(500))
	if err != nil {
		return err
	}
	return s.Register(bob, acc2)
}
