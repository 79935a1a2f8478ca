// Package atm implements the interactive front end: a login -> menu loop ->
// logout session driven over a reader/writer pair against the bank
// capability. It holds no business logic; every operation is delegated to
// the bank service.
package atm

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"atm-service/internal/domain"
	"atm-service/internal/errors"
)

const menu = `
--- ATM Menu ---
1. Check Balance
2. Deposit
3. Withdraw
4. Show Transactions
5. Logout
`

// ATM drives one interactive session. At most one account is current per
// session; a failed login leaves the session logged out.
type ATM struct {
	bank   domain.BankService
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger

	user           *domain.User
	currentAccount string
}

func New(bank domain.BankService, in io.Reader, out io.Writer, logger *slog.Logger) *ATM {
	return &ATM{
		bank:   bank,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// LoggedIn reports whether a session is established.
func (a *ATM) LoggedIn() bool {
	return a.user != nil
}

// CurrentAccount returns the account number of the active session, or the
// empty string when logged out.
func (a *ATM) CurrentAccount() string {
	return a.currentAccount
}

// Login authenticates against the bank service and establishes a session on
// success. On failure no session state is touched.
func (a *ATM) Login(accountNumber, pin string) error {
	user, err := a.bank.Login(accountNumber, pin)
	if err != nil {
		a.logger.Warn("Login failed", "account_number", accountNumber)
		return err
	}

	a.user = user
	a.currentAccount = accountNumber
	a.logger.Info("Session established", "account_number", accountNumber, "user", user.Name)
	return nil
}

// Logout clears the session.
func (a *ATM) Logout() {
	if a.user != nil {
		a.logger.Info("Session ended", "account_number", a.currentAccount)
	}
	a.user = nil
	a.currentAccount = ""
}

// Run executes one full session: prompt for credentials, then loop over the
// menu until logout or end of input. Every failure is reported to the user
// and the loop continues; none are fatal.
func (a *ATM) Run() error {
	accountNumber, ok := a.prompt("Enter account number: ")
	if !ok {
		return a.in.Err()
	}
	pin, ok := a.prompt("Enter PIN: ")
	if !ok {
		return a.in.Err()
	}

	if err := a.Login(accountNumber, pin); err != nil {
		fmt.Fprintln(a.out, "Invalid account number or PIN.")
		return nil
	}
	fmt.Fprintln(a.out, "Login successful!")

	for a.LoggedIn() {
		choice, ok := a.prompt(menu + "Enter choice: ")
		if !ok {
			a.Logout()
			return a.in.Err()
		}
		a.handleChoice(choice)
	}
	return nil
}

func (a *ATM) handleChoice(choice string) {
	switch strings.TrimSpace(choice) {
	case "1":
		a.showBalance()
	case "2":
		a.deposit()
	case "3":
		a.withdraw()
	case "4":
		a.showTransactions()
	case "5":
		a.Logout()
		fmt.Fprintln(a.out, "Logged out successfully.")
	default:
		a.report(errors.NewAppError(errors.InvalidMenuChoice, "invalid choice"))
	}
}

func (a *ATM) showBalance() {
	balance, err := a.bank.Balance(a.currentAccount)
	if err != nil {
		a.report(err)
		return
	}
	fmt.Fprintf(a.out, "Balance: $%s\n", balance.String())
}

func (a *ATM) deposit() {
	amount, ok := a.promptAmount("Enter amount to deposit: ")
	if !ok {
		return
	}
	if _, err := a.bank.Deposit(a.currentAccount, amount); err != nil {
		a.report(err)
		return
	}
	a.showBalance()
}

func (a *ATM) withdraw() {
	amount, ok := a.promptAmount("Enter amount to withdraw: ")
	if !ok {
		return
	}
	if _, err := a.bank.Withdraw(a.currentAccount, amount); err != nil {
		a.report(err)
		return
	}
	a.showBalance()
}

func (a *ATM) showTransactions() {
	transactions, err := a.bank.Transactions(a.currentAccount)
	if err != nil {
		a.report(err)
		return
	}
	if len(transactions) == 0 {
		fmt.Fprintln(a.out, "No transactions yet.")
		return
	}

	fmt.Fprintf(a.out, "Transaction history for account %s:\n", a.currentAccount)
	for _, tx := range transactions {
		fmt.Fprintf(a.out, "%s | %s | Amount: $%s\n",
			tx.CreatedAt.Format(time.RFC3339), kindLabel(tx.Kind), tx.Amount.String())
	}
}

func (a *ATM) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *ATM) promptAmount(label string) (decimal.Decimal, bool) {
	raw, ok := a.prompt(label)
	if !ok {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		a.report(errors.NewAppError(errors.InvalidAmount, "invalid amount format"))
		return decimal.Zero, false
	}
	return amount, true
}

func (a *ATM) report(err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		fmt.Fprintf(a.out, "Error: %s\n", appErr.Message)
		return
	}
	fmt.Fprintf(a.out, "Error: %s\n", err)
}

func kindLabel(kind domain.TransactionKind) string {
	if kind == domain.KindDeposit {
		return "Deposit"
	}
	return "Withdraw"
}
