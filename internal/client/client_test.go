package client_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atm-service/internal/bank"
	"atm-service/internal/client"
	"atm-service/internal/domain"
	"atm-service/internal/errors"
	"atm-service/internal/server"
)

// newRemoteBank spins up the real HTTP surface in-process and returns a
// client pointed at it, so these tests exercise the full wire round trip.
func newRemoteBank(t *testing.T) *client.Bank {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := bank.NewService(logger)
	require.NoError(t, bank.SeedDemoData(s))

	ts := httptest.NewServer(server.NewServer(s, logger).GetRouter())
	t.Cleanup(ts.Close)

	return client.New(ts.URL, logger)
}

func TestClientLogin(t *testing.T) {
	remote := newRemoteBank(t)

	user, err := remote.Login("ACC1001", "1234")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, []string{"ACC1001"}, user.AccountNumbers)
}

func TestClientLoginRejected(t *testing.T) {
	remote := newRemoteBank(t)

	_, err := remote.Login("ACC1001", "0000")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.InvalidCredentials, appErr.Code)
}

func TestClientDepositWithdrawBalance(t *testing.T) {
	remote := newRemoteBank(t)

	tx, err := remote.Deposit("ACC1001", decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, domain.KindDeposit, tx.Kind)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(500)))

	balance, err := remote.Balance("ACC1001")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(1500)))

	tx, err = remote.Withdraw("ACC1001", decimal.NewFromInt(1500))
	require.NoError(t, err)
	assert.Equal(t, domain.KindWithdraw, tx.Kind)

	balance, err = remote.Balance("ACC1001")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestClientInsufficientFunds(t *testing.T) {
	remote := newRemoteBank(t)

	_, err := remote.Withdraw("ACC2001", decimal.NewFromInt(10000))
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.InsufficientFunds, appErr.Code)

	balance, err := remote.Balance("ACC2001")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(500)))
}

func TestClientAccountNotFound(t *testing.T) {
	remote := newRemoteBank(t)

	_, err := remote.Balance("ACC9999")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.AccountNotFound, appErr.Code)
}

func TestClientTransactionsRoundTrip(t *testing.T) {
	remote := newRemoteBank(t)

	history, err := remote.Transactions("ACC1001")
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = remote.Deposit("ACC1001", decimal.RequireFromString("100.25"))
	require.NoError(t, err)
	_, err = remote.Withdraw("ACC1001", decimal.NewFromInt(40))
	require.NoError(t, err)

	history, err = remote.Transactions("ACC1001")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.KindDeposit, history[0].Kind)
	assert.True(t, history[0].Amount.Equal(decimal.RequireFromString("100.25")))
	assert.Equal(t, domain.KindWithdraw, history[1].Kind)
	assert.False(t, history[1].CreatedAt.Before(history[0].CreatedAt))
}
