package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-ledger-bot/internal/model"
)

func TestBeginReplacesSession(t *testing.T) {
	store := NewStore()

	sess := store.Begin(1)
	sess.State = model.StateOrderPrice
	sess.Order.Customer = "Иван"

	fresh := store.Begin(1)
	assert.Equal(t, model.StateMenu, fresh.State)
	assert.Empty(t, fresh.Order.Customer)
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.Begin(1)
	store.Clear(1)

	_, ok := store.Get(1)
	assert.False(t, ok)

	// Clearing an absent session is a no-op.
	store.Clear(2)
}

func TestChatsDoNotShareSessions(t *testing.T) {
	store := NewStore()
	first := store.Begin(1)
	second := store.Begin(2)

	first.Expense.Category = "Продукты"

	got, ok := store.Get(2)
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Empty(t, got.Expense.Category)
}
