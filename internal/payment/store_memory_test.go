package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "orgnet/pkg/domain-errors"
)

func TestStoreSequentialIDsAndTerminalPaid(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	first, err := store.Create(ctx, Payment{EmployeeName: "Alice", Employee: "0xalice", Amount: 100, Status: StatusUnpaid})
	require.NoError(t, err)
	second, err := store.Create(ctx, Payment{EmployeeName: "Bob", Employee: "0xbob", Amount: 200, Status: StatusUnpaid})
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.ID)
	assert.EqualValues(t, 2, second.ID)

	paid, err := store.MarkPaid(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)

	_, err = store.MarkPaid(ctx, first.ID)
	assert.True(t, dErrors.Is(err, dErrors.CodeInvalidTransition))

	_, err = store.MarkPaid(ctx, 9)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))

	_, err = store.Get(ctx, 0)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound), "zero is the absent sentinel")
}
