package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tx, err := New("tx-1", " Rent ", 0, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, "Rent", tx.Description)
	assert.Equal(t, KindPayment, tx.Kind)
	assert.Equal(t, StatusCompleted, tx.Status)
}

func TestNew_Rejects(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	_, err := New("tx-1", "", 10, KindPayment, StatusCompleted, now)
	assert.ErrorIs(t, err, ErrDescriptionMissing)

	_, err = New("tx-1", "Rent", -1, KindPayment, StatusCompleted, now)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = New("tx-1", "Rent", 10, KindPayment, "bogus", now)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	for _, s := range []Status{StatusPending, StatusProcessing, StatusCompleted, StatusFailed} {
		_, err := New("tx-1", "Rent", 10, KindRefund, s, now)
		assert.NoError(t, err, s)
	}
}
