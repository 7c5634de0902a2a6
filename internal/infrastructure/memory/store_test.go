package memory

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/streetsmart/internal/domain/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetMissingKey(t *testing.T) {
	s := NewStore()

	value, ok, err := s.Get(context.Background(), storage.KeyInventory)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestStore_SetThenGetCopiesValue(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	in := []byte(`["light"]`)

	require.NoError(t, s.Set(ctx, storage.KeyTheme, in))
	in[0] = 'x'

	out, ok, err := s.Get(ctx, storage.KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["light"]`, string(out))

	out[0] = 'y'
	again, _, _ := s.Get(ctx, storage.KeyTheme)
	assert.Equal(t, `["light"]`, string(again))
}

func TestStore_RejectsBlankKey(t *testing.T) {
	s := NewStore()

	assert.ErrorIs(t, s.Set(context.Background(), "  ", []byte("1")), storage.ErrKeyRequired)
	_, _, err := s.Get(context.Background(), "")
	assert.ErrorIs(t, err, storage.ErrKeyRequired)
}
