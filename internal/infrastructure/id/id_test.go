package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_NewIDIsUniqueV7(t *testing.T) {
	g := NewGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		raw := g.NewID()
		parsed, err := uuid.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
		_, dup := seen[raw]
		require.False(t, dup, "duplicate id %s", raw)
		seen[raw] = struct{}{}
	}
}
