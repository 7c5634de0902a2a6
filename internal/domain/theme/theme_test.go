package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAndToggle(t *testing.T) {
	got, err := Parse(" Dark ")
	assert.NoError(t, err)
	assert.Equal(t, Dark, got)
	assert.Equal(t, Light, got.Toggle())
	assert.Equal(t, Dark, Light.Toggle())

	_, err = Parse("sepia")
	assert.ErrorIs(t, err, ErrUnknown)
}
