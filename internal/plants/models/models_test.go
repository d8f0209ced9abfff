package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunflower/pkg/platform/sentinel"
)

func TestParseGrowZone(t *testing.T) {
	zone, err := ParseGrowZone("9")
	require.NoError(t, err)
	assert.Equal(t, GrowZone(9), zone)
	assert.True(t, zone.IsSet())
	assert.Equal(t, "9", zone.String())

	zone, err = ParseGrowZone("0")
	require.NoError(t, err)
	assert.True(t, zone.IsSet())

	for _, in := range []string{"", "nine", "-1", "2.5"} {
		_, err := ParseGrowZone(in)
		assert.ErrorIs(t, err, sentinel.ErrInvalidInput, "input %q", in)
	}
}

func TestNoGrowZone(t *testing.T) {
	assert.False(t, NoGrowZone.IsSet())
	assert.Equal(t, "none", NoGrowZone.String())
}
