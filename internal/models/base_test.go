package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSliceRoundTrip(t *testing.T) {
	v, err := StringSlice{"10:00-14:00", "15:00-19:00"}.Value()
	require.NoError(t, err)

	var fromString StringSlice
	require.NoError(t, fromString.Scan(v))
	assert.Equal(t, StringSlice{"10:00-14:00", "15:00-19:00"}, fromString)

	var fromBytes StringSlice
	require.NoError(t, fromBytes.Scan([]byte(v.(string))))
	assert.Equal(t, fromString, fromBytes)

	empty, err := StringSlice(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func TestScanEdgeCases(t *testing.T) {
	var c Coordinates
	require.NoError(t, c.Scan(nil))
	require.NoError(t, c.Scan([]byte{}))
	assert.Zero(t, c)

	require.NoError(t, c.Scan(`{"latitude":51.5,"longitude":-0.12}`))
	assert.Equal(t, 51.5, c.Latitude)

	var sm SocialMedia
	assert.ErrorContains(t, sm.Scan(42), "SocialMedia")
}
