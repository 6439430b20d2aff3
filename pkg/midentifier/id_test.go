package midentifier

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesRoundTrip(t *testing.T) {
	id := New()

	parsed, err := FromBytes(id.Bytes())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestHexRoundTrip(t *testing.T) {
	id := New()

	parsed, err := FromHex(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestFromHexIsCaseInsensitive(t *testing.T) {
	id := New()

	parsed, err := FromHex(strings.ToUpper(id.String()))
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.Equal(t, id.String(), parsed.String())
}

func TestFromHexRejectsMalformedInput(t *testing.T) {
	for _, bad := range []string{"", "not-an-id", "12345678-1234-1234-1234"} {
		_, err := FromHex(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFromBytesRejectsWrongLength(t *testing.T) {
	_, err := FromBytes([]byte{1, 2, 3})
	require.Error(t, err)

	_, err = FromBytes(make([]byte, 17))
	require.Error(t, err)
}

func TestNilIsNil(t *testing.T) {
	assert.True(t, Nil.IsNil())
	assert.False(t, New().IsNil())
}

func TestJSONRoundTripUsesHexForm(t *testing.T) {
	id := New()

	raw, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(raw))

	var parsed ID
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, id, parsed)
}
