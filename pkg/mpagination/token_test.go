package mpagination

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	caller := midentifier.New()
	in := Token{
		FilterParams: map[string]string{"nameFilter": "foo*"},
		Start:        40,
		RequestorID:  caller.String(),
		SortBy:       "name",
		SortOrder:    "ASCENDING",
	}

	encoded, err := Encode(in)
	assert.NoError(t, err)
	assert.NotEmpty(t, encoded)

	out, err := Decode(encoded)
	assert.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeEmptyStringIsFirstPage(t *testing.T) {
	out, err := Decode("")

	assert.NoError(t, err)
	assert.Equal(t, Default(), out)
}

func TestDecodeMalformedBase64(t *testing.T) {
	_, err := Decode("not-valid-base64!!!")

	assert.Error(t, err)
}

func TestDecodeValidBase64MalformedContent(t *testing.T) {
	// "not json" base64url-encoded without padding.
	_, err := Decode("bm90IGpzb24")

	assert.Error(t, err)
}

func TestVerifyRequestorAllowsUnboundToken(t *testing.T) {
	caller := midentifier.New()

	err := VerifyRequestor(Token{}, caller)

	assert.NoError(t, err)
}

func TestVerifyRequestorRejectsMismatch(t *testing.T) {
	caller := midentifier.New()
	other := midentifier.New()

	err := VerifyRequestor(Token{RequestorID: other.String()}, caller)

	assert.Error(t, err)
}

func TestVerifyRequestorRejectsMalformedID(t *testing.T) {
	caller := midentifier.New()

	err := VerifyRequestor(Token{RequestorID: "not-a-uuid"}, caller)

	assert.Error(t, err)
}

func TestBindRequestorStampsOnce(t *testing.T) {
	caller := midentifier.New()
	other := midentifier.New()

	tok := BindRequestor(Token{}, caller)
	assert.Equal(t, caller.String(), tok.RequestorID)

	tok2 := BindRequestor(tok, other)
	assert.Equal(t, caller.String(), tok2.RequestorID)
}
