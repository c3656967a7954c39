package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
	documentID := "6c1a9a5e-8f2b-4e43-9f70-3e8dca1f8a11"

	token := EncodeToken(createdAt, documentID)
	require.NotEmpty(t, token)

	gotTime, gotID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, documentID, gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err)

	// valid base64 but missing separator
	_, _, err = DecodeToken("aGVsbG8=")
	assert.Error(t, err)
}

func TestEncodeDecodeMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("2025-01-01", "abc", "42")

	fields, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-01", "abc", "42"}, fields)
}
