package pagination

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeStatementCursor(t *testing.T) {
	// Test case 1: Standard position
	cursor := StatementCursor{
		CreatedAt: time.Date(2024, 3, 15, 14, 30, 45, 123456789, time.UTC),
		Seq:       42,
		Balance:   decimal.RequireFromString("1250.50"),
	}

	token := EncodeStatementCursor(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeStatementCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, cursor.CreatedAt.Equal(decoded.CreatedAt), "CreatedAt should match after decode")
	assert.Equal(t, cursor.Seq, decoded.Seq, "Seq should match after decode")
	assert.True(t, cursor.Balance.Equal(decoded.Balance), "Balance should match after decode")

	// Test case 2: Negative running balance survives the round trip
	negative := StatementCursor{
		CreatedAt: time.Now().UTC(),
		Seq:       1,
		Balance:   decimal.RequireFromString("-300.25"),
	}
	decodedNeg, err := DecodeStatementCursor(EncodeStatementCursor(negative))
	assert.NoError(t, err)
	assert.True(t, negative.Balance.Equal(decodedNeg.Balance), "Negative balance should match after decode")

	// Test case 3: Zero values
	zero := StatementCursor{Balance: decimal.Zero}
	decodedZero, err := DecodeStatementCursor(EncodeStatementCursor(zero))
	assert.NoError(t, err)
	assert.True(t, zero.CreatedAt.Equal(decodedZero.CreatedAt))
	assert.Equal(t, int64(0), decodedZero.Seq)
	assert.True(t, decimal.Zero.Equal(decodedZero.Balance))
}

func TestDecodeStatementCursorError(t *testing.T) {
	// Invalid base64
	_, err := DecodeStatementCursor("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Wrong field count
	_, err = DecodeStatementCursor(EncodeMultiFieldToken("2024-03-15T00:00:00Z", "7"))
	assert.Error(t, err, "Should return an error for wrong field count")
	assert.Contains(t, err.Error(), "field count")

	// Invalid timestamp
	_, err = DecodeStatementCursor(EncodeMultiFieldToken("notadate", "7", "10"))
	assert.Error(t, err, "Should return an error for invalid timestamp")
	assert.Contains(t, err.Error(), "created_at parse")

	// Invalid seq
	_, err = DecodeStatementCursor(EncodeMultiFieldToken("2024-03-15T00:00:00Z", "x", "10"))
	assert.Error(t, err, "Should return an error for invalid seq")
	assert.Contains(t, err.Error(), "seq parse")

	// Invalid balance
	_, err = DecodeStatementCursor(EncodeMultiFieldToken("2024-03-15T00:00:00Z", "7", "abc"))
	assert.Error(t, err, "Should return an error for invalid balance")
	assert.Contains(t, err.Error(), "balance parse")
}

func TestEncodeDecodeMultiFieldToken(t *testing.T) {
	fields := []string{"2024-01-01T00:00:00Z", "99", "extra"}
	parts, err := DecodeMultiFieldToken(EncodeMultiFieldToken(fields...))
	assert.NoError(t, err)
	assert.Equal(t, fields, parts)
}
