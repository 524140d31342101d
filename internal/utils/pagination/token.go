package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// StatementCursor marks a position in an account statement stream. It carries
// the last-seen (createdAt, seq) keyset position plus the running balance at
// that point, so the next page can continue the balance column without
// rescanning earlier entries.
type StatementCursor struct {
	CreatedAt time.Time
	Seq       int64
	Balance   decimal.Decimal
}

// EncodeStatementCursor creates an opaque base64 token for a statement position.
func EncodeStatementCursor(c StatementCursor) string {
	return EncodeMultiFieldToken(
		c.CreatedAt.Format(timeFormat),
		strconv.FormatInt(c.Seq, 10),
		c.Balance.String(),
	)
}

// DecodeStatementCursor parses a statement cursor token back into its position.
func DecodeStatementCursor(token string) (StatementCursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return StatementCursor{}, err
	}
	if len(parts) != 3 {
		return StatementCursor{}, fmt.Errorf("invalid pagination token format (field count)")
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return StatementCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return StatementCursor{}, fmt.Errorf("invalid pagination token format (seq parse): %w", err)
	}

	balance, err := decimal.NewFromString(parts[2])
	if err != nil {
		return StatementCursor{}, fmt.Errorf("invalid pagination token format (balance parse): %w", err)
	}

	return StatementCursor{CreatedAt: createdAt, Seq: seq, Balance: balance}, nil
}

// KeysetCursor marks a plain (createdAt, seq) position in the voucher stream,
// for listings that carry no running balance.
type KeysetCursor struct {
	CreatedAt time.Time
	Seq       int64
}

// EncodeKeysetCursor creates an opaque base64 token for a keyset position.
func EncodeKeysetCursor(c KeysetCursor) string {
	return EncodeMultiFieldToken(
		c.CreatedAt.Format(timeFormat),
		strconv.FormatInt(c.Seq, 10),
	)
}

// DecodeKeysetCursor parses a keyset cursor token back into its position.
func DecodeKeysetCursor(token string) (KeysetCursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return KeysetCursor{}, err
	}
	if len(parts) != 2 {
		return KeysetCursor{}, fmt.Errorf("invalid pagination token format (field count)")
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return KeysetCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return KeysetCursor{}, fmt.Errorf("invalid pagination token format (seq parse): %w", err)
	}

	return KeysetCursor{CreatedAt: createdAt, Seq: seq}, nil
}

// EncodeDateBasedToken creates a token for single date field pagination
func EncodeDateBasedToken(date time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(date.Format(timeFormat)))
}

// DecodeDateBasedToken decodes a token for single date field pagination
func DecodeDateBasedToken(token string) (time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	date, err := time.Parse(timeFormat, string(decodedBytes))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	return date, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
