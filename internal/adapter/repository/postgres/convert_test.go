package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullDecimalRoundTrip(t *testing.T) {
	in := decimal.NewNullDecimal(decimal.RequireFromString("12.345"))

	n := nullDecimalToNumeric(in)
	require.True(t, n.Valid)

	out := numericToNullDecimal(n)
	require.True(t, out.Valid)
	assert.True(t, out.Decimal.Equal(in.Decimal))
}

func TestNullDecimalAbsentStaysNull(t *testing.T) {
	n := nullDecimalToNumeric(decimal.NullDecimal{})
	assert.False(t, n.Valid)
	assert.False(t, numericToNullDecimal(n).Valid)
}

func TestTextOrNull(t *testing.T) {
	assert.False(t, textOrNull("").Valid)
	assert.Equal(t, pgtype.Text{String: "m-1", Valid: true}, textOrNull("m-1"))
}

func TestTimestamptzPointers(t *testing.T) {
	assert.Nil(t, pgTimestamptzToTimePtr(timePtrToPgTimestamptz(nil)))

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got := pgTimestamptzToTimePtr(timePtrToPgTimestamptz(&now))
	require.NotNil(t, got)
	assert.True(t, got.Equal(now))
}
