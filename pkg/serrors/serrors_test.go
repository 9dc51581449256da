package serrors_test

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"

	"github.com/pulseworks/pulse-sdk/pkg/serrors"
)

func TestBaseErrorFormatting(t *testing.T) {
	withHint := serrors.NewError("INVALID_DATE_RANGE", "date end without date start", "fix the record upstream")
	require.Equal(t, "INVALID_DATE_RANGE: date end without date start (fix the record upstream)", withHint.Error())

	bare := serrors.NewError("NOT_FOUND", "record not found", "")
	require.Equal(t, "NOT_FOUND: record not found", bare.Error())
}

func TestBaseIsMatchesByCode(t *testing.T) {
	sentinel := serrors.NewError("NOT_FOUND", "record not found", "")
	same := serrors.NewError("NOT_FOUND", "different message", "")
	other := serrors.NewError("CONFLICT", "record not found", "")

	require.ErrorIs(t, same, sentinel)
	require.NotErrorIs(t, other, sentinel)
	require.ErrorIs(t, errors.Wrap(same, "fetch"), sentinel)
}
