package membership

import "github.com/pulseworks/pulse-sdk/pkg/serrors"

var (
	ErrNotFound = serrors.NewError(
		"MEMBERSHIP_NOT_FOUND",
		"membership record not found",
		"",
	)
	ErrInvalidDateRange = serrors.NewError(
		"MEMBERSHIP_INVALID_DATE_RANGE",
		"membership record has an end date without a start date or an inverted range",
		"fix the record upstream; date shapes are never repaired during resolution",
	)
	ErrAmbiguousCurrentRole = serrors.NewError(
		"MEMBERSHIP_AMBIGUOUS_CURRENT_ROLE",
		"primary entity holds more than one open-ended current role for the same join key",
		"resolve the duplicate current roles before retrying the merge",
	)
)
