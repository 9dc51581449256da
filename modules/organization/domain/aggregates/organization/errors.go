package organization

import "github.com/pulseworks/pulse-sdk/pkg/serrors"

var ErrNotFound = serrors.NewError(
	"ORGANIZATION_NOT_FOUND",
	"organization not found",
	"",
)
