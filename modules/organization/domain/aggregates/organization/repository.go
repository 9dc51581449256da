package organization

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Organization, error)

	// MemberCount returns the current aggregate member count for the
	// organization. No staleness contract beyond "current value when
	// queried"; unknown organizations count as zero.
	MemberCount(ctx context.Context, id uuid.UUID) (int64, error)
}
