package membership

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// FetchForMember returns the member's non-deleted membership records
	// joined with override flags, sorted by dateStart descending (undated
	// records last). Records with allowAffiliation=false are included; the
	// resolution services filter them out.
	FetchForMember(ctx context.Context, memberID uuid.UUID) ([]Record, error)

	// FetchForOrganization returns the organization's non-deleted roster of
	// membership records joined with override flags.
	FetchForOrganization(ctx context.Context, organizationID uuid.UUID) ([]Record, error)

	FetchManualAffiliations(ctx context.Context, memberID uuid.UUID) ([]ManualAffiliation, error)

	// AddRole inserts the role unless an identical (member, organization,
	// dates) row already exists.
	AddRole(ctx context.Context, role Record) error

	// RemoveRole soft-deletes the exact-match role.
	RemoveRole(ctx context.Context, role Record) error
}
