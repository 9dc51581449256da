package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pulseworks/pulse-sdk/modules/organization/domain/aggregates/organization"
	"github.com/pulseworks/pulse-sdk/pkg/composables"
)

type OrganizationRepository struct{}

func NewOrganizationRepository() organization.Repository {
	return &OrganizationRepository{}
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organization.Organization{}, err
	}

	var orgID pgtype.UUID
	var name string
	var memberCount int64
	var createdAt, updatedAt pgtype.Timestamptz

	err = tx.QueryRow(ctx, `
SELECT id, name, member_count, created_at, updated_at
FROM organizations
WHERE id = $1
`, pgUUID(id)).Scan(&orgID, &name, &memberCount, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrNotFound
		}
		return organization.Organization{}, gerrors.Wrap(err, "get organization")
	}

	out := uuid.Nil
	if orgID.Valid {
		out = uuid.UUID(orgID.Bytes)
	}
	return organization.Hydrate(out, name, memberCount, createdAt.Time, updatedAt.Time), nil
}

func (r *OrganizationRepository) MemberCount(ctx context.Context, id uuid.UUID) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = tx.QueryRow(ctx, `
SELECT COALESCE(member_count, 0)
FROM organizations
WHERE id = $1
`, pgUUID(id)).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, gerrors.Wrap(err, "get organization member count")
	}
	return count, nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	if id == uuid.Nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: id, Valid: true}
}
