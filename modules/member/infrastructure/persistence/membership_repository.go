package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
	"github.com/pulseworks/pulse-sdk/pkg/composables"
)

type MembershipRepository struct{}

func NewMembershipRepository() membership.Repository {
	return &MembershipRepository{}
}

const membershipSelect = `
SELECT
  mo.id,
  mo.member_id,
  mo.organization_id,
  COALESCE(mo.title, ''),
  mo.date_start,
  mo.date_end,
  COALESCE(mo.source, ''),
  COALESCE(ovr.allow_affiliation, TRUE),
  COALESCE(ovr.is_primary_work_experience, FALSE),
  mo.created_at,
  mo.deleted_at
FROM member_organizations mo
LEFT JOIN member_organization_overrides ovr
  ON ovr.member_id = mo.member_id
 AND ovr.organization_id = mo.organization_id
`

func (r *MembershipRepository) FetchForMember(ctx context.Context, memberID uuid.UUID) ([]membership.Record, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, membershipSelect+`
WHERE mo.member_id = $1 AND mo.deleted_at IS NULL
ORDER BY mo.date_start DESC NULLS LAST, mo.created_at DESC
`, pgUUID(memberID))
	if err != nil {
		return nil, errors.Wrap(err, "fetch membership records")
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *MembershipRepository) FetchForOrganization(ctx context.Context, organizationID uuid.UUID) ([]membership.Record, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, membershipSelect+`
WHERE mo.organization_id = $1 AND mo.deleted_at IS NULL
ORDER BY mo.date_start DESC NULLS LAST, mo.created_at DESC
`, pgUUID(organizationID))
	if err != nil {
		return nil, errors.Wrap(err, "fetch organization roster")
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *MembershipRepository) FetchManualAffiliations(ctx context.Context, memberID uuid.UUID) ([]membership.ManualAffiliation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT member_id, organization_id, segment_id, date_start, date_end
FROM member_manual_affiliations
WHERE member_id = $1
ORDER BY date_start DESC
`, pgUUID(memberID))
	if err != nil {
		return nil, errors.Wrap(err, "fetch manual affiliations")
	}
	defer rows.Close()

	var out []membership.ManualAffiliation
	for rows.Next() {
		var member, org, segment pgtype.UUID
		var dateStart, dateEnd pgtype.Date
		if err := rows.Scan(&member, &org, &segment, &dateStart, &dateEnd); err != nil {
			return nil, err
		}
		out = append(out, membership.HydrateManualAffiliation(
			uuidFromPg(member),
			uuidFromPg(org),
			uuidFromPg(segment),
			timeFromPgDate(dateStart),
			timeFromPgDate(dateEnd),
		))
	}
	return out, rows.Err()
}

func (r *MembershipRepository) AddRole(ctx context.Context, role membership.Record) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO member_organizations (member_id, organization_id, title, date_start, date_end, source)
SELECT $1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, '')
WHERE NOT EXISTS (
  SELECT 1 FROM member_organizations
  WHERE member_id = $1
    AND organization_id = $2
    AND date_start IS NOT DISTINCT FROM $4
    AND date_end IS NOT DISTINCT FROM $5
    AND deleted_at IS NULL
)
`,
		pgUUID(role.MemberID()),
		pgUUID(role.OrganizationID()),
		role.Title(),
		pgDateOnlyUTC(role.DateStart()),
		pgDateOnlyUTC(role.DateEnd()),
		role.Source(),
	)
	if err != nil {
		return errors.Wrap(err, "add membership role")
	}
	return nil
}

func (r *MembershipRepository) RemoveRole(ctx context.Context, role membership.Record) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if role.ID() != uuid.Nil {
		_, err = tx.Exec(ctx, `
UPDATE member_organizations
SET deleted_at = now(), updated_at = now()
WHERE id = $1 AND deleted_at IS NULL
`, pgUUID(role.ID()))
		if err != nil {
			return errors.Wrap(err, "remove membership role")
		}
		return nil
	}

	_, err = tx.Exec(ctx, `
UPDATE member_organizations
SET deleted_at = now(), updated_at = now()
WHERE member_id = $1
  AND organization_id = $2
  AND date_start IS NOT DISTINCT FROM $3
  AND date_end IS NOT DISTINCT FROM $4
  AND deleted_at IS NULL
`,
		pgUUID(role.MemberID()),
		pgUUID(role.OrganizationID()),
		pgDateOnlyUTC(role.DateStart()),
		pgDateOnlyUTC(role.DateEnd()),
	)
	if err != nil {
		return errors.Wrap(err, "remove membership role")
	}
	return nil
}

func scanRecords(rows pgx.Rows) ([]membership.Record, error) {
	var out []membership.Record
	for rows.Next() {
		var id, member, org pgtype.UUID
		var title, source string
		var dateStart, dateEnd pgtype.Date
		var allowAffiliation, primaryOverride bool
		var createdAt, deletedAt pgtype.Timestamptz
		if err := rows.Scan(
			&id,
			&member,
			&org,
			&title,
			&dateStart,
			&dateEnd,
			&source,
			&allowAffiliation,
			&primaryOverride,
			&createdAt,
			&deletedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, membership.Hydrate(
			uuidFromPg(id),
			uuidFromPg(member),
			uuidFromPg(org),
			title,
			timeFromPgDate(dateStart),
			timeFromPgDate(dateEnd),
			source,
			allowAffiliation,
			primaryOverride,
			timeFromPgTimestamptz(createdAt),
			timeFromPgTimestamptz(deletedAt),
		))
	}
	return out, rows.Err()
}
