package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/activity"
	"github.com/pulseworks/pulse-sdk/pkg/composables"
)

type ActivityRepository struct{}

func NewActivityRepository() activity.Repository {
	return &ActivityRepository{}
}

// BatchReassign rewrites the organization assignment of at most batchSize
// matching activity rows and returns their ids. The inner select takes row
// locks with SKIP LOCKED so concurrent drains never wait on each other; the
// IS DISTINCT FROM guard keeps the statement idempotent.
func (r *ActivityRepository) BatchReassign(
	ctx context.Context,
	filter activity.ReassignFilter,
	organizationID uuid.UUID,
	batchSize int,
) ([]uuid.UUID, error) {
	if batchSize <= 0 {
		return nil, errors.New("batch size must be positive")
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var where strings.Builder
	args := []any{pgUUID(organizationID), pgUUID(filter.MemberID)}
	where.WriteString("member_id = $2 AND organization_id IS DISTINCT FROM $1")

	if filter.SegmentID != uuid.Nil {
		args = append(args, pgUUID(filter.SegmentID))
		fmt.Fprintf(&where, " AND segment_id = $%d", len(args))
	}
	if !filter.Since.IsZero() {
		args = append(args, pgTimestamptz(filter.Since))
		fmt.Fprintf(&where, ` AND "timestamp" >= $%d`, len(args))
	}
	if !filter.Until.IsZero() {
		args = append(args, pgTimestamptz(filter.Until))
		fmt.Fprintf(&where, ` AND "timestamp" < $%d`, len(args))
	}
	for _, claim := range filter.Exclude {
		args = append(args, pgUUID(claim.SegmentID))
		cond := fmt.Sprintf("segment_id = $%d", len(args))
		if !claim.Since.IsZero() {
			args = append(args, pgTimestamptz(claim.Since))
			cond += fmt.Sprintf(` AND "timestamp" >= $%d`, len(args))
		}
		if !claim.Until.IsZero() {
			args = append(args, pgTimestamptz(claim.Until))
			cond += fmt.Sprintf(` AND "timestamp" < $%d`, len(args))
		}
		fmt.Fprintf(&where, " AND NOT (%s)", cond)
	}

	args = append(args, batchSize)
	query := fmt.Sprintf(`
UPDATE member_activities
SET organization_id = $1, updated_at = now()
WHERE id IN (
  SELECT id FROM member_activities
  WHERE %s
  LIMIT $%d
  FOR UPDATE SKIP LOCKED
)
RETURNING id
`, where.String(), len(args))

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "batch reassign activities")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, uuidFromPg(id))
	}
	return ids, rows.Err()
}
