package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ClaimedWindow marks a segment-scoped time range already assigned by a
// higher-priority reassignment pass. Rows it covers must not be matched
// again. Since is inclusive, Until exclusive; a zero Until means open-ended.
type ClaimedWindow struct {
	SegmentID uuid.UUID
	Since     time.Time
	Until     time.Time
}

// Covers reports whether the window claims the given segment and timestamp.
func (w ClaimedWindow) Covers(segmentID uuid.UUID, ts time.Time) bool {
	if segmentID != w.SegmentID {
		return false
	}
	if !w.Since.IsZero() && ts.Before(w.Since) {
		return false
	}
	return w.Until.IsZero() || ts.Before(w.Until)
}

// ReassignFilter selects the member's activity relations eligible for one
// bounded reassignment batch. Zero-valued fields are omitted from the
// predicate; Since is inclusive, Until exclusive. Rows whose organization
// already equals the target are never matched, which is what makes repeated
// propagation idempotent. Rows covered by any Exclude window are never
// matched either, so lower-priority passes cannot undo higher-priority ones.
type ReassignFilter struct {
	MemberID  uuid.UUID
	SegmentID uuid.UUID
	Since     time.Time
	Until     time.Time
	Exclude   []ClaimedWindow
}

type Repository interface {
	// BatchReassign updates at most batchSize matching rows to the given
	// organization (Nil clears the assignment) and returns the ids of the
	// rows it touched. Callers drain by looping while the returned count
	// equals batchSize.
	BatchReassign(ctx context.Context, filter ReassignFilter, organizationID uuid.UUID, batchSize int) ([]uuid.UUID, error)
}
