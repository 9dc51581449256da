package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/activity"
)

// DefaultBatchSize bounds each activity reassignment UPDATE.
const DefaultBatchSize = 5000

// propagate rewrites activity organization assignments window by window in
// priority order, then reassigns everything before the earliest known start
// date to the fallback organization. Every window's predicate only matches
// rows whose current value differs from the desired one, so a re-run after
// no data changes touches zero rows. Each manual window claims its rows:
// every later pass excludes them, which is what keeps manual affiliations
// authoritative over the inferred timeline and the fallback sweep.
func (s *AffiliationService) propagate(
	ctx context.Context,
	memberID uuid.UUID,
	windows []AffiliationWindow,
	fallbackOrg uuid.UUID,
	earliest time.Time,
) (int, error) {
	processed := 0
	var claimed []activity.ClaimedWindow

	for _, w := range windows {
		filter := activity.ReassignFilter{
			MemberID: memberID,
			Since:    w.DateStart,
			Exclude:  claimed,
		}
		if !w.DateEnd.IsZero() {
			filter.Until = dayAfter(w.DateEnd)
		}
		if w.Manual {
			filter.SegmentID = w.SegmentID
		}

		n, err := s.drain(ctx, filter, w.OrganizationID)
		if err != nil {
			return processed, err
		}
		processed += n

		if w.Manual {
			claim := activity.ClaimedWindow{SegmentID: w.SegmentID, Since: w.DateStart}
			if !w.DateEnd.IsZero() {
				claim.Until = dayAfter(w.DateEnd)
			}
			claimed = append(claimed, claim)
		}
	}

	// Without a dated record or a fallback there is no decision to make for
	// the remaining activities; they keep their previous assignment.
	if fallbackOrg == uuid.Nil && earliest.IsZero() {
		return processed, nil
	}

	filter := activity.ReassignFilter{MemberID: memberID, Exclude: claimed}
	if !earliest.IsZero() {
		filter.Until = earliest
	}
	n, err := s.drain(ctx, filter, fallbackOrg)
	if err != nil {
		return processed, err
	}
	return processed + n, nil
}

// drain issues bounded reassignment batches, each in its own short
// transaction, until a batch comes back smaller than the page size.
func (s *AffiliationService) drain(ctx context.Context, filter activity.ReassignFilter, organizationID uuid.UUID) (int, error) {
	total := 0
	for {
		var ids []uuid.UUID
		err := runInTx(ctx, func(txCtx context.Context) error {
			var innerErr error
			ids, innerErr = s.activities.BatchReassign(txCtx, filter, organizationID, s.batchSize)
			return innerErr
		})
		if err != nil {
			return total, err
		}
		total += len(ids)
		if len(ids) < s.batchSize {
			return total, nil
		}
	}
}
