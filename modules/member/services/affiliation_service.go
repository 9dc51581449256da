package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/activity"
	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
	"github.com/pulseworks/pulse-sdk/modules/organization/domain/aggregates/organization"
	"github.com/pulseworks/pulse-sdk/pkg/eventbus"
)

// AffiliationService recomputes a member's primary-affiliation timeline and
// propagates it onto the member's historical activity stream. It runs as an
// asynchronous maintenance task per member; concurrent re-triggers for the
// same member are safe because every propagation batch is idempotent.
type AffiliationService struct {
	memberships   membership.Repository
	activities    activity.Repository
	organizations organization.Repository
	publisher     eventbus.EventBus
	log           *logrus.Logger
	batchSize     int
	now           func() time.Time
}

func NewAffiliationService(
	memberships membership.Repository,
	activities activity.Repository,
	organizations organization.Repository,
	publisher eventbus.EventBus,
	log *logrus.Logger,
	batchSize int,
) *AffiliationService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &AffiliationService{
		memberships:   memberships,
		activities:    activities,
		organizations: organizations,
		publisher:     publisher,
		log:           log,
		batchSize:     batchSize,
		now:           time.Now,
	}
}

// RefreshMemberAffiliations is the maintenance entry point: fetch the
// member's membership history, resolve the timeline, overlay manual
// affiliations and drain the activity reassignment batches. Returns the
// number of activity rows rewritten. A member with no records and no manual
// affiliations resolves to an empty timeline and a no-op propagation.
func (s *AffiliationService) RefreshMemberAffiliations(ctx context.Context, memberID uuid.UUID) (int, error) {
	var records []membership.Record
	var manual []membership.ManualAffiliation

	err := runInTx(ctx, func(txCtx context.Context) error {
		var innerErr error
		if records, innerErr = s.memberships.FetchForMember(txCtx, memberID); innerErr != nil {
			return errors.Wrap(innerErr, "fetch membership records")
		}
		if manual, innerErr = s.memberships.FetchManualAffiliations(txCtx, memberID); innerErr != nil {
			return errors.Wrap(innerErr, "fetch manual affiliations")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	popularity, err := s.fetchPopularity(ctx, records)
	if err != nil {
		return 0, err
	}

	today := dayOnly(s.now())
	segments, earliest, err := buildTimeline(records, popularity, today)
	if err != nil {
		return 0, errors.Wrap(err, "build timeline")
	}

	fallbackOrg, err := resolveFallback(records)
	if err != nil {
		return 0, errors.Wrap(err, "resolve fallback organization")
	}

	windows := overlayAffiliations(manual, segments)

	processed, err := s.propagate(ctx, memberID, windows, fallbackOrg, earliest)
	if err != nil {
		return processed, errors.Wrap(err, "propagate affiliations")
	}

	s.log.WithFields(logrus.Fields{
		"member_id": memberID,
		"segments":  len(segments),
		"windows":   len(windows),
		"processed": processed,
	}).Info("member affiliations refreshed")

	s.publisher.Publish(&membership.AffiliationsRefreshedEvent{
		MemberID:  memberID,
		Segments:  len(segments),
		Processed: processed,
	})

	return processed, nil
}

// fetchPopularity prefetches the member-count metric once per distinct
// organization in the record set so the selector stays pure.
func (s *AffiliationService) fetchPopularity(ctx context.Context, records []membership.Record) (map[uuid.UUID]int64, error) {
	popularity := make(map[uuid.UUID]int64)
	for _, r := range records {
		orgID := r.OrganizationID()
		if orgID == uuid.Nil {
			continue
		}
		if _, ok := popularity[orgID]; ok {
			continue
		}
		count, err := s.organizations.MemberCount(ctx, orgID)
		if err != nil {
			return nil, errors.Wrapf(err, "fetch member count for organization %s", orgID)
		}
		popularity[orgID] = count
	}
	return popularity, nil
}
