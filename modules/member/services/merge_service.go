package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
	"github.com/pulseworks/pulse-sdk/pkg/eventbus"
)

// MergeService reconciles two entities' membership-role sets when members or
// organizations are merged. Removals apply before additions so the
// insert-if-not-exists add never collides with a row about to be superseded.
type MergeService struct {
	memberships membership.Repository
	publisher   eventbus.EventBus
	log         *logrus.Logger
}

func NewMergeService(memberships membership.Repository, publisher eventbus.EventBus, log *logrus.Logger) *MergeService {
	return &MergeService{
		memberships: memberships,
		publisher:   publisher,
		log:         log,
	}
}

func (s *MergeService) MergeMembers(ctx context.Context, primaryID, secondaryID uuid.UUID) (MergeResult, error) {
	return s.merge(ctx, membership.MergeKindMember, primaryID, secondaryID,
		s.memberships.FetchForMember, MemberMergeStrategy(primaryID))
}

func (s *MergeService) MergeOrganizations(ctx context.Context, primaryID, secondaryID uuid.UUID) (MergeResult, error) {
	return s.merge(ctx, membership.MergeKindOrganization, primaryID, secondaryID,
		s.memberships.FetchForOrganization, OrganizationMergeStrategy(primaryID))
}

func (s *MergeService) merge(
	ctx context.Context,
	kind membership.MergeKind,
	primaryID, secondaryID uuid.UUID,
	fetch func(context.Context, uuid.UUID) ([]membership.Record, error),
	strategy MergeStrategy,
) (MergeResult, error) {
	var result MergeResult
	err := runInTx(ctx, func(txCtx context.Context) error {
		primaryRoles, err := fetch(txCtx, primaryID)
		if err != nil {
			return errors.Wrap(err, "fetch primary roles")
		}
		secondaryRoles, err := fetch(txCtx, secondaryID)
		if err != nil {
			return errors.Wrap(err, "fetch secondary roles")
		}

		merged, err := mergeRoles(primaryRoles, secondaryRoles, strategy)
		if err != nil {
			return err
		}

		for _, role := range merged.Removed {
			if err := s.memberships.RemoveRole(txCtx, role); err != nil {
				return errors.Wrap(err, "remove role")
			}
		}
		for _, role := range merged.Added {
			if err := s.memberships.AddRole(txCtx, role); err != nil {
				return errors.Wrap(err, "add role")
			}
		}
		result = merged
		return nil
	})
	if err != nil {
		return MergeResult{}, err
	}

	s.log.WithFields(logrus.Fields{
		"kind":         kind,
		"primary_id":   primaryID,
		"secondary_id": secondaryID,
		"added":        len(result.Added),
		"removed":      len(result.Removed),
	}).Info("membership roles merged")

	s.publisher.Publish(&membership.RolesMergedEvent{
		Kind:        kind,
		PrimaryID:   primaryID,
		SecondaryID: secondaryID,
		Added:       len(result.Added),
		Removed:     len(result.Removed),
	})

	return result, nil
}
