package handlers

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
	"github.com/pulseworks/pulse-sdk/modules/member/services"
	"github.com/pulseworks/pulse-sdk/pkg/composables"
	"github.com/pulseworks/pulse-sdk/pkg/queue"
)

const (
	TypeRefreshAffiliations = "member:refresh_affiliations"
	TypeMergeEntities       = "entity:merge"
)

type RefreshAffiliationsPayload struct {
	MemberID uuid.UUID `json:"memberId"`
}

type MergeEntitiesPayload struct {
	Kind        membership.MergeKind `json:"kind"`
	PrimaryID   uuid.UUID            `json:"primaryId"`
	SecondaryID uuid.UUID            `json:"secondaryId"`
}

// MemberTaskHandler runs the maintenance tasks off the queue. Each task is
// scoped to one member (or one merge pair), so handlers for different members
// run concurrently without coordination.
type MemberTaskHandler struct {
	affiliations *services.AffiliationService
	merges       *services.MergeService
	pool         *pgxpool.Pool
	log          *logrus.Logger
}

func NewMemberTaskHandler(
	affiliations *services.AffiliationService,
	merges *services.MergeService,
	pool *pgxpool.Pool,
	log *logrus.Logger,
) *MemberTaskHandler {
	return &MemberTaskHandler{
		affiliations: affiliations,
		merges:       merges,
		pool:         pool,
		log:          log,
	}
}

func (h *MemberTaskHandler) Register(srv *queue.Server) {
	srv.HandleFunc(TypeRefreshAffiliations, h.HandleRefreshAffiliations)
	srv.HandleFunc(TypeMergeEntities, h.HandleMergeEntities)
}

func (h *MemberTaskHandler) HandleRefreshAffiliations(ctx context.Context, t *asynq.Task) error {
	var payload RefreshAffiliationsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return errors.Wrap(err, "unmarshal refresh payload")
	}
	if payload.MemberID == uuid.Nil {
		return errors.New("refresh task requires a member id")
	}

	ctx = composables.WithPool(ctx, h.pool)
	processed, err := h.affiliations.RefreshMemberAffiliations(ctx, payload.MemberID)
	if err != nil {
		h.log.WithError(err).WithField("member_id", payload.MemberID).Error("affiliation refresh failed")
		return err
	}
	h.log.WithFields(logrus.Fields{
		"member_id": payload.MemberID,
		"processed": processed,
	}).Debug("affiliation refresh task done")
	return nil
}

func (h *MemberTaskHandler) HandleMergeEntities(ctx context.Context, t *asynq.Task) error {
	var payload MergeEntitiesPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return errors.Wrap(err, "unmarshal merge payload")
	}
	if payload.PrimaryID == uuid.Nil || payload.SecondaryID == uuid.Nil {
		return errors.New("merge task requires primary and secondary ids")
	}

	ctx = composables.WithPool(ctx, h.pool)
	var err error
	switch payload.Kind {
	case membership.MergeKindMember:
		_, err = h.merges.MergeMembers(ctx, payload.PrimaryID, payload.SecondaryID)
	case membership.MergeKindOrganization:
		_, err = h.merges.MergeOrganizations(ctx, payload.PrimaryID, payload.SecondaryID)
	default:
		return errors.Errorf("unknown merge kind %q", payload.Kind)
	}
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"kind":         payload.Kind,
			"primary_id":   payload.PrimaryID,
			"secondary_id": payload.SecondaryID,
		}).Error("entity merge failed")
	}
	return err
}

// EnqueueRefresh pushes a per-member affiliation refresh task.
func EnqueueRefresh(ctx context.Context, client *queue.Client, memberID uuid.UUID) error {
	return client.Enqueue(ctx, TypeRefreshAffiliations, RefreshAffiliationsPayload{MemberID: memberID})
}

// EnqueueMerge pushes an entity merge task.
func EnqueueMerge(ctx context.Context, client *queue.Client, kind membership.MergeKind, primaryID, secondaryID uuid.UUID) error {
	return client.Enqueue(ctx, TypeMergeEntities, MergeEntitiesPayload{
		Kind:        kind,
		PrimaryID:   primaryID,
		SecondaryID: secondaryID,
	})
}
