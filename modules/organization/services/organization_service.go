package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pulseworks/pulse-sdk/modules/organization/domain/aggregates/organization"
	"github.com/pulseworks/pulse-sdk/pkg/composables"
)

type OrganizationService struct {
	repo organization.Repository
}

func NewOrganizationService(repo organization.Repository) *OrganizationService {
	return &OrganizationService{repo: repo}
}

func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (organization.Organization, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (organization.Organization, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *OrganizationService) MemberCount(ctx context.Context, id uuid.UUID) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.MemberCount(txCtx, id)
	})
}
