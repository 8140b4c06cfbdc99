package service

import (
	"context"

	"hosting-storefront/internal/domain"
	"hosting-storefront/internal/repository"
)

// PlanService exposes the read-only hosting plan catalog.
type PlanService interface {
	ListActive(ctx context.Context) ([]domain.Plan, error)
}

type planService struct {
	plans repository.PlanRepository
}

func NewPlanService(plans repository.PlanRepository) PlanService {
	return &planService{plans: plans}
}

func (s *planService) ListActive(ctx context.Context) ([]domain.Plan, error) {
	return s.plans.ListActive(ctx)
}
