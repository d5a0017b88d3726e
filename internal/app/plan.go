package app

import (
	"context"

	"github.com/morlabs/nightplanner/internal/planner"
)

// PlanUsecase defines the plan-building use case.
type PlanUsecase interface {
	BuildPlan(ctx context.Context, date string, profile planner.Profile) (*planner.Plan, error)
}

// PlanService implements PlanUsecase by delegating to the planner.
type PlanService struct {
	Planner *planner.Service
}

// BuildPlan ranks the stored events for date against profile.
func (s *PlanService) BuildPlan(ctx context.Context, date string, profile planner.Profile) (*planner.Plan, error) {
	return s.Planner.Plan(ctx, date, profile)
}
