package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/core/ports"
	"github.com/sayahatkz/sayahat/internal/pkg/geo"
)

// PlanService handles travel plan business logic.
type PlanService struct {
	plans ports.PlanRepository
}

// NewPlanService creates a new PlanService.
func NewPlanService(plans ports.PlanRepository) *PlanService {
	return &PlanService{plans: plans}
}

var ruMonths = [...]string{
	"янв", "фев", "мар", "апр", "мая", "июн",
	"июл", "авг", "сен", "окт", "ноя", "дек",
}

// FormatRUDate renders a date the way plans display it: "15 дек 2024".
func FormatRUDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), ruMonths[t.Month()-1], t.Year())
}

// Create stores a plan. Title is mandatory; a missing date defaults to
// today in display form, missing locations to an empty list.
func (s *PlanService) Create(ctx context.Context, userID string, plan *domain.Plan) (*domain.Plan, error) {
	plan.Title = strings.TrimSpace(plan.Title)
	if plan.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	if plan.Date == "" {
		plan.Date = FormatRUDate(time.Now())
	}
	if plan.Locations == nil {
		plan.Locations = []domain.PlanLocation{}
	}
	plan.UserID = userID

	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return plan, nil
}

// List returns the user's plans, newest first.
func (s *PlanService) List(ctx context.Context, userID string) ([]domain.Plan, error) {
	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	return plans, nil
}

// Delete removes one of the user's plans. The delete is scoped to the
// caller's records; when nothing matches (unknown id or another user's
// plan) it is a no-op reporting success.
func (s *PlanService) Delete(ctx context.Context, userID, planID string) error {
	if _, err := s.plans.Delete(ctx, planID, userID); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}

// Stats computes distance and duration for a stored plan's route at the
// default travel speed. Returns nil when the plan has no usable route.
func (s *PlanService) Stats(ctx context.Context, userID, planID string) (*domain.RouteStats, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if plan == nil || plan.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if plan.Route == nil {
		return nil, nil
	}
	return geo.ComputeRouteStats(plan.Route.Points(), geo.DefaultTravelSpeedKmh), nil
}
