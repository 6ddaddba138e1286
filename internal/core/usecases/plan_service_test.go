package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/core/usecases"
)

func TestPlanService_Create_RequiresTitle(t *testing.T) {
	svc := usecases.NewPlanService(&mockPlanRepo{})

	_, err := svc.Create(context.Background(), "u1", &domain.Plan{Title: "   "})
	if !errors.Is(err, domain.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestPlanService_Create_Defaults(t *testing.T) {
	var stored *domain.Plan
	repo := &mockPlanRepo{
		createFn: func(ctx context.Context, plan *domain.Plan) error {
			stored = plan
			return nil
		},
	}
	svc := usecases.NewPlanService(repo)

	plan, err := svc.Create(context.Background(), "u1", &domain.Plan{Title: "  Поездка в горы  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("plan not stored")
	}
	if plan.Title != "Поездка в горы" {
		t.Errorf("title = %q", plan.Title)
	}
	if plan.UserID != "u1" {
		t.Errorf("userID = %q", plan.UserID)
	}
	if plan.Date != usecases.FormatRUDate(time.Now()) {
		t.Errorf("date not defaulted: %q", plan.Date)
	}
	if plan.Locations == nil {
		t.Error("locations should default to an empty list")
	}
}

func TestPlanService_List_NeverNil(t *testing.T) {
	svc := usecases.NewPlanService(&mockPlanRepo{})
	plans, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plans == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestPlanService_Delete_ForeignPlanNoOp(t *testing.T) {
	// Records of other users (and unknown ids) are invisible to the
	// delete: no row matches, and the call still succeeds.
	svc := usecases.NewPlanService(&mockPlanRepo{
		deleteFn: func(ctx context.Context, id, userID string) (bool, error) {
			return false, nil
		},
	})
	if err := svc.Delete(context.Background(), "u1", "someone-elses-plan"); err != nil {
		t.Fatalf("expected no-op success, got %v", err)
	}
}

func TestPlanService_Stats(t *testing.T) {
	repo := &mockPlanRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Plan, error) {
			return &domain.Plan{
				ID:     id,
				UserID: "u1",
				Route: &domain.RouteInstruction{
					Origin:      &domain.Coordinates{Lat: 43.238949, Lng: 76.889709},
					Destination: domain.Coordinates{Lat: 43.2263, Lng: 77.0501},
				},
			}, nil
		},
	}
	svc := usecases.NewPlanService(repo)

	stats, err := svc.Stats(context.Background(), "u1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats == nil || stats.TotalKm <= 0 {
		t.Fatalf("expected positive distance, got %+v", stats)
	}

	// Another user's plan is invisible.
	if _, err := svc.Stats(context.Background(), "u2", "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFormatRUDate(t *testing.T) {
	d := time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)
	if got := usecases.FormatRUDate(d); got != "15 дек 2024" {
		t.Fatalf("got %q", got)
	}
}
