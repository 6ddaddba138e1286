package ports

import (
	"context"
	"time"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetBySafetyCode(ctx context.Context, code string) (*domain.User, error)
	SetSafetyCode(ctx context.Context, userID, code string) error
}

// PlanRepository persists travel plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) error
	ListByUser(ctx context.Context, userID string) ([]domain.Plan, error)
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// NoteRepository persists notes, receipts and vouchers.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	ListByUser(ctx context.Context, userID string) ([]domain.Note, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// SafetyRepository persists safety contacts and SOS alerts.
type SafetyRepository interface {
	CreateContact(ctx context.Context, contact *domain.SafetyContact) error
	ContactExists(ctx context.Context, ownerID, redeemerID string) (bool, error)
	ListContactsOf(ctx context.Context, userID string) ([]domain.SafetyContact, error)
	GetContact(ctx context.Context, contactID string) (*domain.SafetyContact, error)
	DeleteContact(ctx context.Context, contactID, userID string) (bool, error)
	// UpdateOwnerLocation overwrites the last known location on every
	// contact link where the user is the watched owner.
	UpdateOwnerLocation(ctx context.Context, ownerID string, loc domain.LastLocation) (int, error)

	CreateSOS(ctx context.Context, alert *domain.SOSAlert) error
	ListUnreadSOS(ctx context.Context, toUserID string, since time.Time) ([]domain.SOSAlert, error)
	MarkSOSRead(ctx context.Context, alertID, toUserID string) (bool, error)
}

// TownRepository reads the town documents that embed raw place records.
type TownRepository interface {
	List(ctx context.Context) ([]domain.Town, error)
	GetByID(ctx context.Context, id string) (*domain.Town, error)
}
