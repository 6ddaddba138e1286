package usecases_test

import (
	"context"
	"time"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn          func(ctx context.Context, user *domain.User) error
	getByIDFn         func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	getBySafetyCodeFn func(ctx context.Context, code string) (*domain.User, error)
	setSafetyCodeFn   func(ctx context.Context, userID, code string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetBySafetyCode(ctx context.Context, code string) (*domain.User, error) {
	if m.getBySafetyCodeFn != nil {
		return m.getBySafetyCodeFn(ctx, code)
	}
	return nil, nil
}

func (m *mockUserRepo) SetSafetyCode(ctx context.Context, userID, code string) error {
	if m.setSafetyCodeFn != nil {
		return m.setSafetyCodeFn(ctx, userID, code)
	}
	return nil
}

// --- Mock PlanRepository ---

type mockPlanRepo struct {
	createFn     func(ctx context.Context, plan *domain.Plan) error
	listByUserFn func(ctx context.Context, userID string) ([]domain.Plan, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.Plan, error)
	deleteFn     func(ctx context.Context, id, userID string) (bool, error)
}

func (m *mockPlanRepo) Create(ctx context.Context, plan *domain.Plan) error {
	if m.createFn != nil {
		return m.createFn(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepo) ListByUser(ctx context.Context, userID string) ([]domain.Plan, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockPlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPlanRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return false, nil
}

// --- Mock NoteRepository ---

type mockNoteRepo struct {
	createFn     func(ctx context.Context, note *domain.Note) error
	listByUserFn func(ctx context.Context, userID string) ([]domain.Note, error)
	deleteFn     func(ctx context.Context, id, userID string) (bool, error)
}

func (m *mockNoteRepo) Create(ctx context.Context, note *domain.Note) error {
	if m.createFn != nil {
		return m.createFn(ctx, note)
	}
	return nil
}

func (m *mockNoteRepo) ListByUser(ctx context.Context, userID string) ([]domain.Note, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return false, nil
}

// --- Mock SafetyRepository ---

type mockSafetyRepo struct {
	createContactFn       func(ctx context.Context, contact *domain.SafetyContact) error
	contactExistsFn       func(ctx context.Context, ownerID, redeemerID string) (bool, error)
	listContactsOfFn      func(ctx context.Context, userID string) ([]domain.SafetyContact, error)
	getContactFn          func(ctx context.Context, contactID string) (*domain.SafetyContact, error)
	deleteContactFn       func(ctx context.Context, contactID, userID string) (bool, error)
	updateOwnerLocationFn func(ctx context.Context, ownerID string, loc domain.LastLocation) (int, error)
	createSOSFn           func(ctx context.Context, alert *domain.SOSAlert) error
	listUnreadSOSFn       func(ctx context.Context, toUserID string, since time.Time) ([]domain.SOSAlert, error)
	markSOSReadFn         func(ctx context.Context, alertID, toUserID string) (bool, error)
}

func (m *mockSafetyRepo) CreateContact(ctx context.Context, contact *domain.SafetyContact) error {
	if m.createContactFn != nil {
		return m.createContactFn(ctx, contact)
	}
	return nil
}

func (m *mockSafetyRepo) ContactExists(ctx context.Context, ownerID, redeemerID string) (bool, error) {
	if m.contactExistsFn != nil {
		return m.contactExistsFn(ctx, ownerID, redeemerID)
	}
	return false, nil
}

func (m *mockSafetyRepo) ListContactsOf(ctx context.Context, userID string) ([]domain.SafetyContact, error) {
	if m.listContactsOfFn != nil {
		return m.listContactsOfFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockSafetyRepo) GetContact(ctx context.Context, contactID string) (*domain.SafetyContact, error) {
	if m.getContactFn != nil {
		return m.getContactFn(ctx, contactID)
	}
	return nil, nil
}

func (m *mockSafetyRepo) DeleteContact(ctx context.Context, contactID, userID string) (bool, error) {
	if m.deleteContactFn != nil {
		return m.deleteContactFn(ctx, contactID, userID)
	}
	return false, nil
}

func (m *mockSafetyRepo) UpdateOwnerLocation(ctx context.Context, ownerID string, loc domain.LastLocation) (int, error) {
	if m.updateOwnerLocationFn != nil {
		return m.updateOwnerLocationFn(ctx, ownerID, loc)
	}
	return 0, nil
}

func (m *mockSafetyRepo) CreateSOS(ctx context.Context, alert *domain.SOSAlert) error {
	if m.createSOSFn != nil {
		return m.createSOSFn(ctx, alert)
	}
	return nil
}

func (m *mockSafetyRepo) ListUnreadSOS(ctx context.Context, toUserID string, since time.Time) ([]domain.SOSAlert, error) {
	if m.listUnreadSOSFn != nil {
		return m.listUnreadSOSFn(ctx, toUserID, since)
	}
	return nil, nil
}

func (m *mockSafetyRepo) MarkSOSRead(ctx context.Context, alertID, toUserID string) (bool, error) {
	if m.markSOSReadFn != nil {
		return m.markSOSReadFn(ctx, alertID, toUserID)
	}
	return false, nil
}

// --- Mock TownRepository ---

type mockTownRepo struct {
	listFn    func(ctx context.Context) ([]domain.Town, error)
	getByIDFn func(ctx context.Context, id string) (*domain.Town, error)
}

func (m *mockTownRepo) List(ctx context.Context) ([]domain.Town, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockTownRepo) GetByID(ctx context.Context, id string) (*domain.Town, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

// --- Mock ChatCompleter ---

type mockCompleter struct {
	completeFn func(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error)
}

func (m *mockCompleter) Complete(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, messages, temperature, maxTokens)
	}
	return "", nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	publishSOSFn      func(ctx context.Context, alert *domain.SOSAlert) error
	publishLocationFn func(ctx context.Context, ownerID string, loc domain.LastLocation) error
}

func (m *mockPublisher) PublishSOS(ctx context.Context, alert *domain.SOSAlert) error {
	if m.publishSOSFn != nil {
		return m.publishSOSFn(ctx, alert)
	}
	return nil
}

func (m *mockPublisher) PublishLocation(ctx context.Context, ownerID string, loc domain.LastLocation) error {
	if m.publishLocationFn != nil {
		return m.publishLocationFn(ctx, ownerID, loc)
	}
	return nil
}
