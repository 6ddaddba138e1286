package usecases

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/core/ports"
)

const codeAttempts = 10

// SafetyService handles safety codes, contact links, location sharing
// and SOS alerts.
type SafetyService struct {
	users  ports.UserRepository
	safety ports.SafetyRepository
	events ports.EventPublisher
}

// NewSafetyService creates a new SafetyService.
func NewSafetyService(users ports.UserRepository, safety ports.SafetyRepository, events ports.EventPublisher) *SafetyService {
	return &SafetyService{users: users, safety: safety, events: events}
}

func generateCode() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Code returns the user's safety code, minting one on first use. Codes
// are six uppercase hex characters, unique across users.
func (s *SafetyService) Code(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", domain.ErrNotFound
	}
	if user.SafetyCode != "" {
		return user.SafetyCode, nil
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		taken, err := s.users.GetBySafetyCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code: %w", err)
		}
		if taken != nil {
			continue
		}
		if err := s.users.SetSafetyCode(ctx, userID, code); err != nil {
			return "", fmt.Errorf("store code: %w", err)
		}
		return code, nil
	}
	return "", domain.ErrCodeGeneration
}

// AddContact redeems another user's safety code. The link is directed:
// the code's owner becomes the watched side, the caller the watcher.
func (s *SafetyService) AddContact(ctx context.Context, userID, code string) (*domain.SafetyContact, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 6 {
		return nil, domain.ErrInvalidCode
	}

	owner, err := s.users.GetBySafetyCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("look up code: %w", err)
	}
	if owner == nil {
		return nil, domain.ErrCodeNotFound
	}
	if owner.ID == userID {
		return nil, domain.ErrSelfContact
	}

	exists, err := s.safety.ContactExists(ctx, owner.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("check contact: %w", err)
	}
	if exists {
		return nil, domain.ErrContactExists
	}

	contact := &domain.SafetyContact{
		UserID:        owner.ID,
		ContactUserID: userID,
	}
	if err := s.safety.CreateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

// ListContacts returns every link the user participates in, enriched
// with the other party's profile. The location shown is always the
// code owner's: their own last position when the caller owns the link,
// the watched owner's position otherwise.
func (s *SafetyService) ListContacts(ctx context.Context, userID string) ([]domain.ContactView, error) {
	contacts, err := s.safety.ListContactsOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	views := make([]domain.ContactView, 0, len(contacts))
	for _, c := range contacts {
		isOwner := c.UserID == userID
		otherID := c.ContactUserID
		if !isOwner {
			otherID = c.UserID
		}

		view := domain.ContactView{
			ID:           c.ID,
			IsOwner:      isOwner,
			LastLocation: c.LastLocation,
			CreatedAt:    c.CreatedAt,
		}
		if other, err := s.users.GetByID(ctx, otherID); err == nil && other != nil {
			view.OtherUser = &domain.ContactUser{
				ID:    other.ID,
				Name:  other.Name,
				Email: other.Email,
				Code:  other.SafetyCode,
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// RemoveContact deletes a link the user participates in.
func (s *SafetyService) RemoveContact(ctx context.Context, userID, contactID string) error {
	if contactID == "" {
		return domain.ErrContactNotFound
	}
	deleted, err := s.safety.DeleteContact(ctx, contactID, userID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if !deleted {
		return domain.ErrContactNotFound
	}
	return nil
}

// UpdateLocation overwrites the caller's last known position on every
// link where they are the watched owner, and broadcasts the ping to
// watchers. Returns the number of links updated.
func (s *SafetyService) UpdateLocation(ctx context.Context, userID string, lat, lng float64) (int, error) {
	loc := domain.LastLocation{Lat: lat, Lng: lng, Timestamp: time.Now()}
	updated, err := s.safety.UpdateOwnerLocation(ctx, userID, loc)
	if err != nil {
		return 0, fmt.Errorf("update location: %w", err)
	}
	if s.events != nil && updated > 0 {
		// Broadcast is best-effort: a broker outage must not fail the ping.
		_ = s.events.PublishLocation(ctx, userID, loc)
	}
	return updated, nil
}

// SendSOS raises an alert from a watcher to the owner they watch. Only
// the redeemer side of a link can send one.
func (s *SafetyService) SendSOS(ctx context.Context, userID, contactID string, loc *domain.Coordinates) (*domain.SOSAlert, error) {
	if contactID == "" {
		return nil, domain.ErrContactNotFound
	}
	contact, err := s.safety.GetContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	if contact == nil || contact.ContactUserID != userID {
		return nil, domain.ErrContactNotFound
	}

	senderName := "Неизвестный"
	if sender, err := s.users.GetByID(ctx, userID); err == nil && sender != nil && sender.Name != "" {
		senderName = sender.Name
	}

	alert := &domain.SOSAlert{
		ContactID:  contact.ID,
		FromUserID: userID,
		ToUserID:   contact.UserID,
		Location:   loc,
		Timestamp:  time.Now(),
		Status:     domain.SOSStatusPending,
		Message:    "SOS от " + senderName,
	}
	if err := s.safety.CreateSOS(ctx, alert); err != nil {
		return nil, fmt.Errorf("create sos: %w", err)
	}

	if s.events != nil {
		_ = s.events.PublishSOS(ctx, alert)
	}
	return alert, nil
}

// ListUnreadSOS returns pending alerts addressed to the user, newest
// first, enriched with the sender's profile.
func (s *SafetyService) ListUnreadSOS(ctx context.Context, userID string) ([]domain.SOSAlertView, error) {
	alerts, err := s.safety.ListUnreadSOS(ctx, userID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("list sos: %w", err)
	}

	views := make([]domain.SOSAlertView, 0, len(alerts))
	for _, a := range alerts {
		view := domain.SOSAlertView{
			ID:        a.ID,
			Location:  a.Location,
			Timestamp: a.Timestamp,
			Message:   a.Message,
			Status:    a.Status,
		}
		if from, err := s.users.GetByID(ctx, a.FromUserID); err == nil && from != nil {
			view.FromUser = &domain.ContactUser{ID: from.ID, Name: from.Name, Email: from.Email}
		}
		views = append(views, view)
	}
	return views, nil
}

// MarkSOSRead acknowledges an alert. Only the addressee can do it.
func (s *SafetyService) MarkSOSRead(ctx context.Context, userID, alertID string) error {
	if alertID == "" {
		return domain.ErrAlertNotFound
	}
	marked, err := s.safety.MarkSOSRead(ctx, alertID, userID)
	if err != nil {
		return fmt.Errorf("mark sos read: %w", err)
	}
	if !marked {
		return domain.ErrAlertNotFound
	}
	return nil
}
