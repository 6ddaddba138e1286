package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// SafetyRepo implements ports.SafetyRepository with pgx. The last
// shared location is a JSONB column on the contact link itself.
type SafetyRepo struct {
	db *DB
}

// NewSafetyRepo creates a new SafetyRepo.
func NewSafetyRepo(db *DB) *SafetyRepo {
	return &SafetyRepo{db: db}
}

// CreateContact inserts a directed owner-to-watcher link.
func (r *SafetyRepo) CreateContact(ctx context.Context, c *domain.SafetyContact) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO safety_contacts (user_id, contact_user_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, c.UserID, c.ContactUserID).Scan(&c.ID, &c.CreatedAt)
}

// ContactExists reports whether the directed link already exists.
func (r *SafetyRepo) ContactExists(ctx context.Context, ownerID, redeemerID string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM safety_contacts WHERE user_id = $1 AND contact_user_id = $2
		)
	`, ownerID, redeemerID).Scan(&exists)
	return exists, err
}

// ListContactsOf returns every link the user participates in, on
// either side, oldest first.
func (r *SafetyRepo) ListContactsOf(ctx context.Context, userID string) ([]domain.SafetyContact, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, user_id, contact_user_id, last_location, created_at
		FROM safety_contacts
		WHERE user_id = $1 OR contact_user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.SafetyContact
	for rows.Next() {
		var c domain.SafetyContact
		if err := rows.Scan(&c.ID, &c.UserID, &c.ContactUserID, &c.LastLocation, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// GetContact returns one link, or nil when missing.
func (r *SafetyRepo) GetContact(ctx context.Context, contactID string) (*domain.SafetyContact, error) {
	var c domain.SafetyContact
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, contact_user_id, last_location, created_at
		FROM safety_contacts WHERE id = $1
	`, contactID).Scan(&c.ID, &c.UserID, &c.ContactUserID, &c.LastLocation, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteContact removes a link if the user participates in it.
func (r *SafetyRepo) DeleteContact(ctx context.Context, contactID, userID string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		DELETE FROM safety_contacts
		WHERE id = $1 AND (user_id = $2 OR contact_user_id = $2)
	`, contactID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateOwnerLocation overwrites the shared location on every link the
// user owns. Last write wins.
func (r *SafetyRepo) UpdateOwnerLocation(ctx context.Context, ownerID string, loc domain.LastLocation) (int, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE safety_contacts SET last_location = $2 WHERE user_id = $1
	`, ownerID, loc)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// CreateSOS inserts an alert and fills in the generated ID.
func (r *SafetyRepo) CreateSOS(ctx context.Context, a *domain.SOSAlert) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO sos_alerts (contact_id, from_user_id, to_user_id, location, ts, status, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, a.ContactID, a.FromUserID, a.ToUserID, a.Location, a.Timestamp, a.Status, a.Message).Scan(&a.ID)
}

// ListUnreadSOS returns pending alerts for the addressee, newest first,
// capped at 50.
func (r *SafetyRepo) ListUnreadSOS(ctx context.Context, toUserID string, since time.Time) ([]domain.SOSAlert, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, contact_id, from_user_id, to_user_id, location, ts, status, message
		FROM sos_alerts
		WHERE to_user_id = $1 AND status <> 'read' AND ts >= $2
		ORDER BY ts DESC
		LIMIT 50
	`, toUserID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.SOSAlert
	for rows.Next() {
		var a domain.SOSAlert
		if err := rows.Scan(&a.ID, &a.ContactID, &a.FromUserID, &a.ToUserID,
			&a.Location, &a.Timestamp, &a.Status, &a.Message); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// MarkSOSRead flips an alert to read if the user is its addressee.
func (r *SafetyRepo) MarkSOSRead(ctx context.Context, alertID, toUserID string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE sos_alerts SET status = 'read' WHERE id = $1 AND to_user_id = $2
	`, alertID, toUserID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
