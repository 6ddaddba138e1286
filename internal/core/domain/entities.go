package domain

import (
	"time"
)

// User is a registered traveller account.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Password   string    `json:"-"`
	SafetyCode string    `json:"safety_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PlanLocation is one named stop inside a plan. Coordinates are
// optional; plans saved from free text carry no geometry.
type PlanLocation struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

// Plan is a saved trip plan. Created via direct form submission,
// AI-detected intent, or an AI-tagged <plan> block.
type Plan struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Title       string            `json:"title"`
	Date        string            `json:"date,omitempty"`
	Description string            `json:"description,omitempty"`
	Locations   []PlanLocation    `json:"locations,omitempty"`
	Route       *RouteInstruction `json:"route,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Note types. Anything else is coerced to NoteTypePlain.
const (
	NoteTypeReceipt = "receipt"
	NoteTypeVoucher = "voucher"
	NoteTypePlain   = "note"
)

// Note is a saved travel note, receipt, or voucher.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LastLocation is the most recent position shared by a code owner.
type LastLocation struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// SafetyContact is a directed watch relationship. UserID owns the
// safety code and is the watched side; ContactUserID redeemed the code
// and watches. LastLocation is written only by the owner side and read
// only by the redeemer side; the asymmetry must hold.
type SafetyContact struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	ContactUserID string        `json:"contact_user_id"`
	LastLocation  *LastLocation `json:"last_location,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ContactView is a SafetyContact enriched for presentation: the "other"
// party and the location visible to the requesting side.
type ContactView struct {
	ID           string        `json:"id"`
	IsOwner      bool          `json:"is_owner"`
	OtherUser    *ContactUser  `json:"other_user,omitempty"`
	LastLocation *LastLocation `json:"last_location,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ContactUser is the public subset of a user shown on a contact card.
type ContactUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Code  string `json:"code,omitempty"`
}

// SOS alert lifecycle states.
const (
	SOSStatusPending = "pending"
	SOSStatusRead    = "read"
)

// SOSAlert is an emergency signal created by a code redeemer and
// addressed to the code owner. Only the addressee may mark it read.
type SOSAlert struct {
	ID         string       `json:"id"`
	ContactID  string       `json:"contact_id"`
	FromUserID string       `json:"from_user_id"`
	ToUserID   string       `json:"to_user_id"`
	Location   *Coordinates `json:"location,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
	Status     string       `json:"status"`
	Message    string       `json:"message"`
}

// SOSAlertView is an SOSAlert enriched with the sender's public profile.
type SOSAlertView struct {
	ID        string       `json:"id"`
	FromUser  *ContactUser `json:"from_user,omitempty"`
	Location  *Coordinates `json:"location,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
	Status    string       `json:"status"`
	Message   string       `json:"message"`
}

// Place is the canonical place shape every raw town record is decoded
// into before any distance computation or ranking.
type Place struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	City       string         `json:"city"`
	CityID     string         `json:"city_id,omitempty"`
	Location   Coordinates    `json:"location"`
	Category   []string       `json:"category,omitempty"`
	Tags       map[string]any `json:"tags,omitempty"`
	PriceKZT   *float64       `json:"price_kzt,omitempty"`
	Stars      *float64       `json:"stars,omitempty"`
	DistanceKm *float64       `json:"distance_km,omitempty"` // computed field
}

// Town is one document from the towns collection: a city with an
// embedded list of raw, heterogeneously named place records.
type Town struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Places []map[string]any `json:"places"`
}

// Chat roles accepted in conversation history.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of an AI guide conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
