package http

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sayahatkz/sayahat/internal/adapters/postgres"
	"github.com/sayahatkz/sayahat/internal/adapters/valkey"
	"github.com/sayahatkz/sayahat/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Auth   *usecases.AuthService
	Plans  *usecases.PlanService
	Notes  *usecases.NoteService
	Safety *usecases.SafetyService
	Places *usecases.PlaceService
	Chat   *usecases.ChatService
	NATS   *nats.Conn
	DB     *postgres.DB
	Cache  *valkey.Cache

	JWTSecret string
	TokenTTL  time.Duration
}
