package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"
	"github.com/sayahatkz/sayahat/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// The flat places listing predates the search endpoints.
	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{
			Path:        "/v1/places",
			SunsetDate:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			Alternative: "/v1/places/search",
		},
	}))

	// Health & readiness (no timeout — fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1 — 15s standard timeout, 60s where an AI call is involved
	v1 := app.Group("/v1")

	// Auth
	v1.Post("/auth/register", timeout.NewWithContext(RegisterHandler(deps), 15*time.Second))
	v1.Post("/auth/login", timeout.NewWithContext(LoginHandler(deps), 15*time.Second))

	// Plans & notes: reads degrade to empty lists for anonymous callers,
	// writes require a token.
	v1.Get("/plans", OptionalAuth(deps.JWTSecret), timeout.NewWithContext(ListPlansHandler(deps), 15*time.Second))
	v1.Post("/plans", RequireAuth(deps.JWTSecret), timeout.NewWithContext(CreatePlanHandler(deps), 15*time.Second))
	v1.Delete("/plans/:id", RequireAuth(deps.JWTSecret), timeout.NewWithContext(DeletePlanHandler(deps), 15*time.Second))
	v1.Get("/plans/:id/stats", RequireAuth(deps.JWTSecret), timeout.NewWithContext(PlanStatsHandler(deps), 15*time.Second))
	v1.Get("/notes", OptionalAuth(deps.JWTSecret), timeout.NewWithContext(ListNotesHandler(deps), 15*time.Second))
	v1.Post("/notes", RequireAuth(deps.JWTSecret), timeout.NewWithContext(CreateNoteHandler(deps), 15*time.Second))
	v1.Delete("/notes/:id", RequireAuth(deps.JWTSecret), timeout.NewWithContext(DeleteNoteHandler(deps), 15*time.Second))

	// Safety: every operation is tied to an account
	safety := v1.Group("/safety", RequireAuth(deps.JWTSecret))
	safety.Get("/code", timeout.NewWithContext(SafetyCodeHandler(deps), 15*time.Second))
	safety.Get("/contacts", timeout.NewWithContext(ListContactsHandler(deps), 15*time.Second))
	safety.Post("/contacts", timeout.NewWithContext(AddContactHandler(deps), 15*time.Second))
	safety.Delete("/contacts/:id", timeout.NewWithContext(RemoveContactHandler(deps), 15*time.Second))
	safety.Post("/location", timeout.NewWithContext(UpdateLocationHandler(deps), 15*time.Second))
	safety.Post("/sos", timeout.NewWithContext(SendSOSHandler(deps), 15*time.Second))
	safety.Get("/sos/list", timeout.NewWithContext(ListSOSHandler(deps), 15*time.Second))
	safety.Post("/sos/list", timeout.NewWithContext(MarkSOSReadHandler(deps), 15*time.Second))

	// Places
	v1.Get("/places", timeout.NewWithContext(ListPlacesHandler(deps), 15*time.Second)) // deprecated
	v1.Get("/places/search", timeout.NewWithContext(SearchPlacesHandler(deps), 15*time.Second))
	v1.Get("/places/category", timeout.NewWithContext(CategoryPlacesHandler(deps), 60*time.Second))
	v1.Get("/places/nearby", timeout.NewWithContext(NearbyPlacesHandler(deps), 15*time.Second))
	v1.Post("/places/gpt-search", timeout.NewWithContext(GPTSearchPlacesHandler(deps), 60*time.Second))

	// AI guide chat
	v1.Post("/chat", OptionalAuth(deps.JWTSecret), timeout.NewWithContext(ChatHandler(deps), 60*time.Second))

	// GraphQL
	app.Post("/graphql", OptionalAuth(deps.JWTSecret), GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket relay for safety events
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
