package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/core/usecases"
	"github.com/sayahatkz/sayahat/internal/pkg/metrics"
	"github.com/sayahatkz/sayahat/internal/pkg/places"
)

// queryCoords reads lat/lng query params. Nil when either is absent.
func queryCoords(c *fiber.Ctx) *domain.Coordinates {
	if c.Query("lat") == "" || c.Query("lng") == "" {
		return nil
	}
	return &domain.Coordinates{
		Lat: c.QueryFloat("lat", 0),
		Lng: c.QueryFloat("lng", 0),
	}
}

func placeJSON(c *fiber.Ctx, res *usecases.PlaceResult) error {
	body := fiber.Map{
		"places": res.Places,
		"total":  res.Total,
	}
	if res.AvgPrice != nil {
		body["avg_price_kzt"] = *res.AvgPrice
	}
	return c.JSON(body)
}

// ListPlacesHandler is the legacy flat listing kept for old clients.
// New clients should use /v1/places/search.
func ListPlacesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		offset := c.QueryInt("offset", 0)
		if offset < 0 {
			offset = 0
		}

		res, err := deps.Places.List(c.Context(), offset, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		metrics.PlaceSearches.WithLabelValues("list").Inc()
		c.Set("Cache-Control", "public, max-age=300")

		p := Pagination{Offset: offset, Limit: limit, Total: res.Total}
		SetLinkHeaders(c, p)
		return c.JSON(PaginatedResponse{Data: res.Places, Pagination: p})
	}
}

// SearchPlacesHandler filters places by free text, city, and category,
// ranking by distance when coordinates are supplied.
func SearchPlacesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}
		limit := c.QueryInt("limit", 50)
		if limit <= 0 || limit > 200 {
			limit = 50
		}

		res, err := deps.Places.Search(c.Context(), query, c.Query("city"), c.Query("category"), queryCoords(c), limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		metrics.PlaceSearches.WithLabelValues("search").Inc()
		c.Set("Cache-Control", "public, max-age=300")
		return placeJSON(c, res)
	}
}

// CategoryPlacesHandler returns places for a named category, optionally
// reranked by the model when the pool is large.
func CategoryPlacesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := c.Query("category")
		if category == "" {
			return errBadRequest(c, "category query parameter is required")
		}
		limit := c.QueryInt("limit", 50)
		if limit <= 0 || limit > 200 {
			limit = 50
		}

		res, err := deps.Places.ByCategory(c.Context(), category, c.Query("city", "all"), queryCoords(c), limit)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownCategory) {
				return errBadRequest(c, "unknown category: "+category+" (known: "+strings.Join(places.CategoryKeys(), ", ")+")")
			}
			return errInternal(c, err.Error())
		}

		metrics.PlaceSearches.WithLabelValues("category").Inc()
		return placeJSON(c, res)
	}
}

// NearbyPlacesHandler ranks everything in the database by distance
// from the given point.
func NearbyPlacesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		coords := queryCoords(c)
		if coords == nil {
			return errBadRequest(c, "lat and lng are required")
		}
		limit := c.QueryInt("limit", 20)
		if limit <= 0 || limit > 100 {
			limit = 20
		}

		res, err := deps.Places.Search(c.Context(), "", "", "", coords, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		metrics.PlaceSearches.WithLabelValues("nearby").Inc()
		c.Set("Cache-Control", "public, max-age=300")
		return placeJSON(c, res)
	}
}

// GPTSearchPlacesHandler answers a natural-language place query with
// model-assisted selection over nearby candidates.
func GPTSearchPlacesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Query    string              `json:"query"`
			Location *domain.Coordinates `json:"location"`
		}
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		res, err := deps.Places.GPTSearch(c.Context(), req.Query, req.Location, c.QueryInt("limit", 15))
		if err != nil {
			if errors.Is(err, domain.ErrEmptyQuery) {
				return errBadRequest(c, "query is required")
			}
			return errInternal(c, err.Error())
		}

		metrics.PlaceSearches.WithLabelValues("gpt").Inc()
		return placeJSON(c, res)
	}
}
