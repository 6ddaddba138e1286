package places

import (
	"sort"

	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/pkg/geo"
)

// SamplePlaces is the static fallback used when no town data is
// reachable, so the guide still has something to recommend.
var SamplePlaces = []domain.Place{
	{
		ID:       "almaty-1",
		Name:     "Кок-Тобе",
		City:     "Алматы",
		CityID:   "almaty",
		Location: domain.Coordinates{Lat: 43.238949, Lng: 76.889709},
		Category: []string{"панорамы", "канатка", "городской отдых"},
	},
	{
		ID:       "almaty-2",
		Name:     "Медеу",
		City:     "Алматы",
		CityID:   "almaty",
		Location: domain.Coordinates{Lat: 43.2263, Lng: 77.0501},
		Category: []string{"спорт", "природа"},
	},
	{
		ID:       "shymkent-1",
		Name:     "Цитадель Шымкента",
		City:     "Шымкент",
		CityID:   "shymkent",
		Location: domain.Coordinates{Lat: 42.3188, Lng: 69.5969},
		Category: []string{"история", "музей"},
	},
	{
		ID:       "shymkent-2",
		Name:     "Этноаул Каскасу",
		City:     "Шымкент",
		CityID:   "shymkent",
		Location: domain.Coordinates{Lat: 42.3676, Lng: 69.9151},
		Category: []string{"этно", "природа", "семейный отдых"},
	},
}

// Rank returns up to limit places ordered by ascending haversine
// distance from origin. Ties keep their input order. Each returned
// place carries its computed distance.
func Rank(origin domain.Coordinates, all []domain.Place, limit int) []domain.Place {
	out := make([]domain.Place, len(all))
	copy(out, all)
	for i := range out {
		d := geo.Haversine(origin, out[i].Location)
		out[i].DistanceKm = &d
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].DistanceKm < *out[j].DistanceKm
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Within filters places to those no farther than radiusKm from origin,
// preserving input order. Distances are filled in on the results.
// A bounding-box check culls far-away candidates before the exact
// haversine; the box fully contains the radius circle, so no match
// is lost.
func Within(origin domain.Coordinates, all []domain.Place, radiusKm float64) []domain.Place {
	minLat, minLng, maxLat, maxLng := geo.BoundingBox(origin, radiusKm)

	var out []domain.Place
	for _, p := range all {
		if p.Location.Lat < minLat || p.Location.Lat > maxLat ||
			p.Location.Lng < minLng || p.Location.Lng > maxLng {
			continue
		}
		d := geo.Haversine(origin, p.Location)
		if d <= radiusKm {
			p.DistanceKm = &d
			out = append(out, p)
		}
	}
	return out
}
