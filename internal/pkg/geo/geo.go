package geo

import (
	"math"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

const earthRadiusKm = 6371.0

// DefaultTravelSpeedKmh is the assumed overland travel speed used when
// estimating route durations.
const DefaultTravelSpeedKmh = 70.0

// DefaultCenter is the fallback map center (Astana).
var DefaultCenter = domain.Coordinates{Lat: 51.128, Lng: 71.43}

// DefaultDestination is the fallback route destination (Almaty, Kok-Tobe).
var DefaultDestination = domain.Coordinates{Lat: 43.238949, Lng: 76.889709}

// Haversine calculates the great-circle distance in kilometers between
// two points. Always non-negative; zero for identical points.
func Haversine(a, b domain.Coordinates) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*sinLng*sinLng
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// ComputeRouteStats sums consecutive-pair distances over an ordered
// waypoint sequence and derives per-segment durations at speedKmh.
// Segment durations are floored at one minute so coincident points do
// not produce zero-length legs. Returns nil for fewer than two points;
// that is the sole failure condition. Values are rounded for display
// stability: distances to 1 decimal, hours to 2.
func ComputeRouteStats(points []domain.Coordinates, speedKmh float64) *domain.RouteStats {
	if len(points) < 2 {
		return nil
	}
	if speedKmh <= 0 {
		speedKmh = DefaultTravelSpeedKmh
	}

	segments := make([]domain.RouteSegmentStat, 0, len(points)-1)
	totalKm := 0.0

	for i := 0; i < len(points)-1; i++ {
		distance := Haversine(points[i], points[i+1])
		durationHours := math.Max(distance/speedKmh, 1.0/60.0)
		totalKm += distance
		segments = append(segments, domain.RouteSegmentStat{
			FromIndex:     i,
			ToIndex:       i + 1,
			DistanceKm:    Round1(distance),
			DurationHours: round2(durationHours),
		})
	}

	return &domain.RouteStats{
		TotalKm:    Round1(totalKm),
		TotalHours: round2(totalKm / speedKmh),
		Segments:   segments,
	}
}

// BoundingBox returns a box around a point with the given radius in
// kilometers, usable as a cheap prefilter before exact distances.
func BoundingBox(center domain.Coordinates, radiusKm float64) (minLat, minLng, maxLat, maxLng float64) {
	latDelta := radiusKm / 111.32
	lngDelta := radiusKm / (111.32 * math.Cos(toRad(center.Lat)))

	return center.Lat - latDelta, center.Lng - lngDelta, center.Lat + latDelta, center.Lng + lngDelta
}

// Round1 rounds to one decimal place, matching the display precision
// used for distances throughout the API.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
