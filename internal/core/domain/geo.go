package domain

import "encoding/json"

// Coordinates represents a geographic coordinate pair (WGS 84).
// No range validation is applied anywhere; callers must not assume
// lat/lng are within conventional bounds.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteHint is a single turn-by-turn hint. Either a bare instruction
// string or a structured entry with distance/time annotations.
type RouteHint struct {
	Instruction string  `json:"instruction"`
	Distance    float64 `json:"distance,omitempty"`
	Time        float64 `json:"time,omitempty"`
	Sign        int     `json:"sign,omitempty"`
}

// UnmarshalJSON decodes both hint forms: a bare string becomes the
// Instruction, an object decodes field by field.
func (h *RouteHint) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &h.Instruction)
	}
	type plain RouteHint
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*h = RouteHint(p)
	return nil
}

// RouteInstruction describes one active route overlay. At most one is
// current per session: a new build replaces, never merges.
type RouteInstruction struct {
	Origin      *Coordinates  `json:"origin,omitempty"`
	Destination Coordinates   `json:"destination"`
	Via         []Coordinates `json:"via,omitempty"`
	Note        string        `json:"note,omitempty"`
	Hints       []RouteHint   `json:"hints,omitempty"`
}

// Points returns the ordered waypoint sequence of the route:
// origin (if present), via points, then destination.
func (r *RouteInstruction) Points() []Coordinates {
	var pts []Coordinates
	if r.Origin != nil {
		pts = append(pts, *r.Origin)
	}
	pts = append(pts, r.Via...)
	return append(pts, r.Destination)
}

// RouteSegmentStat is a derived per-segment statistic. Never stored;
// recomputed from the point sequence on demand.
type RouteSegmentStat struct {
	FromIndex     int     `json:"from_index"`
	ToIndex       int     `json:"to_index"`
	DistanceKm    float64 `json:"distance_km"`
	DurationHours float64 `json:"duration_hours"`
}

// RouteStats aggregates segment distances and estimated travel time.
type RouteStats struct {
	TotalKm    float64            `json:"total_km"`
	TotalHours float64            `json:"total_hours"`
	Segments   []RouteSegmentStat `json:"segments"`
}
