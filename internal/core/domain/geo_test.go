package domain

import (
	"encoding/json"
	"testing"
)

func TestRouteHint_UnmarshalBothForms(t *testing.T) {
	raw := `{"destination":{"lat":43.2,"lng":76.8},` +
		`"hints":["поверните налево",{"instruction":"прямо 2 км","distance":2000,"sign":0}]}`

	var r RouteInstruction
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(r.Hints) != 2 {
		t.Fatalf("hints = %d, want 2", len(r.Hints))
	}
	if r.Hints[0].Instruction != "поверните налево" {
		t.Errorf("string hint = %q", r.Hints[0].Instruction)
	}
	if r.Hints[1].Instruction != "прямо 2 км" || r.Hints[1].Distance != 2000 {
		t.Errorf("object hint = %+v", r.Hints[1])
	}
}

func TestRouteHint_UnmarshalRejectsOtherTypes(t *testing.T) {
	var h RouteHint
	if err := json.Unmarshal([]byte(`42`), &h); err == nil {
		t.Fatal("expected error for numeric hint")
	}
}

func TestRouteInstruction_Points(t *testing.T) {
	r := RouteInstruction{
		Origin:      &Coordinates{Lat: 1, Lng: 2},
		Via:         []Coordinates{{Lat: 3, Lng: 4}},
		Destination: Coordinates{Lat: 5, Lng: 6},
	}
	pts := r.Points()
	if len(pts) != 3 || pts[0].Lat != 1 || pts[1].Lat != 3 || pts[2].Lat != 5 {
		t.Fatalf("points = %+v", pts)
	}

	r.Origin = nil
	if pts := r.Points(); len(pts) != 2 {
		t.Fatalf("points without origin = %+v", pts)
	}
}
