// Package aitext extracts structured payloads from AI guide replies.
//
// A reply may carry up to three tagged blocks (<plan>, <note>, <route>),
// each wrapping a JSON object. Extraction is always best effort: a block
// that fails to decode or validate is reported, never raised, and the
// residual text is still returned with every recognized tag stripped.
package aitext

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

const maxRouteHints = 5

// TagStatus reports the outcome of extracting one tag type.
type TagStatus int

const (
	// TagAbsent means the tag did not appear in the reply.
	TagAbsent TagStatus = iota
	// TagInvalid means the tag matched but its payload failed JSON
	// decoding or shape validation. The block is stripped anyway.
	TagInvalid
	// TagOK means a payload was extracted and validated.
	TagOK
)

// PlanPayload is the validated body of a <plan> block.
type PlanPayload struct {
	Title       string                   `json:"title"`
	Date        string                   `json:"date,omitempty"`
	Description string                   `json:"description,omitempty"`
	Locations   []domain.PlanLocation    `json:"locations,omitempty"`
	Route       *domain.RouteInstruction `json:"route,omitempty"`
}

// NotePayload is the validated body of a <note> block.
type NotePayload struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Type    string `json:"type"`
}

// PlanResult holds the outcome of <plan> extraction.
type PlanResult struct {
	Value  *PlanPayload
	Status TagStatus
	Err    error
}

// NoteResult holds the outcome of <note> extraction.
type NoteResult struct {
	Value  *NotePayload
	Status TagStatus
	Err    error
}

// RouteResult holds the outcome of <route> extraction.
type RouteResult struct {
	Value  *domain.RouteInstruction
	Status TagStatus
	Err    error
}

// Extraction is the full result of parsing one AI reply.
type Extraction struct {
	// Text is the residual display text with recognized tags removed.
	// Malformed tags that never matched (e.g. a missing closing tag)
	// are left in place and will be visible to the user.
	Text  string
	Plan  PlanResult
	Note  NoteResult
	Route RouteResult
}

// Extract parses a raw AI reply. Plan and note blocks are extracted
// before the route block: a <route> may coincidentally sit inside a
// plan's description text, and stripping plan/note first prevents
// double processing. That ordering is a behavioral contract.
func Extract(raw string) Extraction {
	var ex Extraction
	if raw == "" {
		return ex
	}

	text := raw

	if inner, rest, found := cutTag(text, "plan"); found {
		text = rest
		ex.Plan = parsePlan(inner)
	}

	if inner, rest, found := cutTag(text, "note"); found {
		text = rest
		ex.Note = parseNote(inner)
	}

	if inner, rest, found := cutTag(text, "route"); found {
		text = rest
		ex.Route = parseRoute(inner)
	}

	ex.Text = strings.TrimSpace(text)
	return ex
}

// cutTag scans for the first <name>…</name> pair, case-insensitive and
// non-nested, and returns the inner payload plus the text with the
// whole block removed. Only the first occurrence is honored; repeated
// tags of the same type are not supported.
func cutTag(s, name string) (inner, rest string, found bool) {
	lower := strings.ToLower(s)
	open := "<" + name + ">"
	close := "</" + name + ">"

	start := strings.Index(lower, open)
	if start < 0 {
		return "", s, false
	}
	end := strings.Index(lower[start+len(open):], close)
	if end < 0 {
		return "", s, false
	}
	end += start + len(open)

	inner = s[start+len(open) : end]
	rest = strings.TrimSpace(s[:start] + s[end+len(close):])
	return inner, rest, true
}

// decodePayload normalizes an inner block and decodes it as a JSON
// object. Models often pretty-print payloads; collapsing whitespace
// runs first keeps line-broken JSON decodable without changing string
// content in practice.
func decodePayload(inner string) (map[string]any, error) {
	cleaned := strings.Join(strings.Fields(strings.TrimSpace(inner)), " ")
	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("payload is not a JSON object")
	}
	return obj, nil
}

func parsePlan(inner string) PlanResult {
	obj, err := decodePayload(inner)
	if err != nil {
		return PlanResult{Status: TagInvalid, Err: fmt.Errorf("plan: %w", err)}
	}

	title, _ := obj["title"].(string)
	title = strings.TrimSpace(title)
	if title == "" {
		return PlanResult{Status: TagInvalid, Err: fmt.Errorf("plan: missing title")}
	}

	p := &PlanPayload{Title: title}
	if date, ok := obj["date"].(string); ok {
		p.Date = date
	}
	if desc, ok := obj["description"].(string); ok {
		p.Description = desc
	}
	if locs, ok := obj["locations"].([]any); ok {
		p.Locations = passThroughLocations(locs)
	}
	if route, ok := obj["route"].(map[string]any); ok {
		// Untyped passthrough: the sub-object is re-decoded as-is,
		// with no per-field validation.
		if data, err := json.Marshal(route); err == nil {
			var ri domain.RouteInstruction
			if json.Unmarshal(data, &ri) == nil {
				p.Route = &ri
			}
		}
	}
	return PlanResult{Value: p, Status: TagOK}
}

// passThroughLocations maps raw location entries without per-entry
// validation; entries that are not objects are dropped.
func passThroughLocations(raw []any) []domain.PlanLocation {
	var out []domain.PlanLocation
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		var loc domain.PlanLocation
		if name, ok := m["name"].(string); ok {
			loc.Name = name
		}
		if lat, ok := m["lat"].(float64); ok {
			loc.Lat = &lat
		}
		if lng, ok := m["lng"].(float64); ok {
			loc.Lng = &lng
		}
		out = append(out, loc)
	}
	return out
}

func parseNote(inner string) NoteResult {
	obj, err := decodePayload(inner)
	if err != nil {
		return NoteResult{Status: TagInvalid, Err: fmt.Errorf("note: %w", err)}
	}

	title, _ := obj["title"].(string)
	title = strings.TrimSpace(title)
	if title == "" {
		return NoteResult{Status: TagInvalid, Err: fmt.Errorf("note: missing title")}
	}

	n := &NotePayload{Title: title, Type: domain.NoteTypePlain}
	if content, ok := obj["content"].(string); ok {
		n.Content = content
	}
	switch obj["type"] {
	case domain.NoteTypeReceipt:
		n.Type = domain.NoteTypeReceipt
	case domain.NoteTypeVoucher:
		n.Type = domain.NoteTypeVoucher
	}
	return NoteResult{Value: n, Status: TagOK}
}

func parseRoute(inner string) RouteResult {
	obj, err := decodePayload(inner)
	if err != nil {
		return RouteResult{Status: TagInvalid, Err: fmt.Errorf("route: %w", err)}
	}

	dest, ok := coordinate(obj["destination"])
	if !ok {
		return RouteResult{Status: TagInvalid, Err: fmt.Errorf("route: missing destination")}
	}

	r := &domain.RouteInstruction{Destination: *dest}
	if origin, ok := coordinate(obj["origin"]); ok {
		r.Origin = origin
	}
	if via, ok := obj["via"].([]any); ok {
		// Invalid via entries are dropped, never fatal.
		for _, entry := range via {
			if c, ok := coordinate(entry); ok {
				r.Via = append(r.Via, *c)
			}
		}
	}
	if note, ok := obj["note"].(string); ok {
		r.Note = note
	}
	if hints, ok := obj["hints"].([]any); ok {
		for _, entry := range hints {
			s, ok := entry.(string)
			if !ok || strings.TrimSpace(s) == "" {
				continue
			}
			r.Hints = append(r.Hints, domain.RouteHint{Instruction: s})
			if len(r.Hints) == maxRouteHints {
				break
			}
		}
	}
	return RouteResult{Value: r, Status: TagOK}
}

// coordinate validates the minimal coordinate shape: an object whose
// lat and lng are both JSON numbers. Nothing else is checked.
func coordinate(v any) (*domain.Coordinates, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	lat, latOK := m["lat"].(float64)
	lng, lngOK := m["lng"].(float64)
	if !latOK || !lngOK {
		return nil, false
	}
	return &domain.Coordinates{Lat: lat, Lng: lng}, true
}
