package places

import (
	"fmt"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// categoryRule is one OSM-style tag pattern: a key plus an optional
// required value. Empty value means "key present with any value".
type categoryRule struct {
	Key   string
	Value string
}

// CategoryMapping maps the browsable category keys onto the tag
// patterns that qualify a place for them.
var CategoryMapping = map[string][]categoryRule{
	"attraction": {
		{"tourism", ""},
		{"historic", ""},
		{"leisure", "theme_park"},
		{"leisure", "park"},
		{"man_made", "monument"},
	},
	"nature": {
		{"natural", ""},
		{"leisure", "nature_reserve"},
		{"leisure", "park"},
	},
	"food": {
		{"amenity", "restaurant"},
		{"amenity", "cafe"},
		{"amenity", "fast_food"},
		{"amenity", "bar"},
		{"amenity", "pub"},
	},
	"hotels": {
		{"tourism", "hotel"},
		{"tourism", "hostel"},
		{"tourism", "guest_house"},
		{"tourism", "motel"},
		{"amenity", "lodging"},
	},
	"shopping": {
		{"shop", ""},
		{"shop", "mall"},
		{"shop", "supermarket"},
		{"shop", "convenience"},
		{"shop", "souvenir"},
	},
	"transport": {
		{"aeroway", ""},
		{"railway", ""},
		{"public_transport", ""},
		{"amenity", "bus_station"},
		{"highway", "bus_stop"},
		{"amenity", "ferry_terminal"},
	},
	"safety": {
		{"amenity", "hospital"},
		{"amenity", "police"},
		{"amenity", "pharmacy"},
		{"emergency", ""},
		{"amenity", "fire_station"},
	},
	"services": {
		{"amenity", "bank"},
		{"amenity", "atm"},
		{"amenity", "post_office"},
		{"office", ""},
	},
}

// CategoryKeys lists the valid category identifiers, for error
// responses on unknown categories.
func CategoryKeys() []string {
	keys := make([]string, 0, len(CategoryMapping))
	for k := range CategoryMapping {
		keys = append(keys, k)
	}
	return keys
}

// MatchesCategory reports whether the place qualifies for the named
// category. A rule matches either through the place's tag map (key
// present, and value equal when the rule pins one) or through its
// category list (the bare key, or "key:value").
func MatchesCategory(p domain.Place, category string) bool {
	rules, ok := CategoryMapping[category]
	if !ok {
		return false
	}

	for _, rule := range rules {
		if v, present := p.Tags[rule.Key]; present && v != nil {
			if rule.Value == "" || fmt.Sprintf("%v", v) == rule.Value {
				return true
			}
		}
		for _, c := range p.Category {
			if c == rule.Key || c == rule.Key+":"+rule.Value {
				return true
			}
		}
	}
	return false
}
