package places

import (
	"fmt"
	"strings"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// cityMentions maps lowercase Russian city mentions, including common
// declensions, onto canonical city names.
var cityMentions = map[string]string{
	"алматы":   "Алматы",
	"алмата":   "Алматы",
	"алмате":   "Алматы",
	"шымкент":  "Шымкент",
	"шымкенте": "Шымкент",
	"астана":   "Астана",
	"астане":   "Астана",
	"астану":   "Астана",
}

// orderedMentions fixes the lookup order so repeated calls resolve the
// same city when a query happens to contain several mention forms.
var orderedMentions = []string{
	"алматы", "алмата", "алмате",
	"шымкент", "шымкенте",
	"астана", "астане", "астану",
}

// MentionedCity scans a free-text query for a known city mention and
// returns the canonical city name, or "" when none is found.
func MentionedCity(query string) string {
	lower := strings.ToLower(query)
	for _, key := range orderedMentions {
		if strings.Contains(lower, key) {
			return cityMentions[key]
		}
	}
	return ""
}

// MatchesQuery reports whether the place matches a free-text search
// query. An empty query matches everything. A non-empty query matches
// on a case-insensitive substring hit in the place name, any category
// entry, or any tag key or value.
func MatchesQuery(p domain.Place, query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return true
	}

	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	for _, c := range p.Category {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	for k, v := range p.Tags {
		if strings.Contains(strings.ToLower(k), needle) {
			return true
		}
		if v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(fmt.Sprintf("%v", v)), needle) {
			return true
		}
	}
	return false
}

// HasCategory reports whether the place's category list contains the
// given entry, compared case-insensitively and exactly.
func HasCategory(p domain.Place, category string) bool {
	want := strings.ToLower(category)
	for _, c := range p.Category {
		if strings.ToLower(c) == want {
			return true
		}
	}
	return false
}

// AveragePriceKZT returns the rounded mean of the positive prices in
// the list, or nil when none carry one.
func AveragePriceKZT(list []domain.Place) *int {
	var sum float64
	var n int
	for _, p := range list {
		if p.PriceKZT != nil && *p.PriceKZT > 0 {
			sum += *p.PriceKZT
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := int(sum/float64(n) + 0.5)
	return &avg
}
