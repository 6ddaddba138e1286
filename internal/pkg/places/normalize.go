// Package places holds the pure place-handling logic: decoding raw town
// records into the canonical Place shape, distance ranking, query and
// category matching, and the prompt context blocks fed to the AI guide.
package places

import (
	"github.com/google/uuid"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// Source town data is inconsistently cased and named, so every
// coordinate read goes through these candidate lists.
var (
	latKeys = []string{"lat", "Lat", "latitude", "Latitude"}
	lngKeys = []string{"lon", "Lon", "longitude", "Longitude", "lng", "Lng"}
)

// Normalize decodes one raw embedded place record into the canonical
// Place shape. Records lacking numeric coordinates after field-name
// normalization are skipped: the function returns nil and the caller
// moves on. All field-name guessing is confined here.
func Normalize(raw map[string]any, cityID, cityName string) *domain.Place {
	if raw == nil {
		return nil
	}

	lat, ok := numberField(raw, latKeys)
	if !ok {
		return nil
	}
	lng, ok := numberField(raw, lngKeys)
	if !ok {
		return nil
	}

	p := &domain.Place{
		Name:     "Без названия",
		City:     cityName,
		CityID:   cityID,
		Location: domain.Coordinates{Lat: lat, Lng: lng},
	}

	if id, ok := stringField(raw, "id", "_id"); ok && id != "" {
		p.ID = id
	} else {
		p.ID = "place_" + cityID + "_" + uuid.NewString()
	}
	if name, ok := stringField(raw, "name", "Name"); ok && name != "" {
		p.Name = name
	}
	p.Category = stringList(pick(raw, "category", "Category"))
	if tags, ok := pick(raw, "tags", "Tags").(map[string]any); ok {
		p.Tags = tags
	}
	if price, ok := raw["price_kzt"].(float64); ok {
		p.PriceKZT = &price
	}
	if stars, ok := raw["stars"].(float64); ok {
		p.Stars = &stars
	}
	return p
}

// FromTown decodes every usable place embedded in a town document.
func FromTown(town domain.Town) []domain.Place {
	cityName := town.Name
	if cityName == "" {
		cityName = "Неизвестный город"
	}
	var out []domain.Place
	for _, raw := range town.Places {
		if p := Normalize(raw, town.ID, cityName); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func pick(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func numberField(raw map[string]any, keys []string) (float64, bool) {
	for _, k := range keys {
		if v, ok := raw[k].(float64); ok {
			return v, true
		}
	}
	return 0, false
}

func stringField(raw map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok {
			return v, true
		}
	}
	return "", false
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, entry := range list {
		if s, ok := entry.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
