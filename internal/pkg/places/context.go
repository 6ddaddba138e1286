package places

import (
	"fmt"
	"strings"

	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/pkg/geo"
)

// The guide converses in Russian, so the context blocks handed to the
// model are Russian by contract.

// NearbyContext formats the static-sample ranking around the user's
// position into a prompt block. Returns "" when coords is nil.
func NearbyContext(coords *domain.Coordinates) string {
	if coords == nil {
		return ""
	}
	nearby := Rank(*coords, SamplePlaces, 3)
	if len(nearby) == 0 {
		return ""
	}

	lines := make([]string, 0, len(nearby))
	for i, p := range nearby {
		lines = append(lines, fmt.Sprintf("%d. %s (%s) · %v км · %s",
			i+1, p.Name, p.City, geo.Round1(*p.DistanceKm), strings.Join(headTags(p.Category, 3), ", ")))
	}

	return fmt.Sprintf(
		"У пользователя включен доступ к геолокации. Координаты: %.4f, %.4f. Эта точка считается стартом (origin) любого маршрута; не выдумывай отдельную точку А. В радиусе оказались места:\n%s\nИспользуй их в подсказках или сравнениях, если уместно.",
		coords.Lat, coords.Lng, strings.Join(lines, "\n"))
}

// StoredContext formats places loaded from the database into a prompt
// block. Returns "" when the list is empty.
func StoredContext(coords *domain.Coordinates, list []domain.Place) string {
	if len(list) == 0 {
		return ""
	}

	header := "Ниже данные о популярных местах из базы:"
	if coords != nil {
		header = fmt.Sprintf("Маршрут планируется от координат %.4f, %.4f. Ниже актуальные места из базы:", coords.Lat, coords.Lng)
	}

	lines := make([]string, 0, len(list))
	for i, p := range list {
		name := p.Name
		if name == "" {
			name = "Без названия"
		}
		city := p.City
		if city == "" {
			city = "город"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s (%s)", i+1, name, city)
		if p.DistanceKm != nil {
			fmt.Fprintf(&b, " · %v км", geo.Round1(*p.DistanceKm))
		}
		if len(p.Category) > 0 {
			fmt.Fprintf(&b, " · %s", strings.Join(headTags(p.Category, 3), ", "))
		}
		lines = append(lines, b.String())
	}

	return header + "\n" + strings.Join(lines, "\n") + "\nИспользуй эти факты, когда предлагаешь маршруты, и создавай origin только из координат пользователя."
}

func headTags(tags []string, n int) []string {
	if len(tags) > n {
		return tags[:n]
	}
	return tags
}
