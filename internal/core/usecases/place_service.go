package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/core/ports"
	"github.com/sayahatkz/sayahat/internal/pkg/aitext"
	"github.com/sayahatkz/sayahat/internal/pkg/places"
)

const (
	defaultPlaceLimit = 50
	gptSearchLimit    = 15
	gptCandidateCap   = 100
	gptContextCap     = 30
	searchRadiusKm    = 30
	widenedRadiusKm   = 50
)

// PlaceResult is a place listing together with the size of the
// unfiltered pool and an optional average price.
type PlaceResult struct {
	Places   []domain.Place `json:"places"`
	Total    int            `json:"total"`
	AvgPrice *int           `json:"avg_price,omitempty"`
}

// PlaceService handles place search, category browsing and the
// GPT-assisted lookup.
type PlaceService struct {
	towns     ports.TownRepository
	cache     ports.CacheService
	completer ports.ChatCompleter
}

// NewPlaceService creates a new PlaceService.
func NewPlaceService(towns ports.TownRepository, cache ports.CacheService, completer ports.ChatCompleter) *PlaceService {
	return &PlaceService{towns: towns, cache: cache, completer: completer}
}

// all loads and decodes every usable place across all towns. The
// flattened list is cached: town documents are large and change rarely.
func (s *PlaceService) all(ctx context.Context) ([]domain.Place, error) {
	const cacheKey = "places:all"
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var list []domain.Place
			if err := json.Unmarshal(data, &list); err == nil {
				return list, nil
			}
		}
	}

	towns, err := s.towns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list towns: %w", err)
	}
	var list []domain.Place
	for _, town := range towns {
		list = append(list, places.FromTown(town)...)
	}

	if s.cache != nil {
		if data, err := json.Marshal(list); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}
	return list, nil
}

// List returns all decoded places, optionally capped.
func (s *PlaceService) List(ctx context.Context, offset, limit int) (*PlaceResult, error) {
	list, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	total := len(list)
	if offset > 0 {
		if offset >= len(list) {
			list = nil
		} else {
			list = list[offset:]
		}
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return &PlaceResult{Places: list, Total: total}, nil
}

// Search filters places by free-text query, optional town and optional
// exact category entry. With coordinates, results are distance-ranked.
func (s *PlaceService) Search(ctx context.Context, query, cityID, category string, coords *domain.Coordinates, limit int) (*PlaceResult, error) {
	if limit <= 0 || limit > defaultPlaceLimit {
		limit = defaultPlaceLimit
	}

	var pool []domain.Place
	if cityID != "" {
		town, err := s.towns.GetByID(ctx, cityID)
		if err != nil {
			return nil, fmt.Errorf("get town: %w", err)
		}
		if town == nil {
			return &PlaceResult{Places: []domain.Place{}}, nil
		}
		pool = places.FromTown(*town)
	} else {
		all, err := s.all(ctx)
		if err != nil {
			return nil, err
		}
		pool = all
	}

	var matched []domain.Place
	for _, p := range pool {
		if !places.MatchesQuery(p, query) {
			continue
		}
		if category != "" && !places.HasCategory(p, category) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	if coords != nil {
		matched = places.Rank(*coords, matched, limit)
	} else if len(matched) > limit {
		matched = matched[:limit]
	}
	if matched == nil {
		matched = []domain.Place{}
	}
	return &PlaceResult{Places: matched, Total: total}, nil
}

// ByCategory returns places matching a browsable category key. When a
// completer is configured and the pool is big enough, the model reranks
// the distance-sorted top slice.
func (s *PlaceService) ByCategory(ctx context.Context, category, city string, coords *domain.Coordinates, limit int) (*PlaceResult, error) {
	if _, ok := places.CategoryMapping[category]; !ok {
		return nil, domain.ErrUnknownCategory
	}
	if limit <= 0 || limit > defaultPlaceLimit {
		limit = defaultPlaceLimit
	}

	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	var matched []domain.Place
	for _, p := range all {
		if city != "" && city != "all" && p.City != city {
			continue
		}
		if places.MatchesCategory(p, category) {
			matched = append(matched, p)
		}
	}

	total := len(matched)
	if coords != nil {
		matched = places.Rank(*coords, matched, 0)
	}

	selected := matched
	if len(selected) > limit {
		selected = selected[:limit]
	}

	if s.completer != nil && len(matched) > 10 {
		if reranked := s.rerankCategory(ctx, category, matched, limit); len(reranked) > 0 {
			selected = reranked
		}
	}
	if selected == nil {
		selected = []domain.Place{}
	}
	return &PlaceResult{Places: selected, Total: total, AvgPrice: places.AveragePriceKZT(selected)}, nil
}

// rerankCategory asks the model to pick the best candidates out of the
// top slice. Any failure falls back to the distance order.
func (s *PlaceService) rerankCategory(ctx context.Context, category string, matched []domain.Place, limit int) []domain.Place {
	top := matched
	if len(top) > gptContextCap {
		top = top[:gptContextCap]
	}

	type compact struct {
		ID         string   `json:"id"`
		Name       string   `json:"name"`
		Stars      *float64 `json:"stars,omitempty"`
		PriceKZT   *float64 `json:"price_kzt,omitempty"`
		DistanceKm *float64 `json:"distanceKm,omitempty"`
		City       string   `json:"city"`
	}
	payload := make([]compact, 0, len(top))
	for _, p := range top {
		payload = append(payload, compact{
			ID: p.ID, Name: p.Name, Stars: p.Stars,
			PriceKZT: p.PriceKZT, DistanceKm: p.DistanceKm, City: p.City,
		})
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil
	}

	prompt := fmt.Sprintf(`Выбери 10-15 лучших мест из списка для категории "%s".
Учитывай: рейтинг (stars), цену (price_kzt), расстояние от пользователя, наличие контактов (phone, website).
Верни только JSON массив с id мест в порядке приоритета: ["id1", "id2", ...]

Места:
%s`, category, data)

	reply, err := s.completer.Complete(ctx, []domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: "Ты помощник для выбора лучших мест. Отвечай только валидным JSON массивом ID."},
		{Role: domain.ChatRoleUser, Content: prompt},
	}, 0.3, 500)
	if err != nil {
		return nil
	}

	ids := aitext.ExtractIDList(reply)
	if len(ids) == 0 {
		return nil
	}
	byID := make(map[string]domain.Place, len(matched))
	for _, p := range matched {
		byID[p.ID] = p
	}
	var out []domain.Place
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GPTSearch answers a free-text place query with model selection over
// the nearest candidates. The 30 km candidate radius widens to 50 km
// when it yields fewer than ten places, and any model failure degrades
// to the plain nearest ranking.
func (s *PlaceService) GPTSearch(ctx context.Context, query string, coords *domain.Coordinates, limit int) (*PlaceResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if limit <= 0 {
		limit = gptSearchLimit
	}

	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	total := len(all)

	var candidates []domain.Place
	if coords != nil {
		candidates = places.Within(*coords, all, searchRadiusKm)
		if len(candidates) < 10 {
			candidates = places.Within(*coords, all, widenedRadiusKm)
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return *candidates[i].DistanceKm < *candidates[j].DistanceKm
		})
		if len(candidates) > gptCandidateCap {
			candidates = candidates[:gptCandidateCap]
		}
	} else {
		candidates = all
		if len(candidates) > gptCandidateCap {
			candidates = candidates[:gptCandidateCap]
		}
	}

	if city := places.MentionedCity(query); city != "" {
		var filtered []domain.Place
		for _, p := range candidates {
			if p.City == city {
				filtered = append(filtered, p)
			}
		}
		candidates = filtered
	}

	selected := candidates
	if len(selected) > limit {
		selected = selected[:limit]
	}

	if s.completer != nil && len(candidates) > 0 {
		if picked := s.selectByQuery(ctx, query, coords, candidates, limit); len(picked) > 0 {
			selected = picked
		}
	}
	if selected == nil {
		selected = []domain.Place{}
	}
	return &PlaceResult{Places: selected, Total: total, AvgPrice: places.AveragePriceKZT(selected)}, nil
}

func (s *PlaceService) selectByQuery(ctx context.Context, query string, coords *domain.Coordinates, candidates []domain.Place, limit int) []domain.Place {
	top := candidates
	if len(top) > gptContextCap {
		top = top[:gptContextCap]
	}

	lines := make([]string, 0, len(top))
	for i, p := range top {
		distance := "не указано"
		if p.DistanceKm != nil {
			distance = fmt.Sprintf("%.1f км", *p.DistanceKm)
		}
		tags, _ := json.Marshal(importantTags(p.Tags))
		cats := strings.Join(p.Category, ", ")
		if cats == "" {
			cats = "нет"
		}
		lines = append(lines, fmt.Sprintf("%d. ID: %s | Название: %s | Город: %s | Расстояние: %s | Теги: %s | Категория: %s",
			i+1, p.ID, p.Name, p.City, distance, tags, cats))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Пользователь ищет: %q\n", query)
	if coords != nil {
		fmt.Fprintf(&b, "Пользователь находится по координатам: %v, %v\n", coords.Lat, coords.Lng)
	}
	if city := places.MentionedCity(query); city != "" {
		fmt.Fprintf(&b, "ВАЖНО: Пользователь указал город %q - выбирай ТОЛЬКО места из этого города.\n", city)
	}
	b.WriteString("\nДоступные места (отсортированы по расстоянию, БЛИЖАЙШИЕ ПЕРВЫМИ):\n")
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\nЗадача: Выбери 10-15 РАЗНЫХ ID мест (каждый ID уникален), которые ближайшие к пользователю и соответствуют запросу %q.\n", query)
	b.WriteString("Верни ТОЛЬКО JSON массив уникальных ID: [\"id1\", \"id2\", \"id3\", ...]\nБЕЗ текста, БЕЗ объяснений - ТОЛЬКО массив ID.")

	reply, err := s.completer.Complete(ctx, []domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: `Ты помощник для поиска БЛИЖАЙШИХ и РЕЛЕВАНТНЫХ мест.

СТРОГИЕ ПРАВИЛА:
1. ВСЕГДА выбирай места с НАИМЕНЬШИМ distanceKm - они ближайшие
2. Места в списке УЖЕ отсортированы по расстоянию - первые ближайшие
3. Ищи соответствие запросу в: name, category, tags (shop, amenity, tourism, leisure, cuisine)
4. НЕ возвращай одинаковые ID - каждый уникален
5. Если указан город - ТОЛЬКО места из этого города
6. Отвечай ТОЛЬКО JSON массивом: ["id1", "id2", "id3"]`},
		{Role: domain.ChatRoleUser, Content: b.String()},
	}, 0.2, 800)
	if err != nil {
		return nil
	}

	ids := aitext.ExtractIDList(reply)
	if len(ids) == 0 {
		return nil
	}

	byID := make(map[string]domain.Place, len(candidates))
	for _, p := range candidates {
		byID[p.ID] = p
	}
	var out []domain.Place
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}

	// A thin selection is topped up with the nearest unpicked candidates.
	if len(out) < 5 {
		picked := make(map[string]struct{}, len(out))
		for _, p := range out {
			picked[p.ID] = struct{}{}
		}
		for _, p := range candidates {
			if len(out) >= limit {
				break
			}
			if _, ok := picked[p.ID]; ok {
				continue
			}
			out = append(out, p)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

var importantTagKeys = []string{"shop", "amenity", "tourism", "leisure", "name", "addr:place", "cuisine", "brand"}

func importantTags(tags map[string]any) map[string]any {
	out := map[string]any{}
	for _, k := range importantTagKeys {
		if v, ok := tags[k]; ok && v != nil {
			out[k] = v
		}
	}
	return out
}
