package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/core/ports"
	"github.com/sayahatkz/sayahat/internal/pkg/aitext"
	"github.com/sayahatkz/sayahat/internal/pkg/geo"
	"github.com/sayahatkz/sayahat/internal/pkg/metrics"
	"github.com/sayahatkz/sayahat/internal/pkg/places"
)

const systemPrompt = `Ты — Sayahat, AI-гид по Казахстану. Отвечай кратко на русском.

ПРАВИЛА:
1. Если пользователь просит СОХРАНИТЬ ПЛАН/МАРШРУТ (слова: сохрани, создай, добавь план) → в конце ответа добавь:
<plan>{"title":"Название","date":"15 дек 2024","description":"описание","locations":[{"name":"Место","lat":43.2,"lng":76.8}]}</plan>

2. Если пользователь просит СОХРАНИТЬ ЗАМЕТКУ/ЧЕК/ВАУЧЕР (слова: сохрани заметку, добавь в заметки, запомни, чек, ваучер) → в конце ответа добавь:
<note>{"title":"Заголовок","content":"текст","type":"note"}</note>
Тип: "receipt" для чеков, "voucher" для ваучеров, "note" для остального.

3. Для маршрута добавь в конце:
<route>{"destination":{"lat":43.2,"lng":76.8},"origin":{"lat":...,"lng":...},"note":"описание"}</route>

ИНФОРМАЦИЯ О ГОРОДАХ:
- В базе данных есть информация о местах в Шымкенте и Алматы
- Когда пользователь спрашивает о местах, ресторанах, достопримечательностях в этих городах, используй данные из базы
- Можешь упоминать конкретные места, если они есть в базе данных

ВАЖНО: Блоки <plan>, <note>, <route> добавляй ТОЛЬКО в самом конце, после всего текста. Внутри тегов только JSON, без текста.`

const fallbackReply = "Извините, не удалось составить ответ. Попробуйте сформулировать вопрос иначе."

const (
	historyCap      = 10
	chatTemperature = 0.7
	chatMaxTokens   = 500
	nearbyFromDB    = 6
)

// ChatResult is one answered guide turn: the display text plus whatever
// records the turn produced.
type ChatResult struct {
	Reply      string                   `json:"reply"`
	Plan       *domain.Plan             `json:"plan,omitempty"`
	Note       *domain.Note             `json:"note,omitempty"`
	Route      *domain.RouteInstruction `json:"route,omitempty"`
	RouteStats *domain.RouteStats       `json:"route_stats,omitempty"`
}

// ChatService orchestrates a guide turn: context assembly, the model
// call, tag extraction and record persistence.
type ChatService struct {
	completer ports.ChatCompleter
	towns     ports.TownRepository
	plans     *PlanService
	notes     *NoteService
	log       *slog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(completer ports.ChatCompleter, towns ports.TownRepository, plans *PlanService, notes *NoteService, log *slog.Logger) *ChatService {
	if log == nil {
		log = slog.Default()
	}
	return &ChatService{completer: completer, towns: towns, plans: plans, notes: notes, log: log}
}

// Chat answers one user turn. userID may be empty for anonymous use;
// records are only persisted for authenticated users. Context assembly
// failures degrade the answer instead of failing the turn; only an
// upstream model failure surfaces as an error.
func (s *ChatService) Chat(ctx context.Context, userID, prompt string, history []domain.ChatMessage, coords *domain.Coordinates) (*ChatResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}

	messages := s.assembleMessages(ctx, prompt, history, coords)

	reply, err := s.completer.Complete(ctx, messages, chatTemperature, chatMaxTokens)
	if err != nil {
		s.log.Error("chat completion failed", "error", err)
		return nil, domain.ErrUpstream
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = fallbackReply
	}

	extraction := aitext.Extract(reply)
	recordTagOutcome("plan", extraction.Plan.Status)
	recordTagOutcome("note", extraction.Note.Status)
	recordTagOutcome("route", extraction.Route.Status)
	result := &ChatResult{Reply: aitext.SanitizeMarkdown(extraction.Text)}

	intent := aitext.DetectIntent(prompt)
	s.persistPlan(ctx, userID, prompt, intent, extraction, result)
	s.persistNote(ctx, userID, prompt, intent, extraction, result)

	s.attachRoute(extraction, coords, result)
	return result, nil
}

// assembleMessages builds the system prompt stack: the guide persona,
// then location context, then database city summaries, then trimmed
// history, then the user turn.
func (s *ChatService) assembleMessages(ctx context.Context, prompt string, history []domain.ChatMessage, coords *domain.Coordinates) []domain.ChatMessage {
	messages := []domain.ChatMessage{{Role: domain.ChatRoleSystem, Content: systemPrompt}}

	locationContext := places.NearbyContext(coords)
	if coords != nil {
		if fromDB := s.storedNearbyContext(ctx, *coords); fromDB != "" {
			locationContext = fromDB
		}
	}
	if locationContext != "" {
		messages = append(messages, domain.ChatMessage{Role: domain.ChatRoleSystem, Content: locationContext})
	}
	if cities := s.citiesContext(ctx); cities != "" {
		messages = append(messages, domain.ChatMessage{Role: domain.ChatRoleSystem, Content: cities})
	}

	messages = append(messages, sanitizeHistory(history)...)
	return append(messages, domain.ChatMessage{Role: domain.ChatRoleUser, Content: prompt})
}

// sanitizeHistory keeps only well-formed user/assistant turns and the
// most recent ten of them.
func sanitizeHistory(history []domain.ChatMessage) []domain.ChatMessage {
	var safe []domain.ChatMessage
	for _, m := range history {
		if (m.Role == domain.ChatRoleUser || m.Role == domain.ChatRoleAssistant) && m.Content != "" {
			safe = append(safe, m)
		}
	}
	if len(safe) > historyCap {
		safe = safe[len(safe)-historyCap:]
	}
	return safe
}

func (s *ChatService) storedNearbyContext(ctx context.Context, coords domain.Coordinates) string {
	towns, err := s.towns.List(ctx)
	if err != nil {
		s.log.Warn("nearby context unavailable", "error", err)
		return ""
	}
	var all []domain.Place
	for _, town := range towns {
		all = append(all, places.FromTown(town)...)
	}
	return places.StoredContext(&coords, places.Rank(coords, all, nearbyFromDB))
}

// citiesContext summarizes the town documents so the model knows what
// the database can back up.
func (s *ChatService) citiesContext(ctx context.Context) string {
	towns, err := s.towns.List(ctx)
	if err != nil || len(towns) == 0 {
		if err != nil {
			s.log.Warn("cities context unavailable", "error", err)
		}
		return ""
	}

	lines := make([]string, 0, len(towns))
	for _, town := range towns {
		name := town.Name
		if name == "" {
			name = "Неизвестный город"
		}

		categories := map[string]struct{}{}
		sample := town.Places
		if len(sample) > 50 {
			sample = sample[:50]
		}
		for _, raw := range sample {
			if list, ok := raw["category"].([]any); ok {
				for _, c := range list {
					if cat, ok := c.(string); ok {
						categories[cat] = struct{}{}
					}
				}
			}
		}
		names := make([]string, 0, len(categories))
		for c := range categories {
			names = append(names, c)
		}
		sort.Strings(names)
		if len(names) > 5 {
			names = names[:5]
		}
		catText := strings.Join(names, ", ")
		if catText == "" {
			catText = "разные"
		}
		lines = append(lines, fmt.Sprintf("- %s (ID: %s): %d мест. Категории: %s", name, town.ID, len(town.Places), catText))
	}

	return "\n\nДОСТУПНЫЕ ГОРОДА В БАЗЕ ДАННЫХ:\n" + strings.Join(lines, "\n") +
		"\n\nКогда пользователь спрашивает о местах, ресторанах, магазинах, достопримечательностях в Шымкенте или Алматы, используй информацию из базы данных. Можешь упоминать конкретные места, если они есть в базе."
}

// persistPlan saves a plan when the model emitted a valid plan tag, or
// when the user's own message asked for one and the model did not.
func (s *ChatService) persistPlan(ctx context.Context, userID, prompt string, intent aitext.Intent, ex aitext.Extraction, result *ChatResult) {
	if userID == "" || s.plans == nil {
		return
	}

	var plan *domain.Plan
	switch {
	case ex.Plan.Status == aitext.TagOK:
		p := ex.Plan.Value
		plan = &domain.Plan{
			Title:       p.Title,
			Date:        p.Date,
			Description: p.Description,
			Locations:   p.Locations,
			Route:       p.Route,
		}
	case intent.WantsPlan:
		plan = &domain.Plan{
			Title:       aitext.TitleFromContent(intent.Content),
			Description: intent.Content,
			Locations:   []domain.PlanLocation{},
		}
	default:
		return
	}

	created, err := s.plans.Create(ctx, userID, plan)
	if err != nil {
		// Persistence failure must not break the conversation.
		s.log.Warn("plan not saved", "error", err)
		return
	}
	result.Plan = created
}

func (s *ChatService) persistNote(ctx context.Context, userID, prompt string, intent aitext.Intent, ex aitext.Extraction, result *ChatResult) {
	if userID == "" || s.notes == nil {
		return
	}

	var note *domain.Note
	switch {
	case ex.Note.Status == aitext.TagOK:
		n := ex.Note.Value
		note = &domain.Note{Title: n.Title, Content: n.Content, Type: n.Type}
	case intent.WantsNote && result.Plan == nil:
		note = &domain.Note{
			Title:   aitext.TitleFromContent(intent.Content),
			Content: intent.Content,
			Type:    aitext.NoteTypeFor(prompt),
		}
	default:
		return
	}

	created, err := s.notes.Create(ctx, userID, note)
	if err != nil {
		s.log.Warn("note not saved", "error", err)
		return
	}
	result.Note = created
}

// attachRoute picks the route overlay for the turn: the model's route
// tag when valid, otherwise a route built from the saved plan's
// located stops with the user's position as origin.
func (s *ChatService) attachRoute(ex aitext.Extraction, coords *domain.Coordinates, result *ChatResult) {
	if ex.Route.Status == aitext.TagOK {
		result.Route = ex.Route.Value
	} else if result.Plan != nil {
		result.Route = routeFromPlan(result.Plan, coords)
	}
	if result.Route != nil {
		result.RouteStats = geo.ComputeRouteStats(result.Route.Points(), geo.DefaultTravelSpeedKmh)
	}
}

// routeFromPlan assembles a route from the plan's coordinate-bearing
// locations: the last becomes the destination, the rest waypoints.
func routeFromPlan(plan *domain.Plan, coords *domain.Coordinates) *domain.RouteInstruction {
	var located []domain.Coordinates
	for _, loc := range plan.Locations {
		if loc.Lat != nil && loc.Lng != nil {
			located = append(located, domain.Coordinates{Lat: *loc.Lat, Lng: *loc.Lng})
		}
	}
	if len(located) == 0 {
		return nil
	}

	route := &domain.RouteInstruction{
		Destination: located[len(located)-1],
		Note:        plan.Title,
	}
	if len(located) > 1 {
		route.Via = located[:len(located)-1]
	}
	if coords != nil {
		route.Origin = &domain.Coordinates{Lat: coords.Lat, Lng: coords.Lng}
	}
	return route
}

// recordTagOutcome feeds the tag extraction counters.
func recordTagOutcome(tag string, status aitext.TagStatus) {
	switch status {
	case aitext.TagOK:
		metrics.TagExtractions.WithLabelValues(tag, "ok").Inc()
	case aitext.TagInvalid:
		metrics.TagExtractions.WithLabelValues(tag, "invalid").Inc()
	default:
		metrics.TagExtractions.WithLabelValues(tag, "absent").Inc()
	}
}
