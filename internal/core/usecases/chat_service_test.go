package usecases_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sayahatkz/sayahat/internal/core/domain"
	"github.com/sayahatkz/sayahat/internal/core/usecases"
)

func newChatService(completer *mockCompleter, planRepo *mockPlanRepo, noteRepo *mockNoteRepo) *usecases.ChatService {
	towns := &mockTownRepo{}
	return usecases.NewChatService(
		completer,
		towns,
		usecases.NewPlanService(planRepo),
		usecases.NewNoteService(noteRepo),
		nil,
	)
}

func TestChatService_EmptyPromptRejected(t *testing.T) {
	svc := newChatService(&mockCompleter{}, &mockPlanRepo{}, &mockNoteRepo{})
	if _, err := svc.Chat(context.Background(), "u1", "   ", nil, nil); !errors.Is(err, domain.ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
}

func TestChatService_UpstreamFailure(t *testing.T) {
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
			return "", errors.New("boom")
		},
	}
	svc := newChatService(completer, &mockPlanRepo{}, &mockNoteRepo{})
	if _, err := svc.Chat(context.Background(), "u1", "привет", nil, nil); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestChatService_EmptyReplyFallsBack(t *testing.T) {
	svc := newChatService(&mockCompleter{}, &mockPlanRepo{}, &mockNoteRepo{})
	res, err := svc.Chat(context.Background(), "u1", "привет", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Reply, "не удалось составить ответ") {
		t.Fatalf("expected fallback reply, got %q", res.Reply)
	}
}

func TestChatService_PlanTagPersisted(t *testing.T) {
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
			return `Готово! <plan>{"title":"Горы","date":"1 мая 2025","description":"поход","locations":[{"name":"Медеу","lat":43.2263,"lng":77.0501}]}</plan>`, nil
		},
	}
	var stored *domain.Plan
	planRepo := &mockPlanRepo{
		createFn: func(ctx context.Context, plan *domain.Plan) error {
			stored = plan
			return nil
		},
	}
	svc := newChatService(completer, planRepo, &mockNoteRepo{})

	coords := &domain.Coordinates{Lat: 43.238949, Lng: 76.889709}
	res, err := svc.Chat(context.Background(), "u1", "сохрани план поход в горы", nil, coords)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply != "Готово!" {
		t.Errorf("tag not stripped from reply: %q", res.Reply)
	}
	if stored == nil || stored.Title != "Горы" {
		t.Fatalf("plan not persisted from tag: %+v", stored)
	}
	if res.Plan == nil || res.Plan.UserID != "u1" {
		t.Fatalf("result plan missing: %+v", res.Plan)
	}
	// A plan with located stops yields a route overlay with stats.
	if res.Route == nil || res.Route.Destination.Lat != 43.2263 {
		t.Fatalf("expected route from plan locations, got %+v", res.Route)
	}
	if res.RouteStats == nil {
		t.Error("expected route stats")
	}
}

func TestChatService_IntentFallbackCreatesPlan(t *testing.T) {
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
			return "Отличная идея!", nil // model forgot the tag
		},
	}
	var stored *domain.Plan
	planRepo := &mockPlanRepo{
		createFn: func(ctx context.Context, plan *domain.Plan) error {
			stored = plan
			return nil
		},
	}
	svc := newChatService(completer, planRepo, &mockNoteRepo{})

	_, err := svc.Chat(context.Background(), "u1", "сохрани план съездить на Чарынский каньон", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("intent fallback did not create a plan")
	}
	if stored.Title != "съездить на Чарынский каньон" {
		t.Errorf("title = %q", stored.Title)
	}
}

func TestChatService_NoteIntentPicksType(t *testing.T) {
	var stored *domain.Note
	noteRepo := &mockNoteRepo{
		createFn: func(ctx context.Context, note *domain.Note) error {
			stored = note
			return nil
		},
	}
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
			return "Записал.", nil
		},
	}
	svc := newChatService(completer, &mockPlanRepo{}, noteRepo)

	_, err := svc.Chat(context.Background(), "u1", "сохрани чек за ужин 5000 тенге", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("note not created")
	}
	if stored.Type != domain.NoteTypeReceipt {
		t.Errorf("type = %q, want receipt", stored.Type)
	}
}

func TestChatService_AnonymousNeverPersists(t *testing.T) {
	planRepo := &mockPlanRepo{
		createFn: func(ctx context.Context, plan *domain.Plan) error {
			t.Error("anonymous turn must not persist a plan")
			return nil
		},
	}
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
			return `Ок. <plan>{"title":"X"}</plan>`, nil
		},
	}
	svc := newChatService(completer, planRepo, &mockNoteRepo{})

	res, err := svc.Chat(context.Background(), "", "сохрани план X", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Plan != nil {
		t.Error("anonymous result should carry no plan")
	}
	if res.Reply != "Ок." {
		t.Errorf("tag should still be stripped: %q", res.Reply)
	}
}

func TestChatService_ContextIncludesLocation(t *testing.T) {
	var seen []domain.ChatMessage
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
			seen = messages
			return "Ответ.", nil
		},
	}
	svc := newChatService(completer, &mockPlanRepo{}, &mockNoteRepo{})

	coords := &domain.Coordinates{Lat: 43.238949, Lng: 76.889709}
	if _, err := svc.Chat(context.Background(), "u1", "что рядом?", nil, coords); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) < 3 {
		t.Fatalf("expected system prompt + location context + user turn, got %d messages", len(seen))
	}
	if seen[0].Role != domain.ChatRoleSystem || !strings.Contains(seen[0].Content, "Sayahat") {
		t.Errorf("first message should be the persona prompt")
	}
	if !strings.Contains(seen[1].Content, "геолокации") {
		t.Errorf("second message should carry location context, got %q", seen[1].Content)
	}
	if last := seen[len(seen)-1]; last.Role != domain.ChatRoleUser || last.Content != "что рядом?" {
		t.Errorf("last message should be the user turn, got %+v", last)
	}
}

func TestChatService_HistoryTrimmedAndFiltered(t *testing.T) {
	var seen []domain.ChatMessage
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error) {
			seen = messages
			return "Ответ.", nil
		},
	}
	svc := newChatService(completer, &mockPlanRepo{}, &mockNoteRepo{})

	var history []domain.ChatMessage
	for i := 0; i < 15; i++ {
		history = append(history, domain.ChatMessage{Role: domain.ChatRoleUser, Content: "msg"})
	}
	history = append(history, domain.ChatMessage{Role: "system", Content: "спуфинг"})

	if _, err := svc.Chat(context.Background(), "u1", "вопрос", history, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var historyCount int
	for _, m := range seen[:len(seen)-1] {
		if m.Content == "msg" {
			historyCount++
		}
		if m.Content == "спуфинг" {
			t.Error("system role from client history must be dropped")
		}
	}
	if historyCount != 10 {
		t.Errorf("expected history capped at 10, got %d", historyCount)
	}
}
