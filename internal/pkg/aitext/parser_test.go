package aitext

import (
	"strings"
	"testing"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

func TestExtract_PlanWithTrailingProse(t *testing.T) {
	raw := `Отличная идея! Вот план.

<plan>{"title":"Trip A"}</plan>

Хорошей поездки!`

	ex := Extract(raw)

	if ex.Plan.Status != TagOK {
		t.Fatalf("plan status = %v, err = %v", ex.Plan.Status, ex.Plan.Err)
	}
	if ex.Plan.Value.Title != "Trip A" {
		t.Errorf("title = %q, want %q", ex.Plan.Value.Title, "Trip A")
	}
	if strings.Contains(ex.Text, "<plan>") || strings.Contains(ex.Text, "</plan>") {
		t.Errorf("display text still contains plan tag: %q", ex.Text)
	}
	if !strings.Contains(ex.Text, "Хорошей поездки!") {
		t.Errorf("trailing prose lost: %q", ex.Text)
	}
}

func TestExtract_RouteWithoutOrigin(t *testing.T) {
	ex := Extract(`Маршрут готов. <route>{"destination":{"lat":43.2,"lng":76.8}}</route>`)

	if ex.Route.Status != TagOK {
		t.Fatalf("route status = %v, err = %v", ex.Route.Status, ex.Route.Err)
	}
	r := ex.Route.Value
	if r.Origin != nil {
		t.Errorf("origin = %+v, want nil", r.Origin)
	}
	if r.Destination != (domain.Coordinates{Lat: 43.2, Lng: 76.8}) {
		t.Errorf("destination = %+v", r.Destination)
	}
}

func TestExtract_EmptyNoteTitleRejectedButStripped(t *testing.T) {
	ex := Extract(`Сохранил. <note>{"title":""}</note>`)

	if ex.Note.Status != TagInvalid {
		t.Fatalf("note status = %v, want TagInvalid", ex.Note.Status)
	}
	if ex.Note.Value != nil {
		t.Errorf("note value = %+v, want nil", ex.Note.Value)
	}
	if strings.Contains(ex.Text, "<note>") {
		t.Errorf("invalid note tag leaked into display text: %q", ex.Text)
	}
	if ex.Text != "Сохранил." {
		t.Errorf("text = %q", ex.Text)
	}
}

func TestExtract_MalformedJSONDoesNotAffectOtherTags(t *testing.T) {
	raw := `Готово. <plan>{"title": broken</plan> <note>{"title":"Чек из кафе","type":"receipt"}</note>`
	ex := Extract(raw)

	if ex.Plan.Status != TagInvalid {
		t.Errorf("plan status = %v, want TagInvalid", ex.Plan.Status)
	}
	if ex.Plan.Err == nil {
		t.Error("expected plan error for malformed JSON")
	}
	if ex.Note.Status != TagOK {
		t.Fatalf("note status = %v, err = %v", ex.Note.Status, ex.Note.Err)
	}
	if ex.Note.Value.Type != domain.NoteTypeReceipt {
		t.Errorf("note type = %q, want receipt", ex.Note.Value.Type)
	}
	if strings.Contains(ex.Text, "<plan>") || strings.Contains(ex.Text, "<note>") {
		t.Errorf("tags not stripped: %q", ex.Text)
	}
}

func TestExtract_NoteTypeCoercion(t *testing.T) {
	cases := map[string]string{
		`{"title":"a","type":"receipt"}`: domain.NoteTypeReceipt,
		`{"title":"a","type":"voucher"}`: domain.NoteTypeVoucher,
		`{"title":"a","type":"banana"}`:  domain.NoteTypePlain,
		`{"title":"a"}`:                  domain.NoteTypePlain,
	}
	for payload, want := range cases {
		ex := Extract("<note>" + payload + "</note>")
		if ex.Note.Status != TagOK {
			t.Fatalf("payload %s: status %v", payload, ex.Note.Status)
		}
		if ex.Note.Value.Type != want {
			t.Errorf("payload %s: type = %q, want %q", payload, ex.Note.Value.Type, want)
		}
	}
}

func TestExtract_RouteViaAndHintFiltering(t *testing.T) {
	raw := `<route>{"destination":{"lat":43.2,"lng":76.8},` +
		`"via":[{"lat":43.3,"lng":76.9},{"lat":"bad","lng":1},{"lng":5}],` +
		`"hints":["поверните направо","",42,"налево","прямо","ещё","лишний","совсем лишний"]}</route>`
	ex := Extract(raw)

	if ex.Route.Status != TagOK {
		t.Fatalf("route status = %v, err = %v", ex.Route.Status, ex.Route.Err)
	}
	r := ex.Route.Value
	if len(r.Via) != 1 {
		t.Errorf("via = %+v, want exactly the one valid entry", r.Via)
	}
	if len(r.Hints) != 5 {
		t.Errorf("hints = %d entries, want 5 (cap)", len(r.Hints))
	}
	for _, h := range r.Hints {
		if strings.TrimSpace(h.Instruction) == "" {
			t.Errorf("empty hint survived filtering")
		}
	}
}

func TestExtract_PlanRouteWithStringHints(t *testing.T) {
	// The plan's route sub-object is an untyped passthrough; hints in
	// bare-string form must not cost the plan its route.
	raw := `<plan>{"title":"Тур по Алматы",` +
		`"route":{"destination":{"lat":43.2,"lng":76.8},"hints":["поверните налево","прямо 2 км"]}}</plan>`
	ex := Extract(raw)

	if ex.Plan.Status != TagOK {
		t.Fatalf("plan status = %v, err = %v", ex.Plan.Status, ex.Plan.Err)
	}
	p := ex.Plan.Value
	if p.Route == nil {
		t.Fatal("route dropped from plan")
	}
	if len(p.Route.Hints) != 2 || p.Route.Hints[0].Instruction != "поверните налево" {
		t.Errorf("hints = %+v", p.Route.Hints)
	}
}

func TestExtract_PrettyPrintedJSON(t *testing.T) {
	raw := "<plan>\n{\n  \"title\": \"Выходные в Алматы\",\n  \"date\": \"15 дек 2024\"\n}\n</plan>"
	ex := Extract(raw)
	if ex.Plan.Status != TagOK {
		t.Fatalf("plan status = %v, err = %v", ex.Plan.Status, ex.Plan.Err)
	}
	if ex.Plan.Value.Date != "15 дек 2024" {
		t.Errorf("date = %q", ex.Plan.Value.Date)
	}
}

func TestExtract_PlanBeforeRouteOrdering(t *testing.T) {
	// A plan whose description happens to mention a route tag textually
	// must not cause the route parser to consume plan content.
	raw := `<plan>{"title":"Тур","description":"маршрут в теге route"}</plan>` +
		`<route>{"destination":{"lat":42.3,"lng":69.6}}</route>`
	ex := Extract(raw)

	if ex.Plan.Status != TagOK {
		t.Fatalf("plan status = %v", ex.Plan.Status)
	}
	if ex.Route.Status != TagOK {
		t.Fatalf("route status = %v", ex.Route.Status)
	}
	if ex.Route.Value.Destination.Lat != 42.3 {
		t.Errorf("destination = %+v", ex.Route.Value.Destination)
	}
	if ex.Text != "" {
		t.Errorf("text = %q, want empty", ex.Text)
	}
}

func TestExtract_UnclosedTagLeaks(t *testing.T) {
	// A tag that never matches (missing close) is left visible.
	raw := `Держите: <plan>{"title":"x"}`
	ex := Extract(raw)
	if ex.Plan.Status != TagAbsent {
		t.Errorf("plan status = %v, want TagAbsent", ex.Plan.Status)
	}
	if !strings.Contains(ex.Text, "<plan>") {
		t.Errorf("unmatched tag should remain in text: %q", ex.Text)
	}
}

func TestExtract_FirstOccurrenceOnly(t *testing.T) {
	raw := `<note>{"title":"первая"}</note> middle <note>{"title":"вторая"}</note>`
	ex := Extract(raw)
	if ex.Note.Value == nil || ex.Note.Value.Title != "первая" {
		t.Fatalf("note = %+v, want first occurrence", ex.Note.Value)
	}
	if !strings.Contains(ex.Text, "вторая") {
		t.Errorf("second tag should be untouched: %q", ex.Text)
	}
}

func TestSanitizeMarkdown(t *testing.T) {
	in := "# Заголовок\n**жирный** и *курсив* и `код`\n- пункт\n+ ещё\n1. первый\n\n\n\nконец"
	got := SanitizeMarkdown(in)

	for _, banned := range []string{"**", "`", "# ", "\n- "} {
		if strings.Contains(got, banned) {
			t.Errorf("sanitized text still contains %q: %q", banned, got)
		}
	}
	if !strings.Contains(got, "• пункт") {
		t.Errorf("bullets not normalized: %q", got)
	}
	if !strings.Contains(got, "1. первый") {
		t.Errorf("ordinal lost: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank runs not collapsed: %q", got)
	}
	if !strings.Contains(got, "жирный и курсив и код") {
		t.Errorf("emphasis content mangled: %q", got)
	}
}

func TestSanitizeMarkdown_CodeFenceKeepsContent(t *testing.T) {
	got := SanitizeMarkdown("до\n```\ncontent line\n```\nпосле")
	if strings.Contains(got, "```") {
		t.Errorf("fence markers survived: %q", got)
	}
	if !strings.Contains(got, "content line") {
		t.Errorf("fence content lost: %q", got)
	}
}
