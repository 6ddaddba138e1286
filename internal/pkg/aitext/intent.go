package aitext

import "strings"

// Intent is what a user message asks the guide to do besides chatting.
type Intent struct {
	WantsPlan bool
	WantsNote bool
	// Content is the text after the triggering phrase, falling back to
	// the whole message when the remainder is too short to use.
	Content string
}

var planKeywords = []string{
	"сохрани план", "создай план", "добавь план", "запомни план",
	"сохрани в планы", "создать план", "добавить план", "сохрани как план",
	"создай маршрут", "сохрани маршрут", "добавь маршрут", "план поездки",
	"план путешествия", "маршрут поездки",
}

var noteKeywords = []string{
	"сохрани заметку", "добавь в заметки", "запомни это", "сохрани чек",
	"сохрани ваучер", "добавить заметку", "создать заметку", "сохрани как заметку",
	"запомни", "сохрани информацию", "добавь информацию", "запиши",
	"сохрани данные", "запомни данные",
}

// DetectIntent scans a user message for save-plan or save-note
// phrasing. Plan keywords win over note keywords when both occur.
func DetectIntent(text string) Intent {
	lower := strings.ToLower(text)

	intent := Intent{Content: text}
	for _, kw := range planKeywords {
		if strings.Contains(lower, kw) {
			intent.WantsPlan = true
			intent.Content = afterKeyword(text, lower, kw)
			break
		}
	}
	if !intent.WantsPlan {
		for _, kw := range noteKeywords {
			if strings.Contains(lower, kw) {
				intent.WantsNote = true
				intent.Content = afterKeyword(text, lower, kw)
				break
			}
		}
	}

	if len([]rune(intent.Content)) < 3 {
		intent.Content = text
	}
	return intent
}

func afterKeyword(text, lower, kw string) string {
	idx := strings.Index(lower, kw)
	if idx < 0 {
		return text
	}
	return strings.TrimSpace(text[idx+len(kw):])
}

// TitleFromContent derives a record title from free text, truncating
// long content at 50 characters.
func TitleFromContent(content string) string {
	runes := []rune(content)
	if len(runes) > 50 {
		return string(runes[:50]) + "..."
	}
	return content
}

// NoteTypeFor picks the note type implied by the user's message.
func NoteTypeFor(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "чек"):
		return "receipt"
	case strings.Contains(lower, "ваучер"):
		return "voucher"
	default:
		return "note"
	}
}
