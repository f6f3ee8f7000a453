package announce

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
)

//go:embed locales/*.json
var localeFS embed.FS

// Messages formats localized countdown phrases.
type Messages struct {
	// localizer resolves message IDs for the selected language with an
	// English fallback.
	localizer *i18n.Localizer
}

// NewMessages builds a formatter for the given language tag, e.g. "en",
// "fr" or "ru". Unknown languages fall back to English.
func NewMessages(lang string) (*Messages, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	for _, entry := range entries {
		path := "locales/" + entry.Name()
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("load locale %s: %w", path, err)
		}
	}

	return &Messages{
		localizer: i18n.NewLocalizer(bundle, lang, "en"),
	}, nil
}

// Completion formats the discrete completion phrase for a countdown title.
func (m *Messages) Completion(title string) string {
	msg, err := m.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    "Completion",
		TemplateData: map[string]any{"Title": title},
	})
	if err != nil {
		return title
	}

	return msg
}

// Remaining formats the per-tick remaining-time phrase. Leading zero
// components are omitted so announcements stay short near the end.
func (m *Messages) Remaining(r domain.TimeRemaining) string {
	var parts []string

	if r.Days > 0 {
		parts = append(parts, m.plural("Days", r.Days))
	}

	if len(parts) > 0 || r.Hours > 0 {
		parts = append(parts, m.plural("Hours", r.Hours))
	}

	if len(parts) > 0 || r.Minutes > 0 {
		parts = append(parts, m.plural("Minutes", r.Minutes))
	}

	parts = append(parts, m.plural("Seconds", r.Seconds))

	msg, err := m.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    "Remaining",
		TemplateData: map[string]any{"List": strings.Join(parts, ", ")},
	})
	if err != nil {
		return strings.Join(parts, ", ")
	}

	return msg
}

// plural resolves one pluralized component phrase.
func (m *Messages) plural(id string, count int) string {
	msg, err := m.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
	if err != nil {
		return fmt.Sprintf("%d", count)
	}

	return msg
}
