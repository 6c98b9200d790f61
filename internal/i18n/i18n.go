package i18n

import (
	"encoding/json"
	"io/fs"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
)

// Init initializes the i18n bundle with the locale files found in localeFS
func Init(localeFS fs.FS, lang string) error {
	// en-us.json is the default table, so the bundle default must carry its tag
	b := i18n.NewBundle(language.AmericanEnglish)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	// Load locale files - ignore errors for missing files
	b.LoadMessageFileFS(localeFS, "locales/en-us.json")
	b.LoadMessageFileFS(localeFS, "locales/ko-kr.json")

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	localizer = i18n.NewLocalizer(bundle, lang)
	return nil
}

// T translates a message by its ID with optional template data and plural count
func T(messageID string, templateData map[string]interface{}, pluralCount ...int) string {
	config := &i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	}
	if len(pluralCount) > 0 {
		config.PluralCount = pluralCount[0]
	}

	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		return messageID
	}

	msg, err := l.Localize(config)
	if err != nil {
		// Return message ID if translation fails
		return messageID
	}
	return msg
}

// Text looks up key in the active language table and returns fallback when
// the key is missing or the bundle was never initialized.
func Text(key, fallback string) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		return fallback
	}

	// A missing translation still yields the default-language text or the
	// fallback together with a MessageNotFoundErr.
	msg, _ := l.Localize(&i18n.LocalizeConfig{
		MessageID:      key,
		DefaultMessage: &i18n.Message{ID: key, Other: fallback},
	})
	if msg == "" {
		return fallback
	}
	return msg
}

// SetLocale changes the current locale
func SetLocale(lang string) {
	mu.Lock()
	defer mu.Unlock()
	if bundle == nil {
		return
	}
	localizer = i18n.NewLocalizer(bundle, lang)
}

// reset drops the bundle, used by tests
func reset() {
	mu.Lock()
	defer mu.Unlock()
	bundle = nil
	localizer = nil
}
