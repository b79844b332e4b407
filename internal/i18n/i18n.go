// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n translates user-facing messages. Message ids are the English
// texts; Russian is the default language.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// DefaultLanguage is used when the client states no supported preference.
const DefaultLanguage = "ru"

// SupportedLanguages lists the languages with a message file.
var SupportedLanguages = []string{"ru", "en"}

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds translations for all supported languages.
type Catalog struct {
	translations map[string]map[string]string // lang -> id -> translation
	matcher      language.Matcher
	supported    []language.Tag
}

var (
	loadOnce sync.Once
	catalog  *Catalog
	loadErr  error
)

func load() (*Catalog, error) {
	loadOnce.Do(func() {
		catalog, loadErr = newCatalog()
	})
	return catalog, loadErr
}

func newCatalog() (*Catalog, error) {
	c := &Catalog{translations: make(map[string]map[string]string)}

	for _, lang := range SupportedLanguages {
		c.supported = append(c.supported, language.MustParse(lang))
		if err := c.loadLanguage(lang); err != nil {
			return nil, fmt.Errorf("loading language %s: %w", lang, err)
		}
	}
	// The first tag is the matcher's fallback.
	c.matcher = language.NewMatcher(c.supported)
	return c, nil
}

func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}
	return nil
}

// Init loads the embedded catalogs and logs the result.
func Init(logger *slog.Logger) error {
	c, err := load()
	if err != nil {
		return err
	}
	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages, "messages", len(c.translations[DefaultLanguage]))
	}
	return nil
}

// T translates a message id to lang and formats it with args. Unknown
// languages use the default language; unknown ids are used as is.
func T(lang, id string, args ...any) string {
	text := id
	if c, err := load(); err == nil {
		translations, ok := c.translations[lang]
		if !ok {
			translations = c.translations[DefaultLanguage]
		}
		if tr, ok := translations[id]; ok {
			text = tr
		}
	}

	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// MatchLanguage returns the best supported language for an Accept-Language
// header value or a bare language code.
func MatchLanguage(acceptLang string) string {
	c, err := load()
	if err != nil || acceptLang == "" {
		return DefaultLanguage
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}

	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(c.supported) {
		return DefaultLanguage
	}
	return SupportedLanguages[idx]
}

// FromRequest returns the response language for r.
func FromRequest(r *http.Request) string {
	return MatchLanguage(r.Header.Get("Accept-Language"))
}

// TranslationCount returns the number of messages loaded for a language.
func TranslationCount(lang string) int {
	c, err := load()
	if err != nil {
		return 0
	}
	return len(c.translations[lang])
}
