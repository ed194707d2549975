// Package i18n loads the Arabic and English message catalogs and hands out
// a Localizer per language. The language is always passed in explicitly.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	Arabic  = "ar"
	English = "en"
)

//go:embed locales/*.yaml
var localesFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded catalog.
type Bundle struct {
	builder     *catalog.Builder
	tags        map[string]language.Tag
	defaultLang string
}

// LoadBundle reads the embedded catalogs. defaultLang is used for any
// language the bundle does not know.
func LoadBundle(defaultLang string) (*Bundle, error) {
	b := &Bundle{
		builder: catalog.NewBuilder(),
		tags:    map[string]language.Tag{},
	}

	entries, err := fs.ReadDir(localesFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("reading locales: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		if err := b.addFile("locales/" + entry.Name()); err != nil {
			return nil, err
		}
	}

	defaultLang = strings.TrimSpace(defaultLang)
	if _, ok := b.tags[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %q has no catalog", defaultLang)
	}
	b.defaultLang = defaultLang
	return b, nil
}

func (b *Bundle) addFile(path string) error {
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", path)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("catalog %s: parsing locale %q: %w", path, locale, err)
	}

	keys := make([]string, 0, len(file.Messages))
	for key := range file.Messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := b.builder.SetString(tag, key, file.Messages[key]); err != nil {
			return fmt.Errorf("catalog %s: key %q: %w", path, key, err)
		}
	}

	b.tags[locale] = tag
	return nil
}

// Languages lists the loaded language codes.
func (b *Bundle) Languages() []string {
	out := make([]string, 0, len(b.tags))
	for lang := range b.tags {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

func (b *Bundle) DefaultLanguage() string {
	return b.defaultLang
}

// Localizer returns a Localizer for lang, or for the default language when
// lang is blank or unknown.
func (b *Bundle) Localizer(lang string) *Localizer {
	lang = strings.ToLower(strings.TrimSpace(lang))
	tag, ok := b.tags[lang]
	if !ok {
		lang = b.defaultLang
		tag = b.tags[lang]
	}
	return &Localizer{
		lang:    lang,
		printer: message.NewPrinter(tag, message.Catalog(b.builder)),
	}
}

type Localizer struct {
	lang    string
	printer *message.Printer
}

func (l *Localizer) Lang() string {
	return l.lang
}

// Dir is the text direction of the language, "rtl" or "ltr".
func (l *Localizer) Dir() string {
	if l.lang == Arabic {
		return "rtl"
	}
	return "ltr"
}

// T translates key. Keys missing from the catalog come back unchanged.
func (l *Localizer) T(key string) string {
	if strings.Contains(key, "%") {
		return key
	}
	return l.printer.Sprintf(key)
}

// Format translates key and formats the arguments into it. Keys missing from
// the catalog are used as the format.
func (l *Localizer) Format(key string, args ...interface{}) string {
	return l.printer.Sprintf(key, args...)
}

// Category translates a category key. Free-text categories come back as
// typed and an empty category reads as "uncategorized".
func (l *Localizer) Category(category string) string {
	if strings.TrimSpace(category) == "" {
		return l.T("uncategorized")
	}
	return l.T(category)
}
