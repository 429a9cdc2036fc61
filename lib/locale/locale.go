// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFiles embed.FS

// DefaultLanguage is used when no language is configured and as the
// fallback for untranslated messages.
var DefaultLanguage = language.English

// Catalog resolves message IDs to strings in one language.
type Catalog struct {
	language  language.Tag
	localizer *i18n.Localizer
	fallback  *i18n.Localizer
}

// New loads the embedded message files and returns a catalog for
// the given BCP 47 language tag. An empty tag selects English.
func New(tag string) (*Catalog, error) {
	preferred := DefaultLanguage
	if tag != "" {
		parsed, err := language.Parse(tag)
		if err != nil {
			return nil, fmt.Errorf("parsing language %q: %w", tag, err)
		}
		preferred = parsed
	}

	bundle := i18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	names, err := fs.Glob(messageFiles, "messages/*.toml")
	if err != nil {
		return nil, fmt.Errorf("listing message files: %w", err)
	}
	for _, name := range names {
		if _, err := bundle.LoadMessageFileFS(messageFiles, name); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path.Base(name), err)
		}
	}

	// The matcher falls back to the first supported tag.
	supported := []language.Tag{DefaultLanguage}
	for _, loaded := range bundle.LanguageTags() {
		if loaded != DefaultLanguage {
			supported = append(supported, loaded)
		}
	}
	_, index, _ := language.NewMatcher(supported).Match(preferred)
	resolved := supported[index]

	return &Catalog{
		language:  resolved,
		localizer: i18n.NewLocalizer(bundle, resolved.String()),
		fallback:  i18n.NewLocalizer(bundle, DefaultLanguage.String()),
	}, nil
}

// MustNew is New for the default language, panicking on failure. The
// embedded files are part of the binary, so a failure is a build
// defect. Tests use it for a ready catalog.
func MustNew() *Catalog {
	catalog, err := New("")
	if err != nil {
		panic(err)
	}
	return catalog
}

// Language returns the language the catalog resolved to.
func (catalog *Catalog) Language() language.Tag {
	return catalog.language
}

// T returns the message for id, executing it as a template against
// data when data is non-nil. Messages missing from the catalog's
// language come from DefaultLanguage. Unknown IDs return the ID
// unchanged.
func (catalog *Catalog) T(id string, data ...map[string]any) string {
	config := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		config.TemplateData = data[0]
	}
	message, err := catalog.localizer.Localize(config)
	var notFound *i18n.MessageNotFoundErr
	if errors.As(err, &notFound) {
		message, err = catalog.fallback.Localize(config)
	}
	if err != nil {
		return id
	}
	return message
}

// Languages lists the tags that have a message file, in load order.
func Languages() []string {
	names, _ := fs.Glob(messageFiles, "messages/*.toml")
	tags := make([]string, 0, len(names))
	for _, name := range names {
		// messages/active.<tag>.toml
		base := path.Base(name)
		tag := base[len("active.") : len(base)-len(".toml")]
		tags = append(tags, tag)
	}
	return tags
}
