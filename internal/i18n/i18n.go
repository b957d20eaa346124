// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package i18n localizes API messages. Brazilian Portuguese is the default locale.
package i18n

import (
	"context"
	"embed"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.toml
var translationFS embed.FS

// DefaultLocale is used when no locale was negotiated.
const DefaultLocale = "pt-BR"

var (
	bundle   *i18n.Bundle
	initOnce sync.Once
	errInit  error
)

type localeContextKey struct{}
type localizerContextKey struct{}

// Init initializes the i18n bundle with embedded translations.
// It is safe to call more than once.
func Init() error {
	initOnce.Do(func() {
		b := i18n.NewBundle(language.BrazilianPortuguese)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		files := []string{
			"translations/active.pt-BR.toml",
			"translations/active.en.toml",
		}

		for _, file := range files {
			if _, err := b.LoadMessageFileFS(translationFS, file); err != nil {
				errInit = err
				return
			}
		}
		bundle = b
	})
	return errInit
}

// WithLocale adds the locale to the context.
func WithLocale(ctx context.Context, lang language.Tag) context.Context {
	locale := lang.String()
	ctx = context.WithValue(ctx, localeContextKey{}, locale)
	if Init() != nil {
		return ctx
	}
	localizer := i18n.NewLocalizer(bundle, locale, DefaultLocale)
	return context.WithValue(ctx, localizerContextKey{}, localizer)
}

// GetLocale returns the current locale from context.
func GetLocale(ctx context.Context) string {
	if locale, ok := ctx.Value(localeContextKey{}).(string); ok {
		return locale
	}
	return DefaultLocale
}

// T translates a message by ID.
func T(ctx context.Context, messageID string) string {
	return TData(ctx, messageID, nil)
}

// TData translates a message with template data.
func TData(ctx context.Context, messageID string, data map[string]any) string {
	localizer := getLocalizer(ctx)
	if localizer == nil {
		return messageID
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// MatchLanguage matches the best language from Accept-Language header.
func MatchLanguage(acceptLanguage string) language.Tag {
	matcher := language.NewMatcher([]language.Tag{
		language.BrazilianPortuguese,
		language.English,
	})
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	if base.String() == "en" {
		return language.English
	}
	return language.BrazilianPortuguese
}

// ContextFor returns a context carrying the locale for a language string such as "en".
func ContextFor(ctx context.Context, lang string) context.Context {
	return WithLocale(ctx, MatchLanguage(lang))
}

func getLocalizer(ctx context.Context) *i18n.Localizer {
	if localizer, ok := ctx.Value(localizerContextKey{}).(*i18n.Localizer); ok {
		return localizer
	}
	if Init() != nil {
		return nil
	}
	return i18n.NewLocalizer(bundle, DefaultLocale)
}
