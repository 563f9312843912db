package store

import (
	"context"

	"github.com/nhle/pending/internal/model"
)

// Preferences are the scalar UI settings kept next to the task collection.
type Preferences struct {
	View     model.View
	Language model.Language
	Theme    model.Theme
}

// DefaultPreferences returns the settings of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		View:     model.DefaultView,
		Language: model.DefaultLanguage,
		Theme:    model.DefaultTheme,
	}
}

// LoadPreferences reads view, language and theme. Missing, corrupt or
// unknown values fall back to their defaults independently.
func LoadPreferences(ctx context.Context, kv KV) Preferences {
	p := DefaultPreferences()

	if v := Load(ctx, kv, KeyView, p.View); v.Valid() {
		p.View = v
	}
	if l := Load(ctx, kv, KeyLang, p.Language); l.Valid() {
		p.Language = l
	}
	if t := Load(ctx, kv, KeyTheme, p.Theme); t.Valid() {
		p.Theme = t
	}
	return p
}

// SaveView persists the active view.
func SaveView(ctx context.Context, kv KV, v model.View) error {
	return Save(ctx, kv, KeyView, v)
}

// SaveLanguage persists the language preference.
func SaveLanguage(ctx context.Context, kv KV, l model.Language) error {
	return Save(ctx, kv, KeyLang, l)
}

// SaveTheme persists the theme preference.
func SaveTheme(ctx context.Context, kv KV, t model.Theme) error {
	return Save(ctx, kv, KeyTheme, t)
}
