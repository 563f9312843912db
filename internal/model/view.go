package model

// View names a perspective over the task collection.
type View string

const (
	ViewToday     View = "today"
	ViewFavorites View = "favorites"
	ViewInbox     View = "inbox"
	ViewAssigned  View = "assigned"
	ViewTrash     View = "trash"
)

// DefaultView is shown when no valid view has been persisted.
const DefaultView = ViewToday

// Views lists every view in sidebar order.
var Views = []View{ViewToday, ViewFavorites, ViewInbox, ViewAssigned, ViewTrash}

// Valid reports whether v is one of the known views.
func (v View) Valid() bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}

// Language is the UI language preference.
type Language string

const (
	LanguagePortuguese Language = "pt"
	LanguageEnglish    Language = "en"
)

// DefaultLanguage is used until the user switches language.
const DefaultLanguage = LanguagePortuguese

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == LanguagePortuguese || l == LanguageEnglish
}

// Toggle returns the other supported language.
func (l Language) Toggle() Language {
	if l == LanguagePortuguese {
		return LanguageEnglish
	}
	return LanguagePortuguese
}

// Theme is the color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used until the user switches theme.
const DefaultTheme = ThemeLight

// Valid reports whether t is a supported theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
