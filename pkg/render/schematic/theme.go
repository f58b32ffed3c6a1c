package schematic

import (
	"strings"

	"github.com/matzehuels/mieza/pkg/errors"
)

// Theme selects the color palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Palette holds the colors a theme draws with.
type Palette struct {
	Background string
	Text       string
	Wire       string
	Stroke     string
	Fill       string
	Pin        string
}

var palettes = map[Theme]Palette{
	ThemeLight: {
		Background: "#ffffff",
		Text:       "#000000",
		Wire:       "#000000",
		Stroke:     "#000000",
		Fill:       "#ffffff",
		Pin:        "#000000",
	},
	ThemeDark: {
		Background: "#1e1e1e",
		Text:       "#ffffff",
		Wire:       "#cccccc",
		Stroke:     "#cccccc",
		Fill:       "#1e1e1e",
		Pin:        "#cccccc",
	},
}

// Palette returns the colors for t, falling back to the light palette.
func (t Theme) Palette() Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[ThemeLight]
}

// ParseTheme validates a theme name. The empty string selects light.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return ThemeLight, nil
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (want light or dark)", s)
}

// Style selects the symbol standard.
type Style string

const (
	StyleIEEE Style = "ieee"
	StyleIEC  Style = "iec"
	StyleDIN  Style = "din"
)

// ParseStyle validates a symbol style name. The empty string selects IEEE.
func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StyleIEEE, nil
	case StyleIEEE, StyleIEC, StyleDIN:
		return st, nil
	}
	return "", errors.New(errors.ErrCodeInvalidStyle, "unknown symbol style %q (want ieee, iec, or din)", s)
}

// Themes lists the available themes.
func Themes() []Theme { return []Theme{ThemeLight, ThemeDark} }

// Styles lists the available symbol styles.
func Styles() []Style { return []Style{StyleIEEE, StyleIEC, StyleDIN} }
