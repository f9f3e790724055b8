package mdriver

import (
	"sort"
	"strings"

	"pkt.systems/mdriver/internal/palette"
)

const ansiReset = "\x1b[0m"

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Styles groups the semantic styles used by the renderer.
type Styles struct {
	Text           Style
	Heading        [6]Style
	Emphasis       Style
	Strong         Style
	EmphasisStrong Style
	Strikethrough  Style
	Underline      Style
	CodeInline     Style
	CodeBlock      Style
	Quote          Style
	ListMarker     Style
	Link           Style
	Citation       Style
	ThematicBreak  Style
	TableBorder    Style
	TableHeader    Style
}

// Theme provides named styles for Markdown rendering.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func style(prefixes ...string) Style {
	var b strings.Builder
	for _, p := range prefixes {
		if p != "" {
			b.WriteString(p)
		}
	}
	return Style{Prefix: b.String()}
}

func stylesFromPalette(p palette.Palette) Styles {
	return Styles{
		Text:           style(p.Text),
		Heading:        [6]Style{style(p.H1), style(p.H2), style(p.H3), style(p.H4), style(p.H5), style(p.H6)},
		Emphasis:       style(palette.Italic, p.Emphasis),
		Strong:         style(palette.Bold, p.Strong),
		EmphasisStrong: style(palette.Bold, palette.Italic, p.EmphasisStrong),
		Strikethrough:  style(palette.Strikethrough, p.Strike),
		Underline:      style(palette.Underline),
		CodeInline:     style(p.CodeInline),
		CodeBlock:      style(p.CodeBlock),
		Quote:          style(p.Quote),
		ListMarker:     style(p.ListMarker),
		Link:           style(p.Link),
		Citation:       style(p.Citation),
		ThematicBreak:  style(p.ThematicBreak),
		TableBorder:    style(p.TableBorder),
		TableHeader:    style(p.TableHeader),
	}
}

var builtinThemes = map[string]Theme{
	"default":     theme{name: "default", styles: stylesFromPalette(palette.PaletteDefault)},
	"dracula":     theme{name: "dracula", styles: stylesFromPalette(palette.PaletteDracula)},
	"gruvbox":     theme{name: "gruvbox", styles: stylesFromPalette(palette.PaletteGruvbox)},
	"nord":        theme{name: "nord", styles: stylesFromPalette(palette.PaletteNord)},
	"github-dark": theme{name: "github-dark", styles: stylesFromPalette(palette.PaletteGithubDark)},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}
