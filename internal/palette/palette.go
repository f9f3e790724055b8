// Package palette holds the raw ANSI sequences behind the built-in themes.
package palette

// Base attribute sequences shared by every palette.
const (
	Bold          = "\x1b[1m"
	Italic        = "\x1b[3m"
	Underline     = "\x1b[4m"
	Strikethrough = "\x1b[9m"
)

// Palette is a set of ANSI prefix sequences for the semantic style roles.
type Palette struct {
	Text           string
	H1             string
	H2             string
	H3             string
	H4             string
	H5             string
	H6             string
	Emphasis       string
	Strong         string
	EmphasisStrong string
	Strike         string
	CodeInline     string
	CodeBlock      string
	Quote          string
	ListMarker     string
	Link           string
	Citation       string
	ThematicBreak  string
	TableBorder    string
	TableHeader    string
}

// PaletteDefault matches the classic mdriver output: bold blue headings,
// 256-color grey code background, blue underlined links.
var PaletteDefault = Palette{
	H1:             "\x1b[1;34m",
	H2:             "\x1b[1;34m",
	H3:             "\x1b[1;34m",
	H4:             "\x1b[1;34m",
	H5:             "\x1b[1;34m",
	H6:             "\x1b[1;34m",
	Emphasis:       "",
	Strong:         "",
	EmphasisStrong: "",
	Strike:         "",
	CodeInline:     "\x1b[38;5;210;48;5;235m",
	CodeBlock:      "\x1b[48;5;235m",
	Quote:          "\x1b[32m",
	ListMarker:     "\x1b[36m",
	Link:           "\x1b[34;4m",
	Citation:       "\x1b[36m",
	ThematicBreak:  "\x1b[90m",
	TableBorder:    "\x1b[90m",
	TableHeader:    "\x1b[1m",
}

var PaletteDracula = Palette{
	H1:             "\x1b[1;38;5;141m",
	H2:             "\x1b[1;38;5;141m",
	H3:             "\x1b[1;38;5;117m",
	H4:             "\x1b[1;38;5;117m",
	H5:             "\x1b[1;38;5;84m",
	H6:             "\x1b[1;38;5;84m",
	CodeInline:     "\x1b[38;5;212;48;5;236m",
	CodeBlock:      "\x1b[48;5;236m",
	Quote:          "\x1b[38;5;84m",
	ListMarker:     "\x1b[38;5;117m",
	Link:           "\x1b[4;38;5;117m",
	Citation:       "\x1b[38;5;117m",
	ThematicBreak:  "\x1b[38;5;61m",
	TableBorder:    "\x1b[38;5;61m",
	TableHeader:    "\x1b[1;38;5;141m",
}

var PaletteGruvbox = Palette{
	H1:             "\x1b[1;38;5;214m",
	H2:             "\x1b[1;38;5;214m",
	H3:             "\x1b[1;38;5;142m",
	H4:             "\x1b[1;38;5;142m",
	H5:             "\x1b[1;38;5;108m",
	H6:             "\x1b[1;38;5;108m",
	CodeInline:     "\x1b[38;5;208;48;5;237m",
	CodeBlock:      "\x1b[48;5;237m",
	Quote:          "\x1b[38;5;108m",
	ListMarker:     "\x1b[38;5;208m",
	Link:           "\x1b[4;38;5;109m",
	Citation:       "\x1b[38;5;109m",
	ThematicBreak:  "\x1b[38;5;245m",
	TableBorder:    "\x1b[38;5;245m",
	TableHeader:    "\x1b[1;38;5;214m",
}

var PaletteNord = Palette{
	H1:             "\x1b[1;38;5;110m",
	H2:             "\x1b[1;38;5;110m",
	H3:             "\x1b[1;38;5;109m",
	H4:             "\x1b[1;38;5;109m",
	H5:             "\x1b[1;38;5;111m",
	H6:             "\x1b[1;38;5;111m",
	CodeInline:     "\x1b[38;5;144;48;5;238m",
	CodeBlock:      "\x1b[48;5;238m",
	Quote:          "\x1b[38;5;109m",
	ListMarker:     "\x1b[38;5;110m",
	Link:           "\x1b[4;38;5;110m",
	Citation:       "\x1b[38;5;110m",
	ThematicBreak:  "\x1b[38;5;242m",
	TableBorder:    "\x1b[38;5;242m",
	TableHeader:    "\x1b[1;38;5;110m",
}

var PaletteGithubDark = Palette{
	H1:             "\x1b[1;38;5;75m",
	H2:             "\x1b[1;38;5;75m",
	H3:             "\x1b[1;38;5;75m",
	H4:             "\x1b[1;38;5;75m",
	H5:             "\x1b[1;38;5;75m",
	H6:             "\x1b[1;38;5;75m",
	CodeInline:     "\x1b[38;5;203;48;5;236m",
	CodeBlock:      "\x1b[48;5;236m",
	Quote:          "\x1b[38;5;245m",
	ListMarker:     "\x1b[38;5;75m",
	Link:           "\x1b[4;38;5;75m",
	Citation:       "\x1b[38;5;75m",
	ThematicBreak:  "\x1b[38;5;240m",
	TableBorder:    "\x1b[38;5;240m",
	TableHeader:    "\x1b[1m",
}
