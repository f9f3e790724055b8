// Package highlight provides chroma-based syntax highlighting for fenced
// code blocks.
package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Chroma highlights code with 256-color ANSI output.
type Chroma struct {
	style *chroma.Style
}

// New returns a highlighter using the named chroma style, falling back to
// the default style for unknown names.
func New(styleName string) *Chroma {
	st := styles.Get(styleName)
	if st == nil {
		st = styles.Fallback
	}
	return &Chroma{style: st}
}

// Highlight returns lines with ANSI color sequences, exactly one output line
// per input line. Unknown languages pass through unchanged rather than
// failing, so callers can always substitute the result for the input.
func (c *Chroma) Highlight(lang string, lines []string) ([]string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return lines, nil
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return nil, err
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, c.style, it); err != nil {
		return nil, err
	}
	out := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for len(out) < len(lines) {
		out = append(out, "")
	}
	return out[:len(lines)], nil
}
