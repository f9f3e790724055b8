package mdriver

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// visibleWidth returns the display width of text in terminal columns. SGR
// and string-terminated escape sequences (OSC, APC, DCS) are skipped
// atomically and contribute zero; wide runes count two cells, combining
// marks zero.
func visibleWidth(text string) int {
	w := 0
	for i := 0; i < len(text); {
		if text[i] == 0x1b {
			i += escapeLen(text[i:])
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		w += runewidth.RuneWidth(r)
		i += size
	}
	return w
}

// escapeLen returns the byte length of the escape sequence starting at s[0]
// (which must be ESC). CSI sequences end at a final byte in 0x40..0x7E;
// OSC/APC/DCS sequences end at BEL or ESC-backslash.
func escapeLen(s string) int {
	if len(s) < 2 {
		return len(s)
	}
	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return len(s)
	case ']', '_', 'P':
		for i := 2; i < len(s); i++ {
			if s[i] == 0x07 {
				return i + 1
			}
			if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return len(s)
	default:
		return 2
	}
}

type wrapToken struct {
	text    string
	width   int
	newline bool
}

// wrapTokens splits text on whitespace, keeping every escape sequence glued
// to its adjacent token so sequences are never broken mid-escape.
func wrapTokens(text string) []wrapToken {
	var toks []wrapToken
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			t := cur.String()
			toks = append(toks, wrapToken{text: t, width: visibleWidth(t)})
			cur.Reset()
		}
	}
	for i := 0; i < len(text); {
		c := text[i]
		if c == 0x1b {
			n := escapeLen(text[i:])
			cur.WriteString(text[i : i+n])
			i += n
			continue
		}
		if c == '\n' {
			flush()
			toks = append(toks, wrapToken{newline: true})
			i++
			continue
		}
		if c == ' ' || c == '\t' {
			flush()
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		cur.WriteRune(r)
		i += size
	}
	flush()
	return toks
}

// wrap greedily packs tokens onto lines of at most width visible columns.
// The first line is prefixed with firstIndent, continuation lines with
// contIndent. A token wider than width sits alone on its own line and is
// never force-broken. Empty input yields exactly the first indent.
func wrap(text, firstIndent, contIndent string, width int) string {
	var out strings.Builder
	out.WriteString(firstIndent)
	line := visibleWidth(firstIndent)
	started := false
	for _, t := range wrapTokens(text) {
		if t.newline {
			out.WriteByte('\n')
			out.WriteString(contIndent)
			line = visibleWidth(contIndent)
			started = false
			continue
		}
		if started && width > 0 && line+1+t.width > width {
			out.WriteByte('\n')
			out.WriteString(contIndent)
			line = visibleWidth(contIndent)
			started = false
		}
		if started {
			out.WriteByte(' ')
			line++
		}
		out.WriteString(t.text)
		line += t.width
		started = true
	}
	return out.String()
}

func spaces(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat(" ", count)
}
