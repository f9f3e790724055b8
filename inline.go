package mdriver

import (
	"strconv"
	"strings"
	"unicode/utf8"

	xhtml "golang.org/x/net/html"
)

const maxEntityLen = 32

// formatInline converts Markdown inline syntax in text to ANSI output. base
// is the currently active style prefix; nested spans restore it after their
// closing reset so enclosing styles survive. Anything that fails to parse
// degrades to literal text.
func (p *StreamingParser) formatInline(text, base string) string {
	var out strings.Builder
	for i := 0; i < len(text); {
		switch text[i] {
		case '\\':
			if i+1 < len(text) && isASCIIPunct(text[i+1]) {
				out.WriteByte(text[i+1])
				i += 2
				continue
			}
		case '!':
			if rendered, next, ok := p.scanImage(text, i, base); ok {
				out.WriteString(rendered)
				i = next
				continue
			}
		case '[':
			if rendered, next, ok := p.scanLink(text, i, base); ok {
				out.WriteString(rendered)
				i = next
				continue
			}
		case '~':
			if strings.HasPrefix(text[i:], "~~") {
				if rendered, next, ok := p.scanSpan(text, i, "~~", p.styles.Strikethrough.Prefix, base); ok {
					out.WriteString(rendered)
					i = next
					continue
				}
			}
		case '*', '_':
			marker := text[i : i+1]
			if strings.HasPrefix(text[i:], marker+marker) {
				if rendered, next, ok := p.scanSpan(text, i, marker+marker, p.styles.Strong.Prefix, base); ok {
					out.WriteString(rendered)
					i = next
					continue
				}
			}
			if rendered, next, ok := p.scanSpan(text, i, marker, p.styles.Emphasis.Prefix, base); ok {
				out.WriteString(rendered)
				i = next
				continue
			}
		case '`':
			if rendered, next, ok := p.scanCodeSpan(text, i, base); ok {
				out.WriteString(rendered)
				i = next
				continue
			}
		case '<':
			if rendered, next, ok := p.scanHTML(text, i, base); ok {
				out.WriteString(rendered)
				i = next
				continue
			}
		case '&':
			if decoded, next, ok := scanEntity(text, i); ok {
				out.WriteString(decoded)
				i = next
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		out.WriteRune(r)
		i += size
	}
	return out.String()
}

func isASCIIPunct(c byte) bool {
	return c >= '!' && c <= '~' &&
		!(c >= '0' && c <= '9') &&
		!(c >= 'a' && c <= 'z') &&
		!(c >= 'A' && c <= 'Z')
}

// scanSpan handles emphasis-style spans: a literal forward scan for the
// closing marker, recursive formatting of the inner text. An unmatched or
// empty opener, or one followed by whitespace, is left for the caller to
// copy literally.
func (p *StreamingParser) scanSpan(text string, i int, marker, stylePrefix, base string) (string, int, bool) {
	start := i + len(marker)
	if start >= len(text) || text[start] == ' ' || text[start] == '\t' {
		return "", 0, false
	}
	close := strings.Index(text[start:], marker)
	if close <= 0 {
		return "", 0, false
	}
	inner := text[start : start+close]
	rendered := stylePrefix + p.formatInline(inner, base+stylePrefix) + ansiReset + base
	return rendered, start + close + len(marker), true
}

// scanCodeSpan handles `code`: the inner text is literal, never recursed.
func (p *StreamingParser) scanCodeSpan(text string, i int, base string) (string, int, bool) {
	close := strings.IndexByte(text[i+1:], '`')
	if close < 0 {
		return "", 0, false
	}
	inner := text[i+1 : i+1+close]
	rendered := p.styles.CodeInline.Prefix + " " + inner + " " + ansiReset + base
	return rendered, i + close + 2, true
}

func (p *StreamingParser) scanImage(text string, i int, base string) (string, int, bool) {
	if i+1 >= len(text) || text[i+1] != '[' {
		return "", 0, false
	}
	end := scanBalancedBrackets(text, i+1)
	if end < 0 || end+1 >= len(text) || text[end+1] != '(' {
		return "", 0, false
	}
	src, _, next, ok := parseParenTarget(text, end+1)
	if !ok {
		return "", 0, false
	}
	alt := text[i+2 : end]
	return p.renderImage(src, alt, base), next, true
}

func (p *StreamingParser) scanLink(text string, i int, base string) (string, int, bool) {
	end := scanBalancedBrackets(text, i)
	if end < 0 {
		return "", 0, false
	}
	inner := text[i+1 : end]
	if strings.TrimSpace(inner) == "" {
		return "", 0, false
	}
	if end+1 < len(text) && text[end+1] == '(' {
		if url, _, next, ok := parseParenTarget(text, end+1); ok {
			label := p.formatInline(inner, base+p.styles.Link.Prefix)
			return p.hyperlink(label, url, base), next, true
		}
	}
	label := inner
	next := end + 1
	if end+1 < len(text) && text[end+1] == '[' {
		if end2 := scanBalancedBrackets(text, end+1); end2 >= 0 {
			if second := text[end+2 : end2]; strings.TrimSpace(second) != "" {
				label = second
			}
			next = end2 + 1
		}
	}
	return p.resolveReference(label, inner, base), next, true
}

// resolveReference renders a reference-style link. A known label becomes a
// hyperlink immediately; an unknown one is rendered as text[n] and recorded
// in the citation ledger for the bibliography. Inline citations are never
// retroactively corrected.
func (p *StreamingParser) resolveReference(label, display, base string) string {
	if def, ok := p.refs.lookup(label); ok {
		return p.hyperlink(p.formatInline(display, base+p.styles.Link.Prefix), def.url, base)
	}
	n := p.refs.cite(label, display)
	return p.formatInline(display, base) +
		p.styles.Citation.Prefix + "[" + strconv.Itoa(n) + "]" + ansiReset + base
}

// parseParenTarget parses "(url)" or "(url \"title\")" starting at the open
// paren, honoring backslash escapes and nested parens in the url.
func parseParenTarget(text string, open int) (url, title string, next int, ok bool) {
	depth := 0
	j := open
	for ; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				inner := strings.TrimSpace(text[open+1 : j])
				url, title = splitLinkTitle(inner)
				if strings.HasPrefix(url, "<") && strings.HasSuffix(url, ">") && len(url) >= 2 {
					url = url[1 : len(url)-1]
				}
				return url, title, j + 1, true
			}
		}
	}
	return "", "", 0, false
}

func splitLinkTitle(inner string) (string, string) {
	sp := strings.IndexAny(inner, " \t")
	if sp < 0 {
		return inner, ""
	}
	rest := strings.TrimSpace(inner[sp+1:])
	if len(rest) >= 2 {
		open, closeCh := rest[0], rest[len(rest)-1]
		if (open == '"' && closeCh == '"') || (open == '\'' && closeCh == '\'') || (open == '(' && closeCh == ')') {
			return inner[:sp], rest[1 : len(rest)-1]
		}
	}
	return inner, ""
}

func isEntityChar(c byte) bool {
	return c == '#' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

// scanEntity decodes &name;, &#NNN; and &#xHH; entities. The trailing
// semicolon is required; anything else stays literal.
func scanEntity(text string, i int) (string, int, bool) {
	limit := i + maxEntityLen
	if limit > len(text) {
		limit = len(text)
	}
	semi := -1
	for j := i + 1; j < limit; j++ {
		c := text[j]
		if c == ';' {
			semi = j
			break
		}
		if !isEntityChar(c) {
			return "", 0, false
		}
	}
	if semi < 0 || semi == i+1 {
		return "", 0, false
	}
	candidate := text[i : semi+1]
	decoded := xhtml.UnescapeString(candidate)
	if decoded == candidate {
		return "", 0, false
	}
	return decoded, semi + 1, true
}
