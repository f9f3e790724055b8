package mdriver

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// scanHTML handles inline HTML starting at text[i] == '<'. Comments are
// elided, a handful of formatting tags map onto ANSI styles, unknown paired
// tags are stripped with their content kept, and anything unterminated is
// left as literal text.
func (p *StreamingParser) scanHTML(text string, i int, base string) (string, int, bool) {
	if strings.HasPrefix(text[i:], "<!--") {
		end := strings.Index(text[i+4:], "-->")
		if end < 0 {
			return "", 0, false
		}
		return "", i + 4 + end + 3, true
	}
	gt := strings.IndexByte(text[i:], '>')
	if gt < 0 {
		return "", 0, false
	}
	tagRaw := text[i : i+gt+1]
	name, closing, ok := tagName(tagRaw)
	if !ok {
		return "", 0, false
	}
	after := i + gt + 1
	if closing {
		// Stray closer with no matching opener in this block.
		return "", after, true
	}
	if strings.HasSuffix(tagRaw, "/>") || isVoidTag(name) {
		switch name {
		case "br":
			return "\n", after, true
		case "img":
			attrs := parseTagAttrs(tagRaw)
			return p.renderImage(attrs["src"], attrs["alt"], base), after, true
		default:
			return "", after, true
		}
	}
	closeStart, closeEnd := findMatchingClose(text, after, name)
	if closeStart < 0 {
		// Unterminated: the tag itself stays literal, the rest rescans.
		return tagRaw, after, true
	}
	inner := text[after:closeStart]
	return p.renderHTMLSpan(name, tagRaw, inner, base), closeEnd, true
}

func (p *StreamingParser) renderHTMLSpan(name, tagRaw, inner, base string) string {
	span := func(prefix string) string {
		return prefix + p.formatInline(inner, base+prefix) + ansiReset + base
	}
	switch name {
	case "em", "i":
		return span(p.styles.Emphasis.Prefix)
	case "strong", "b":
		return span(p.styles.Strong.Prefix)
	case "u":
		return span(p.styles.Underline.Prefix)
	case "s", "strike", "del":
		return span(p.styles.Strikethrough.Prefix)
	case "code":
		return p.styles.CodeInline.Prefix + " " + inner + " " + ansiReset + base
	case "pre":
		lines := strings.Split(inner, "\n")
		for i, l := range lines {
			lines[i] = p.styles.CodeBlock.Prefix + l + ansiReset
		}
		return strings.Join(lines, "\n") + base
	case "a":
		attrs := parseTagAttrs(tagRaw)
		label := p.formatInline(inner, base+p.styles.Link.Prefix)
		if href := attrs["href"]; href != "" {
			return p.hyperlink(label, href, base)
		}
		return p.formatInline(inner, base)
	default:
		return p.formatInline(inner, base)
	}
}

// tagName extracts the lowercased element name from a raw "<...>" tag. ok is
// false when the byte after '<' (or '</') is not a letter, so "<3" and
// "< x>" stay literal.
func tagName(tagRaw string) (name string, closing bool, ok bool) {
	s := tagRaw[1 : len(tagRaw)-1]
	if strings.HasPrefix(s, "/") {
		closing = true
		s = s[1:]
	}
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (end > 0 && c >= '0' && c <= '9') {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return "", false, false
	}
	if end < len(s) && s[end] != ' ' && s[end] != '\t' && s[end] != '/' {
		return "", false, false
	}
	return strings.ToLower(s[:end]), closing, true
}

func isVoidTag(name string) bool {
	switch name {
	case "br", "hr", "img", "meta", "link", "input":
		return true
	}
	return false
}

// findMatchingClose locates the close tag matching an already-consumed open
// tag of the given name, tracking nesting of same-name tags. Returns the
// offsets of the close tag's start and of the byte after it, or -1, -1.
func findMatchingClose(text string, start int, name string) (int, int) {
	depth := 1
	for k := start; k < len(text); {
		lt := strings.IndexByte(text[k:], '<')
		if lt < 0 {
			return -1, -1
		}
		k += lt
		matched, closing, length := matchTag(text[k:], name)
		if !matched {
			k++
			continue
		}
		if closing {
			depth--
			if depth == 0 {
				return k, k + length
			}
		} else {
			depth++
		}
		k += length
	}
	return -1, -1
}

// matchTag reports whether s begins with an open or close tag of name.
// Self-closing same-name tags do not count toward nesting depth.
func matchTag(s, name string) (matched, closing bool, length int) {
	j := 1
	if j < len(s) && s[j] == '/' {
		closing = true
		j++
	}
	if len(s) < j+len(name)+1 {
		return false, false, 0
	}
	if !strings.EqualFold(s[j:j+len(name)], name) {
		return false, false, 0
	}
	k := j + len(name)
	if s[k] != '>' && s[k] != ' ' && s[k] != '\t' && s[k] != '/' {
		return false, false, 0
	}
	gt := strings.IndexByte(s[k:], '>')
	if gt < 0 {
		return false, false, 0
	}
	length = k + gt + 1
	if !closing && strings.HasSuffix(s[:length], "/>") {
		return false, false, 0
	}
	return true, closing, length
}

// parseTagAttrs extracts the attribute map from a raw tag using the HTML
// tokenizer, which handles quoting and entity decoding in values.
func parseTagAttrs(tagRaw string) map[string]string {
	z := xhtml.NewTokenizer(strings.NewReader(tagRaw))
	z.Next()
	tok := z.Token()
	attrs := make(map[string]string, len(tok.Attr))
	for _, a := range tok.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}
