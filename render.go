package mdriver

import (
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
)

func (p *StreamingParser) renderHeading(level int, text string) string {
	prefix := p.styles.Heading[level-1].Prefix
	content := prefix + strings.Repeat("#", level) + " " + p.formatInline(text, prefix) + ansiReset
	return wrap(content, "", "", p.cfg.width) + "\n\n"
}

// renderParagraph joins the accumulated lines into one logical paragraph.
// A line ending in two spaces or a backslash forces a hard break.
func (p *StreamingParser) renderParagraph(lines []string) string {
	var joined strings.Builder
	for i, line := range lines {
		hard := strings.HasSuffix(line, "  ")
		trimmed := strings.TrimRight(line, " ")
		if strings.HasSuffix(trimmed, "\\") {
			hard = true
			trimmed = trimmed[:len(trimmed)-1]
		}
		joined.WriteString(strings.TrimSpace(trimmed))
		if i < len(lines)-1 {
			if hard {
				joined.WriteByte('\n')
			} else {
				joined.WriteByte(' ')
			}
		}
	}
	return wrap(p.formatInline(joined.String(), ""), "", "", p.cfg.width) + "\n\n"
}

func (p *StreamingParser) renderRule() string {
	return p.styles.ThematicBreak.Prefix + strings.Repeat("─", p.cfg.width) + ansiReset + "\n\n"
}

// splitListItem re-parses a raw list line that already matched parseListItem,
// returning the marker's start number for ordered items and the item text.
func splitListItem(raw string) (indent int, kind listItemKind, num int, content string) {
	indent = leadingIndent(raw)
	rest := strings.TrimLeft(raw, " \t")
	switch rest[0] {
	case '-', '+', '*':
		kind = itemUnordered
		rest = rest[1:]
	default:
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		kind = itemOrdered
		num, _ = strconv.Atoi(rest[:i])
		rest = rest[i+1:]
	}
	content = strings.TrimLeft(rest, " ")
	return indent, kind, num, content
}

// renderList emits list items with cyan markers: bullets for unordered items,
// sequential numbers for ordered ones. Numbering restarts per indent level,
// seeded from the first item's own number, and deeper counters reset whenever
// the list dedents.
func (p *StreamingParser) renderList(items []listItem) string {
	counters := map[int]int{}
	var out strings.Builder
	for _, it := range items {
		indent, kind, num, content := splitListItem(it.raw)
		for d := range counters {
			if d > indent {
				delete(counters, d)
			}
		}
		var marker string
		if kind == itemOrdered {
			n, seen := counters[indent]
			if seen {
				n++
			} else {
				n = num
			}
			counters[indent] = n
			marker = strconv.Itoa(n) + "."
		} else {
			delete(counters, indent)
			marker = "•"
		}
		lead := spaces(2 + indent)
		first := lead + p.styles.ListMarker.Prefix + marker + ansiReset + " "
		cont := spaces(2 + indent + visibleWidth(marker) + 1)
		out.WriteString(wrap(p.formatInline(content, ""), first, cont, p.cfg.width))
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	return out.String()
}

// renderBlockquote groups consecutive lines at the same nesting level into a
// wrapped paragraph prefixed with one "> " marker per level.
func (p *StreamingParser) renderBlockquote(quotes []quoteLine) string {
	marker := p.styles.Quote.Prefix + ">" + ansiReset + " "
	var out strings.Builder
	for i := 0; i < len(quotes); {
		level := quotes[i].level
		if isBlank(quotes[i].text) {
			out.WriteString(strings.TrimRight(strings.Repeat(marker, level), " "))
			out.WriteByte('\n')
			i++
			continue
		}
		var parts []string
		j := i
		for j < len(quotes) && quotes[j].level == level && !isBlank(quotes[j].text) {
			parts = append(parts, strings.TrimSpace(quotes[j].text))
			j++
		}
		prefix := strings.Repeat(marker, level)
		out.WriteString(wrap(p.formatInline(strings.Join(parts, " "), ""), prefix, prefix, p.cfg.width))
		out.WriteByte('\n')
		i = j
	}
	out.WriteByte('\n')
	return out.String()
}

// renderCodeBlock emits fenced code verbatim on a padded background. Narrow
// blocks get extra padding so the background reads as a panel rather than a
// sliver; syntax highlighting is applied per line when a highlighter is
// configured and knows the language.
func (p *StreamingParser) renderCodeBlock(lines []string, info string) string {
	lang := info
	if sp := strings.IndexAny(info, " \t"); sp >= 0 {
		lang = info[:sp]
	}
	display := lines
	if p.cfg.highlighter != nil && lang != "" {
		if hl, err := p.cfg.highlighter.Highlight(lang, lines); err == nil && len(hl) == len(lines) {
			display = hl
		}
	}
	// Code lines carry at most SGR sequences, so reflow's measurement is
	// exact here.
	maxw := 0
	for _, l := range lines {
		if w := ansi.PrintableRuneWidth(l); w > maxw {
			maxw = w
		}
	}
	pad := maxw
	switch {
	case maxw <= 5:
		pad = maxw + 2
	case maxw < 10:
		pad = 10
	}
	bg := p.styles.CodeBlock.Prefix
	var out strings.Builder
	for i := range display {
		out.WriteString(bg)
		out.WriteByte(' ')
		out.WriteString(display[i])
		out.WriteString(bg)
		out.WriteString(spaces(pad - ansi.PrintableRuneWidth(display[i]) + 1))
		out.WriteString(ansiReset)
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	return out.String()
}

// hyperlink styles label as a link and, when OSC 8 is enabled, wraps it in a
// clickable hyperlink escape.
func (p *StreamingParser) hyperlink(label, url, base string) string {
	styled := p.styles.Link.Prefix + label + ansiReset + base
	if !p.cfg.osc8 || url == "" {
		return styled
	}
	return osc8Prefix + url + "\x1b\\" + styled + osc8Close
}

// renderBibliography lists the pending citations in number order. Labels that
// gained a definition after being cited resolve here; the rest are marked
// unresolved. Returns "" when nothing was cited.
func (p *StreamingParser) renderBibliography() string {
	entries := p.refs.drain()
	if len(entries) == 0 {
		return ""
	}
	var out strings.Builder
	for _, e := range entries {
		out.WriteString(p.styles.Citation.Prefix)
		out.WriteString("[" + strconv.Itoa(e.number) + "]")
		out.WriteString(ansiReset)
		out.WriteString(" " + e.label + ": ")
		if def, ok := p.refs.lookup(e.label); ok {
			out.WriteString(p.hyperlink(def.url, def.url, ""))
			if def.title != "" {
				out.WriteString(" \"" + def.title + "\"")
			}
		} else {
			out.WriteString("(unresolved)")
		}
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	return out.String()
}
