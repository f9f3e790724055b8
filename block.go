package mdriver

import (
	"strings"
)

type parserState uint8

const (
	stateReady parserState = iota
	stateParagraph
	stateCodeBlock
	stateList
	stateListAfterBlank
	stateTable
	stateBlockquote
)

type blockKind uint8

const (
	blockNone blockKind = iota
	blockParagraph
	blockCode
	blockList
	blockTable
	blockQuote
)

type listItemKind uint8

const (
	itemUnordered listItemKind = iota
	itemOrdered
)

type listItem struct {
	indent int
	kind   listItemKind
	raw    string
}

type quoteLine struct {
	level int
	text  string
}

// blockBuilder accumulates the block under construction. Its kind always
// matches the parser state; emitBlock swaps it out wholesale.
type blockBuilder struct {
	kind   blockKind
	lines  []string
	info   string
	items  []listItem
	header []string
	aligns []cellAlign
	rows   [][]string
	quotes []quoteLine
}

func (p *StreamingParser) processLine(line string) string {
	switch p.state {
	case stateParagraph:
		return p.lineInParagraph(line)
	case stateCodeBlock:
		return p.lineInCodeBlock(line)
	case stateList:
		return p.lineInList(line)
	case stateListAfterBlank:
		return p.lineInListAfterBlank(line)
	case stateTable:
		return p.lineInTable(line)
	case stateBlockquote:
		return p.lineInBlockquote(line)
	default:
		return p.lineReady(line)
	}
}

func (p *StreamingParser) lineReady(line string) string {
	if isBlank(line) {
		return ""
	}
	if isHTMLCommentLine(line) {
		return ""
	}
	if level, text, ok := parseATXHeading(line); ok {
		return p.renderHeading(level, text)
	}
	if token, info, indent, ok := parseFence(line); ok {
		p.state = stateCodeBlock
		p.fenceToken = token
		p.fenceInfo = info
		p.fenceIndent = indent
		p.builder = blockBuilder{kind: blockCode, info: info}
		return ""
	}
	if level, rest, ok := parseQuoteLine(line); ok {
		p.state = stateBlockquote
		p.quoteLevel = level
		p.builder = blockBuilder{kind: blockQuote, quotes: []quoteLine{{level: level, text: rest}}}
		return ""
	}
	// Thematic break outranks list markers: "---" is a rule, not an item.
	if isThematicBreak(line) {
		return p.renderRule()
	}
	if indent, kind, ok := parseListItem(line); ok {
		p.state = stateList
		p.builder = blockBuilder{kind: blockList, items: []listItem{{indent: indent, kind: kind, raw: line}}}
		return ""
	}
	if label, url, title, ok := parseLinkDefinition(line); ok {
		p.refs.defineLink(label, url, title)
		return ""
	}
	p.state = stateParagraph
	p.builder = blockBuilder{kind: blockParagraph, lines: []string{line}}
	return ""
}

func (p *StreamingParser) lineInParagraph(line string) string {
	if isBlank(line) {
		return p.emitBlock()
	}
	if level, ok := parseSetextUnderline(line); ok {
		text := strings.Join(trimAll(p.builder.lines), " ")
		p.builder = blockBuilder{}
		p.state = stateReady
		return p.renderHeading(level, text)
	}
	if len(p.builder.lines) == 1 {
		if aligns, ok := parseTableDelimiter(line); ok {
			header := splitTableRow(p.builder.lines[0])
			if len(header) > 0 {
				p.builder = blockBuilder{kind: blockTable, header: header, aligns: aligns}
				p.state = stateTable
				return ""
			}
		}
	}
	p.builder.lines = append(p.builder.lines, line)
	return ""
}

func (p *StreamingParser) lineInCodeBlock(line string) string {
	if strings.TrimSpace(line) == p.fenceToken {
		return p.emitBlock()
	}
	p.builder.lines = append(p.builder.lines, trimIndent(line, p.fenceIndent))
	return ""
}

func (p *StreamingParser) lineInList(line string) string {
	if isBlank(line) {
		p.state = stateListAfterBlank
		return ""
	}
	if isThematicBreak(line) {
		return p.emitBlock() + p.renderRule()
	}
	if indent, kind, ok := parseListItem(line); ok {
		p.builder.items = append(p.builder.items, listItem{indent: indent, kind: kind, raw: line})
		return ""
	}
	if indent := leadingIndent(line); indent >= 4 {
		stripped := strings.TrimLeft(line, " \t")
		if token, info, _, ok := parseFence(stripped); ok {
			out := p.emitBlock()
			p.state = stateCodeBlock
			p.fenceToken = token
			p.fenceInfo = info
			p.fenceIndent = indent
			p.builder = blockBuilder{kind: blockCode, info: info}
			return out
		}
		// Indented continuation inside an item; no lazy paragraph join.
		return ""
	}
	return p.emitBlock() + p.lineReady(line)
}

func (p *StreamingParser) lineInListAfterBlank(line string) string {
	if _, kind, ok := parseListItem(line); ok {
		if len(p.builder.items) > 0 && kind == p.builder.items[0].kind {
			p.state = stateList
			return p.lineInList(line)
		}
		return p.emitBlock() + p.lineReady(line)
	}
	if leadingIndent(line) >= 4 && !isBlank(line) {
		p.state = stateList
		return p.lineInList(line)
	}
	out := p.emitBlock()
	if !isBlank(line) {
		out += p.lineReady(line)
	}
	return out
}

func (p *StreamingParser) lineInTable(line string) string {
	if isBlank(line) || !strings.Contains(line, "|") {
		out := p.emitBlock()
		if !isBlank(line) {
			out += p.lineReady(line)
		}
		return out
	}
	p.builder.rows = append(p.builder.rows, splitTableRow(line))
	return ""
}

func (p *StreamingParser) lineInBlockquote(line string) string {
	if isBlank(line) {
		return p.emitBlock()
	}
	if level, rest, ok := parseQuoteLine(line); ok {
		p.quoteLevel = level
		p.builder.quotes = append(p.builder.quotes, quoteLine{level: level, text: rest})
		return ""
	}
	p.builder.quotes = append(p.builder.quotes, quoteLine{level: p.quoteLevel, text: line})
	return ""
}

// emitBlock takes ownership of the builder and atomically resets the parser
// to Ready. Image prefetch for the block happens before formatting.
func (p *StreamingParser) emitBlock() string {
	b := p.builder
	p.builder = blockBuilder{}
	p.state = stateReady
	p.quoteLevel = 0
	p.fenceToken = ""
	p.fenceInfo = ""
	p.fenceIndent = 0
	if b.kind == blockNone {
		return ""
	}
	if b.kind != blockCode {
		p.prefetchBlockImages(blockRawText(b))
	}
	switch b.kind {
	case blockParagraph:
		return p.renderParagraph(b.lines)
	case blockCode:
		return p.renderCodeBlock(b.lines, b.info)
	case blockList:
		return p.renderList(b.items)
	case blockTable:
		return p.renderTable(b.header, b.aligns, b.rows)
	case blockQuote:
		return p.renderBlockquote(b.quotes)
	}
	return ""
}

func blockRawText(b blockBuilder) string {
	switch b.kind {
	case blockParagraph:
		return strings.Join(b.lines, "\n")
	case blockList:
		var sb strings.Builder
		for _, it := range b.items {
			sb.WriteString(it.raw)
			sb.WriteByte('\n')
		}
		return sb.String()
	case blockTable:
		var sb strings.Builder
		sb.WriteString(strings.Join(b.header, " "))
		for _, row := range b.rows {
			sb.WriteByte('\n')
			sb.WriteString(strings.Join(row, " "))
		}
		return sb.String()
	case blockQuote:
		var sb strings.Builder
		for _, q := range b.quotes {
			sb.WriteString(q.text)
			sb.WriteByte('\n')
		}
		return sb.String()
	}
	return ""
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isHTMLCommentLine(line string) bool {
	trim := strings.TrimSpace(line)
	return strings.HasPrefix(trim, "<!--") && strings.HasSuffix(trim, "-->") && len(trim) >= 7
}

func trimAll(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.TrimSpace(l))
	}
	return out
}

// leadingIndent counts leading columns, tabs expanding to four.
func leadingIndent(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ':
			count++
		case '\t':
			count += 4
		default:
			return count
		}
	}
	return count
}

func trimIndent(s string, count int) string {
	i := 0
	for i < len(s) && count > 0 {
		switch s[i] {
		case ' ':
			count--
		case '\t':
			count -= 4
		default:
			return s[i:]
		}
		i++
	}
	return s[i:]
}

func parseATXHeading(line string) (int, string, bool) {
	if leadingIndent(line) > 3 {
		return 0, "", false
	}
	text := strings.TrimLeft(line, " ")
	level := 0
	for level < len(text) && text[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	if level >= len(text) || text[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(text[level+1:]), true
}

func parseSetextUnderline(line string) (int, bool) {
	if leadingIndent(line) > 3 {
		return 0, false
	}
	trim := strings.TrimSpace(line)
	if trim == "" {
		return 0, false
	}
	switch {
	case strings.Count(trim, "=") == len(trim):
		return 1, true
	case strings.Count(trim, "-") == len(trim):
		return 2, true
	}
	return 0, false
}

// parseFence recognizes a code fence opener: up to three leading spaces, a
// run of three or more backticks or tildes, then an optional info string.
func parseFence(line string) (token, info string, indent int, ok bool) {
	indent = leadingIndent(line)
	if indent > 3 {
		return "", "", 0, false
	}
	rest := strings.TrimLeft(line, " ")
	if rest == "" {
		return "", "", 0, false
	}
	ch := rest[0]
	if ch != '`' && ch != '~' {
		return "", "", 0, false
	}
	run := 0
	for run < len(rest) && rest[run] == ch {
		run++
	}
	if run < 3 {
		return "", "", 0, false
	}
	info = strings.TrimSpace(rest[run:])
	if ch == '`' && strings.ContainsRune(info, '`') {
		return "", "", 0, false
	}
	return rest[:run], info, indent, true
}

// parseQuoteLine strips blockquote markers: up to three leading spaces, then
// one or more '>' each optionally followed by a single space.
func parseQuoteLine(line string) (int, string, bool) {
	if leadingIndent(line) > 3 {
		return 0, "", false
	}
	rest := strings.TrimLeft(line, " ")
	level := 0
	for len(rest) > 0 && rest[0] == '>' {
		level++
		rest = rest[1:]
		if len(rest) > 0 && rest[0] == ' ' {
			rest = rest[1:]
		}
	}
	if level == 0 {
		return 0, "", false
	}
	return level, rest, true
}

func isThematicBreak(line string) bool {
	if leadingIndent(line) > 3 {
		return false
	}
	trim := strings.TrimSpace(line)
	if trim == "" {
		return false
	}
	var ch byte
	count := 0
	for i := 0; i < len(trim); i++ {
		c := trim[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if c != '-' && c != '_' && c != '*' {
			return false
		}
		if ch == 0 {
			ch = c
		} else if c != ch {
			return false
		}
		count++
	}
	return count >= 3
}

// parseListItem recognizes "-", "+", "*" or "digits." markers followed by
// one to four spaces, with total leading indent of at most twelve columns.
func parseListItem(line string) (indent int, kind listItemKind, ok bool) {
	indent = leadingIndent(line)
	if indent > 12 {
		return 0, 0, false
	}
	rest := strings.TrimLeft(line, " \t")
	if rest == "" {
		return 0, 0, false
	}
	var markerLen int
	switch rest[0] {
	case '-', '+', '*':
		kind = itemUnordered
		markerLen = 1
	default:
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 || i >= len(rest) || rest[i] != '.' {
			return 0, 0, false
		}
		kind = itemOrdered
		markerLen = i + 1
	}
	spaces := 0
	for markerLen+spaces < len(rest) && rest[markerLen+spaces] == ' ' {
		spaces++
	}
	if spaces < 1 || spaces > 4 {
		return 0, 0, false
	}
	return indent, kind, true
}

// parseLinkDefinition recognizes `[label]: url "title"` lines. The label is
// scanned with backslash-escape-aware bracket balancing; the url may be bare
// or angle-bracketed; the title quoted with "", '' or ().
func parseLinkDefinition(line string) (label, url, title string, ok bool) {
	if leadingIndent(line) > 3 {
		return "", "", "", false
	}
	s := strings.TrimLeft(line, " ")
	if len(s) < 4 || s[0] != '[' {
		return "", "", "", false
	}
	end := scanBalancedBrackets(s, 0)
	if end < 0 || end+1 >= len(s) || s[end+1] != ':' {
		return "", "", "", false
	}
	label = s[1:end]
	if strings.TrimSpace(label) == "" {
		return "", "", "", false
	}
	rest := strings.TrimLeft(s[end+2:], " \t")
	if rest == "" {
		return "", "", "", false
	}
	if rest[0] == '<' {
		close := strings.IndexByte(rest, '>')
		if close < 0 {
			return "", "", "", false
		}
		url = rest[1:close]
		rest = rest[close+1:]
	} else {
		sp := strings.IndexAny(rest, " \t")
		if sp < 0 {
			url = rest
			rest = ""
		} else {
			url = rest[:sp]
			rest = rest[sp:]
		}
	}
	if url == "" {
		return "", "", "", false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return label, url, "", true
	}
	var closeCh byte
	switch rest[0] {
	case '"':
		closeCh = '"'
	case '\'':
		closeCh = '\''
	case '(':
		closeCh = ')'
	default:
		return "", "", "", false
	}
	closeIdx := strings.IndexByte(rest[1:], closeCh)
	if closeIdx < 0 || strings.TrimSpace(rest[closeIdx+2:]) != "" {
		return "", "", "", false
	}
	return label, url, rest[1 : closeIdx+1], true
}

// scanBalancedBrackets returns the index of the ']' closing the '[' at
// start, honoring backslash escapes and nested brackets, or -1.
func scanBalancedBrackets(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTableRow splits a table line into cells. Backslash escapes a pipe;
// empty leading/trailing cells from outer pipes are discarded.
func splitTableRow(line string) []string {
	s := strings.TrimSpace(line)
	hadLeading := strings.HasPrefix(s, "|")
	var cells []string
	var cur strings.Builder
	esc := false
	for _, r := range s {
		if esc {
			if r != '|' {
				cur.WriteByte('\\')
			}
			cur.WriteRune(r)
			esc = false
			continue
		}
		if r == '\\' {
			esc = true
			continue
		}
		if r == '|' {
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	if esc {
		cur.WriteByte('\\')
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	if len(cells) > 0 && hadLeading && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// parseTableDelimiter matches rows of `:?---+:?` cells separated by pipes.
func parseTableDelimiter(line string) ([]cellAlign, bool) {
	if !strings.Contains(line, "|") {
		return nil, false
	}
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]cellAlign, 0, len(cells))
	for _, cell := range cells {
		c := cell
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		c = strings.TrimPrefix(c, ":")
		c = strings.TrimSuffix(c, ":")
		if len(c) < 3 || strings.Count(c, "-") != len(c) {
			return nil, false
		}
		switch {
		case left && right:
			aligns = append(aligns, alignCenter)
		case right:
			aligns = append(aligns, alignRight)
		default:
			aligns = append(aligns, alignLeft)
		}
	}
	return aligns, true
}
