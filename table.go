package mdriver

import "strings"

type cellAlign uint8

const (
	alignLeft cellAlign = iota
	alignCenter
	alignRight
)

const minColumnWidth = 3

// renderTable draws a box-bordered table. Column widths are the maximum of
// header width, data widths and three; alignment follows the delimiter row.
func (p *StreamingParser) renderTable(header []string, aligns []cellAlign, rows [][]string) string {
	cols := len(header)
	if cols == 0 {
		return ""
	}
	for len(aligns) < cols {
		aligns = append(aligns, alignLeft)
	}

	headerCells := make([]string, cols)
	for c := 0; c < cols; c++ {
		headerCells[c] = p.styles.TableHeader.Prefix + p.formatInline(header[c], p.styles.TableHeader.Prefix) + ansiReset
	}
	dataCells := make([][]string, len(rows))
	for r, row := range rows {
		dataCells[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			if c < len(row) {
				dataCells[r][c] = p.formatInline(row[c], "")
			}
		}
	}

	widths := make([]int, cols)
	for c := 0; c < cols; c++ {
		widths[c] = minColumnWidth
		if w := visibleWidth(headerCells[c]); w > widths[c] {
			widths[c] = w
		}
		for r := range dataCells {
			if w := visibleWidth(dataCells[r][c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	var out strings.Builder
	out.WriteString(p.tableBorder(widths, "┌", "┬", "┐"))
	out.WriteString(p.tableRow(headerCells, widths, aligns))
	out.WriteString(p.tableBorder(widths, "├", "┼", "┤"))
	for r := range dataCells {
		out.WriteString(p.tableRow(dataCells[r], widths, aligns))
	}
	out.WriteString(p.tableBorder(widths, "└", "┴", "┘"))
	out.WriteByte('\n')
	return out.String()
}

func (p *StreamingParser) tableBorder(widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(p.styles.TableBorder.Prefix)
	b.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			b.WriteString(mid)
		}
		b.WriteString(strings.Repeat("─", w+2))
	}
	b.WriteString(right)
	b.WriteString(ansiReset)
	b.WriteByte('\n')
	return b.String()
}

func (p *StreamingParser) tableRow(cells []string, widths []int, aligns []cellAlign) string {
	border := p.styles.TableBorder.Prefix + "│" + ansiReset
	var b strings.Builder
	b.WriteString(border)
	for c, cell := range cells {
		b.WriteByte(' ')
		b.WriteString(padCell(cell, widths[c], aligns[c]))
		b.WriteByte(' ')
		b.WriteString(border)
	}
	b.WriteByte('\n')
	return b.String()
}

func padCell(text string, width int, align cellAlign) string {
	pad := width - visibleWidth(text)
	if pad <= 0 {
		return text
	}
	switch align {
	case alignRight:
		return spaces(pad) + text
	case alignCenter:
		left := pad / 2
		return spaces(left) + text + spaces(pad-left)
	default:
		return text + spaces(pad)
	}
}
