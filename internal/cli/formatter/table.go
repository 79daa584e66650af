package formatter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colGap is the number of spaces between columns.
const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Columns are padded to the widest visible cell. A column whose cells are
// all integers is right-aligned, header included.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	right := numericColumns(cols, rows)

	var b strings.Builder

	for i, h := range headers {
		writeCell(&b, StyleHeader.Render(h), lipgloss.Width(h), widths[i], right[i], i == cols-1)
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(&b, cell, lipgloss.Width(cell), widths[i], right[i], i == cols-1)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderSection renders a titled table followed by a blank line.
func RenderSection(title string, headers []string, rows [][]string) string {
	return Header(title) + "\n" + RenderTable(headers, rows) + "\n"
}

// writeCell pads a rendered cell to width. Left-aligned cells in the last
// column get no trailing padding.
func writeCell(b *strings.Builder, rendered string, visible, width int, right, last bool) {
	pad := max(width-visible, 0)
	if right {
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(rendered)
	} else {
		b.WriteString(rendered)
		if !last {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	if !last {
		b.WriteString(strings.Repeat(" ", colGap))
	}
}

func numericColumns(cols int, rows [][]string) []bool {
	right := make([]bool, cols)
	if len(rows) == 0 {
		return right
	}
	for i := range right {
		seen := 0
		right[i] = true
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			seen++
			if _, err := strconv.Atoi(row[i]); err != nil {
				right[i] = false
				break
			}
		}
		right[i] = right[i] && seen > 0
	}
	return right
}
