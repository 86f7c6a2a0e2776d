// Package table renders string columns as Markdown pipe tables.
package table

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// NoSort keeps rows in the order they were supplied.
const NoSort = -1

// Render builds a pipe table from columns. The first element of every column
// is its header and the rest are body values aligned by position. Short
// columns are padded with empty cells. When sortColumn is not negative the
// rows are ordered by that column's body values, ties keeping their order.
func Render(sortColumn int, columns ...[]string) ([]string, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table needs at least one column")
	}
	if sortColumn >= len(columns) {
		return nil, fmt.Errorf("sort column %d out of range for %d columns", sortColumn, len(columns))
	}

	height := 0
	for _, col := range columns {
		if len(col) > height {
			height = len(col)
		}
	}
	if height == 0 {
		height = 1
	}

	// cells[c][r]; row 0 is the header.
	cells := make([][]string, len(columns))
	widths := make([]int, len(columns))
	for c, col := range columns {
		cells[c] = make([]string, height)
		copy(cells[c], col)
		widths[c] = 1
		for _, v := range cells[c] {
			if w := utf8.RuneCountInString(v); w > widths[c] {
				widths[c] = w
			}
		}
	}

	order := make([]int, height-1)
	for i := range order {
		order[i] = i + 1
	}
	if sortColumn >= 0 {
		key := cells[sortColumn]
		sort.SliceStable(order, func(i, j int) bool {
			return key[order[i]] < key[order[j]]
		})
	}

	lines := make([]string, 0, height+1)
	lines = append(lines, formatRow(cells, widths, 0))
	lines = append(lines, separator(widths))
	for _, r := range order {
		lines = append(lines, formatRow(cells, widths, r))
	}
	return lines, nil
}

func formatRow(cells [][]string, widths []int, row int) string {
	parts := make([]string, len(cells))
	for c := range cells {
		parts[c] = pad(cells[c][row], widths[c])
	}
	return joinCells(parts)
}

func separator(widths []int) string {
	parts := make([]string, len(widths))
	for c, w := range widths {
		parts[c] = strings.Repeat("-", w)
	}
	return joinCells(parts)
}

// joinCells closes every cell with " |". Multi-column rows also carry one
// space after each closing pipe, the trailing one included, which is how
// the wiki's existing tables are laid out.
func joinCells(parts []string) string {
	sep := " |"
	if len(parts) > 1 {
		sep = " | "
	}
	var sb strings.Builder
	sb.WriteString("| ")
	for _, p := range parts {
		sb.WriteString(p)
		sb.WriteString(sep)
	}
	return sb.String()
}

func pad(v string, width int) string {
	n := width - utf8.RuneCountInString(v)
	if n <= 0 {
		return v
	}
	return v + strings.Repeat(" ", n)
}
