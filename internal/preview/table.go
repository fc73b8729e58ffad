// Package preview renders scored lead groups as aligned text tables for
// terminal inspection.
package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"schoolleads/internal/models"
)

const maxNameWidth = 40

var header = []string{"#", "School", "City", "Enrollment", "Ratio", "Score"}

// RenderGroup renders up to limit records of one output group as a table.
// limit <= 0 renders everything.
func RenderGroup(title string, records []models.ScoredRecord, limit int) string {
	shown := records
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s (%d of %d)\n", title, len(shown), len(records))

	rows := make([][]string, 0, len(shown)+1)
	rows = append(rows, header)

	for i, rec := range shown {
		enrollment := ""
		if rec.Enrollment != nil {
			enrollment = strconv.Itoa(*rec.Enrollment)
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			runewidth.Truncate(rec.Name, maxNameWidth, "…"),
			rec.Address.City,
			enrollment,
			rec.Ratio.String(),
			rec.Score.String(),
		})
	}

	sb.WriteString(renderRows(rows))

	return sb.String()
}

// renderRows pads every cell to its column's display width and inserts a
// dash separator under the header.
func renderRows(rows [][]string) string {
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	widths := make([]int, colCount)

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder

	for rIdx, row := range rows {
		sb.WriteString("|")

		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			sb.WriteString(" ")
			sb.WriteString(cell)

			if pad := widths[i] - runewidth.StringWidth(cell); pad > 0 {
				sb.WriteString(strings.Repeat(" ", pad))
			}

			sb.WriteString(" |")
		}

		sb.WriteString("\n")

		if rIdx == 0 {
			sb.WriteString("|")

			for i := 0; i < colCount; i++ {
				sb.WriteString(" ")
				sb.WriteString(strings.Repeat("-", widths[i]))
				sb.WriteString(" |")
			}

			sb.WriteString("\n")
		}
	}

	return sb.String()
}
