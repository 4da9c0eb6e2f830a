package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"
)

// TableWriter выводит таблицу с выровненными колонками.
// Ширина колонок считается по видимой ширине: восточноазиатские
// полноширинные символы занимают две ячейки терминала.
type TableWriter struct{}

// NewTableWriter создаёт TableWriter.
func NewTableWriter() *TableWriter {
	return &TableWriter{}
}

// Write реализует интерфейс Writer.
func (t *TableWriter) Write(w io.Writer, table *Table) error {
	widths := make([]int, len(table.Headers))
	for i, h := range table.Headers {
		widths[i] = displayWidth(h)
	}

	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		safe := make([]string, len(row))
		for i, cell := range row {
			safe[i] = TerminalSafe(cell)
			if i < len(widths) && displayWidth(safe[i]) > widths[i] {
				widths[i] = displayWidth(safe[i])
			}
		}
		rows = append(rows, safe)
	}

	if err := writeAligned(w, table.Headers, widths); err != nil {
		return err
	}
	separators := make([]string, len(table.Headers))
	for i := range separators {
		separators[i] = strings.Repeat("-", widths[i])
	}
	if err := writeAligned(w, separators, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeAligned(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

// writeAligned выводит одну строку, дополняя ячейки пробелами до ширины колонки.
func writeAligned(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := 0
		if i < len(widths) {
			pad = widths[i] - displayWidth(cell)
		}
		if i == len(cells)-1 {
			pad = 0 // последняя колонка без хвостовых пробелов
		}
		if pad < 0 {
			pad = 0
		}
		parts[i] = cell + strings.Repeat(" ", pad)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, "  "))
	return err
}

// displayWidth возвращает видимую ширину строки в ячейках терминала.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}
