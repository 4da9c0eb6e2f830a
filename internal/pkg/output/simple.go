package output

import (
	"fmt"
	"io"
	"strings"
)

// SimpleWriter выводит строки таблицы без выравнивания и заголовков,
// значения разделяются одним пробелом. Формат для скриптов и pipe.
type SimpleWriter struct{}

// NewSimpleWriter создаёт SimpleWriter.
func NewSimpleWriter() *SimpleWriter {
	return &SimpleWriter{}
}

// Write реализует интерфейс Writer.
func (s *SimpleWriter) Write(w io.Writer, table *Table) error {
	for _, row := range table.Rows {
		safe := make([]string, len(row))
		for i, cell := range row {
			safe[i] = TerminalSafe(cell)
		}
		if _, err := fmt.Fprintln(w, strings.Join(safe, " ")); err != nil {
			return err
		}
	}
	return nil
}
