// Package output предоставляет форматирование табличных результатов команд.
// Вывод команд идёт ТОЛЬКО в stdout; логи никогда сюда не попадают.
package output

import "io"

// Table — табличный результат команды: заголовки и строки.
// Все значения уже приведены к строкам вызывающим кодом.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Writer определяет интерфейс для форматирования табличных результатов.
// Реализации: TableWriter, SimpleWriter, CSVWriter.
type Writer interface {
	// Write форматирует таблицу и записывает в w.
	Write(w io.Writer, table *Table) error
}

// AddRow добавляет строку в таблицу.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
