package output

import "strings"

// FormatTable, FormatSimple и FormatCSV — поддерживаемые форматы вывода.
const (
	FormatTable  = "table"
	FormatSimple = "simple"
	FormatCSV    = "csv"
)

// NewWriter создаёт Writer по указанному формату (case-insensitive).
// При неизвестном формате возвращает TableWriter (default).
func NewWriter(format string) Writer {
	switch strings.ToLower(format) {
	case FormatSimple:
		return NewSimpleWriter()
	case FormatCSV:
		return NewCSVWriter()
	case FormatTable:
		return NewTableWriter()
	default:
		// По умолчанию — таблица для человекочитаемости
		return NewTableWriter()
	}
}
