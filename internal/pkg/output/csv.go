package output

import (
	"encoding/csv"
	"io"

	"github.com/Kargones/teax/internal/pkg/apperrors"
)

// CSVWriter выводит таблицу в формате CSV с заголовком.
// Каждая ячейка проходит экранирование от формульных инъекций.
type CSVWriter struct{}

// NewCSVWriter создаёт CSVWriter.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Write реализует интерфейс Writer.
func (c *CSVWriter) Write(w io.Writer, table *Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Headers); err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось записать заголовок CSV", err)
	}
	for _, row := range table.Rows {
		safe := make([]string, len(row))
		for i, cell := range row {
			safe[i] = CSVSafe(cell)
		}
		if err := cw.Write(safe); err != nil {
			return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось записать строку CSV", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось завершить запись CSV", err)
	}
	return nil
}
