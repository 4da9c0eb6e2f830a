// Package version реализует команду version для вывода информации
// о версии приложения.
package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/Kargones/teax/internal/command"
	"github.com/Kargones/teax/internal/config"
	"github.com/Kargones/teax/internal/constants"
)

func init() {
	command.Register(&Handler{})
}

// Data содержит информацию о версии приложения.
type Data struct {
	// Version — полная версия приложения.
	Version string

	// GoVersion — версия Go, использованная при сборке.
	GoVersion string
}

// writeText выводит информацию о версии в человекочитаемом формате.
func (d *Data) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "teax version %s\n  Go: %s\n", d.Version, d.GoVersion)
	return err
}

// buildData создаёт Data с fallback значением для пустой версии.
func buildData(version string) *Data {
	if version == "" {
		version = "dev"
	}
	return &Data{
		Version:   version,
		GoVersion: runtime.Version(),
	}
}

// Handler обрабатывает команду version.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActVersion
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Вывод информации о версии приложения"
}

// Execute выполняет команду version.
func (h *Handler) Execute(_ context.Context, _ *config.Config) error {
	return buildData(constants.Version).writeText(os.Stdout)
}
