// Package help реализует команду help для вывода списка всех доступных команд.
package help

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Kargones/teax/internal/command"
	"github.com/Kargones/teax/internal/config"
	"github.com/Kargones/teax/internal/constants"
)

func init() {
	command.Register(&Handler{})
}

// Handler обрабатывает команду help.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActHelp
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Вывод списка доступных команд"
}

// Execute выполняет команду help: собирает список команд и выводит его.
func (h *Handler) Execute(_ context.Context, _ *config.Config) error {
	return writeText(os.Stdout)
}

// commandInfo описывает одну команду.
type commandInfo struct {
	name        string
	description string
}

// writeText выводит информацию о командах в человекочитаемом формате.
func writeText(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("teax — компаньон-клиент REST API Gitea\n")
	sb.WriteString("\nИспользование: teax [--login имя] [--output формат] <команда> [аргументы]\n")
	sb.WriteString("\nКоманды:\n")

	commands := collect()
	maxLen := 0
	for _, cmd := range commands {
		if len(cmd.name) > maxLen {
			maxLen = len(cmd.name)
		}
	}
	for _, cmd := range commands {
		fmt.Fprintf(&sb, "  %-*s  %s\n", maxLen, cmd.name, cmd.description)
	}

	sb.WriteString("\nОпции:\n")
	sb.WriteString("  --login имя       Логин tea из config.yml (по умолчанию default)\n")
	sb.WriteString("  --output формат   Формат вывода: table, simple, csv\n")
	sb.WriteString("  --version         Вывод версии приложения\n")
	sb.WriteString("\nПеременные окружения:\n")
	sb.WriteString("  TEAX_CONFIG_PATH    Переопределение пути к config.yml tea\n")
	sb.WriteString("  TEAX_CA_BUNDLE      Путь к пользовательскому CA bundle\n")
	sb.WriteString("  TEAX_INSECURE_TLS   Отключение проверки сертификатов\n")
	sb.WriteString("  TEAX_ALLOW_HTTP     Явное разрешение plaintext HTTP\n")

	_, err := fmt.Fprint(w, sb.String())
	return err
}

// collect собирает команды из реестра, отсортированные по имени.
func collect() []commandInfo {
	all := command.All()
	commands := make([]commandInfo, 0, len(all))
	for name, handler := range all {
		commands = append(commands, commandInfo{
			name:        name,
			description: handler.Description(),
		})
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].name < commands[j].name
	})
	return commands
}
