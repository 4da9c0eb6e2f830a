// Package tokenhandler реализует команду token для создания токенов доступа.
// Единственная операция, использующая basic-аутентификацию: токена ещё нет.
package tokenhandler

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Kargones/teax/internal/command"
	"github.com/Kargones/teax/internal/command/handlers/shared"
	"github.com/Kargones/teax/internal/config"
	"github.com/Kargones/teax/internal/constants"
	"github.com/Kargones/teax/internal/pkg/output"
)

func init() {
	command.Register(&Handler{})
}

// Handler обрабатывает команду token.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActToken
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Создание токена доступа (basic-аутентификация)"
}

// Execute выполняет подкоманду token.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	if len(cfg.Args) < 1 || cfg.Args[0] != "create" {
		return shared.UsageError("использование: token create <имя> [--user ...] [--scopes ...] [--password ...]")
	}

	fs := pflag.NewFlagSet("token create", pflag.ContinueOnError)
	user := fs.String("user", "", "имя пользователя; по умолчанию из логина tea")
	scopes := fs.StringSlice("scopes", nil, "области действия токена через запятую")
	password := fs.String("password", "", "пароль пользователя; без флага запрашивается из stdin")
	if err := fs.Parse(cfg.Args[1:]); err != nil {
		return shared.UsageError("token create: %v", err)
	}
	args := fs.Args()
	if len(args) < 1 {
		return shared.UsageError("использование: token create <имя>")
	}
	name := args[0]

	pass := *password
	if pass == "" {
		var err error
		pass, err = readPassword(os.Stdin, os.Stderr)
		if err != nil {
			return err
		}
	}

	client, err := shared.CreateClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	token, err := client.CreateAccessToken(ctx, *user, pass, name, *scopes)
	if err != nil {
		return err
	}

	// SHA1 (значение токена) сервер возвращает ТОЛЬКО при создании.
	table := &output.Table{Headers: []string{"ID", "NAME", "TOKEN", "SCOPES"}}
	table.AddRow(
		fmt.Sprintf("%d", token.ID),
		token.Name,
		token.SHA1,
		shared.Dash(strings.Join(token.Scopes, ",")),
	)
	return shared.Render(cfg, table)
}

// readPassword читает пароль из in, приглашение пишет в prompt (stderr,
// чтобы не загрязнять stdout, зарезервированный за выводом команд).
func readPassword(in *os.File, prompt *os.File) (string, error) {
	fmt.Fprint(prompt, "Пароль: ")
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", shared.UsageError("не удалось прочитать пароль: %v", err)
	}
	pass := strings.TrimRight(line, "\r\n")
	if pass == "" {
		return "", shared.UsageError("пароль не может быть пустым")
	}
	return pass, nil
}
