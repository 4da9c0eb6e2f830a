// Package runnershandler реализует команду runners для управления раннерами
// Gitea Actions. Область действия выбирается флагами: --repo owner/repo,
// --org имя или --global; флаги взаимоисключающие.
package runnershandler

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Kargones/teax/internal/command"
	"github.com/Kargones/teax/internal/command/handlers/shared"
	"github.com/Kargones/teax/internal/config"
	"github.com/Kargones/teax/internal/constants"
	"github.com/Kargones/teax/internal/entity/gitea"
	"github.com/Kargones/teax/internal/pkg/output"
)

func init() {
	command.Register(&Handler{})
}

// Handler обрабатывает команду runners.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActRunners
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Управление раннерами Actions (list, get, delete, token)"
}

// Execute выполняет подкоманду runners.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	if len(cfg.Args) < 1 {
		return shared.UsageError("использование: runners <list|get|delete|token> [--repo owner/repo | --org имя | --global]")
	}
	sub := cfg.Args[0]

	fs := pflag.NewFlagSet("runners", pflag.ContinueOnError)
	repoFlag := fs.String("repo", "", "область репозитория: owner/repo")
	orgFlag := fs.String("org", "", "область организации")
	globalFlag := fs.Bool("global", false, "глобальная область (требует прав администратора)")
	if err := fs.Parse(cfg.Args[1:]); err != nil {
		return shared.UsageError("runners: %v", err)
	}
	args := fs.Args()

	scope, err := selectScope(*repoFlag, *orgFlag, *globalFlag)
	if err != nil {
		return err
	}

	client, err := shared.CreateClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	switch sub {
	case "list":
		runners, err := client.ListRunners(ctx, scope)
		if err != nil {
			return err
		}
		return renderRunners(cfg, runners)
	case "get", "delete":
		if len(args) < 1 {
			return shared.UsageError("использование: runners %s <id> [--repo|--org|--global]", sub)
		}
		id, err := shared.ParseIndex(args[0])
		if err != nil {
			return err
		}
		if sub == "delete" {
			return client.DeleteRunner(ctx, scope, id)
		}
		runner, err := client.GetRunner(ctx, scope, id)
		if err != nil {
			return err
		}
		return renderRunners(cfg, []gitea.Runner{*runner})
	case "token":
		token, err := client.GetRegistrationToken(ctx, scope)
		if err != nil {
			return err
		}
		table := &output.Table{Headers: []string{"TOKEN"}}
		table.AddRow(token.Token)
		return shared.Render(cfg, table)
	default:
		return shared.UsageError("неизвестная подкоманда runners: %q", sub)
	}
}

// selectScope строит Scope из взаимоисключающих флагов.
func selectScope(repoFlag, orgFlag string, global bool) (gitea.Scope, error) {
	set := 0
	if repoFlag != "" {
		set++
	}
	if orgFlag != "" {
		set++
	}
	if global {
		set++
	}
	if set == 0 {
		return gitea.Scope{}, shared.UsageError("укажите область: --repo owner/repo, --org имя или --global")
	}
	if set > 1 {
		return gitea.Scope{}, shared.UsageError("флаги --repo, --org и --global взаимоисключающие")
	}

	switch {
	case repoFlag != "":
		owner, repo, err := shared.SplitRepo(repoFlag)
		if err != nil {
			return gitea.Scope{}, err
		}
		return gitea.RepoScope(owner, repo), nil
	case orgFlag != "":
		return gitea.OrgScope(orgFlag), nil
	default:
		return gitea.GlobalScope(), nil
	}
}

// renderRunners выводит раннеры одной таблицей.
func renderRunners(cfg *config.Config, runners []gitea.Runner) error {
	table := &output.Table{Headers: []string{"ID", "NAME", "STATUS", "BUSY", "LABELS", "VERSION"}}
	for _, r := range runners {
		table.AddRow(
			fmt.Sprintf("%d", r.ID),
			r.Name,
			r.Status,
			fmt.Sprintf("%t", r.Busy),
			shared.Dash(strings.Join(r.Labels, ",")),
			shared.Dash(r.Version),
		)
	}
	return shared.Render(cfg, table)
}
