// Package workflowhandler реализует команду workflow для управления
// workflow Gitea Actions в репозитории.
package workflowhandler

import (
	"context"

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

// Handler обрабатывает команду workflow.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActWorkflow
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Управление workflow Actions (list, dispatch, enable, disable)"
}

// Execute выполняет подкоманду workflow.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	if len(cfg.Args) < 2 {
		return shared.UsageError("использование: workflow <list|dispatch|enable|disable> owner/repo ...")
	}
	sub := cfg.Args[0]

	fs := pflag.NewFlagSet("workflow", pflag.ContinueOnError)
	ref := fs.String("ref", "", "git ref для запуска (ветка или тег)")
	inputs := fs.StringToString("input", nil, "входные параметры запуска: имя=значение")
	if err := fs.Parse(cfg.Args[1:]); err != nil {
		return shared.UsageError("workflow: %v", err)
	}
	args := fs.Args()
	if len(args) < 1 {
		return shared.UsageError("использование: workflow %s owner/repo [id]", sub)
	}
	owner, repo, err := shared.SplitRepo(args[0])
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
		workflows, err := client.ListWorkflows(ctx, owner, repo)
		if err != nil {
			return err
		}
		table := &output.Table{Headers: []string{"ID", "NAME", "STATE", "PATH"}}
		for _, w := range workflows {
			table.AddRow(w.ID, w.Name, w.State, w.Path)
		}
		return shared.Render(cfg, table)
	case "dispatch":
		if len(args) < 2 {
			return shared.UsageError("использование: workflow dispatch owner/repo <id> --ref <ветка>")
		}
		return client.DispatchWorkflow(ctx, owner, repo, args[1], *ref, *inputs)
	case "enable", "disable":
		if len(args) < 2 {
			return shared.UsageError("использование: workflow %s owner/repo <id>", sub)
		}
		if sub == "enable" {
			return client.EnableWorkflow(ctx, owner, repo, args[1])
		}
		return client.DisableWorkflow(ctx, owner, repo, args[1])
	default:
		return shared.UsageError("неизвестная подкоманда workflow: %q", sub)
	}
}
