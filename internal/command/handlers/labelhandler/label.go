// Package labelhandler реализует команду label для управления метками репозитория.
package labelhandler

import (
	"context"
	"fmt"

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

// Handler обрабатывает команду label.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActLabel
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Управление метками репозитория (list, create, ensure, delete)"
}

// Execute выполняет подкоманду label.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	if len(cfg.Args) < 2 {
		return shared.UsageError("использование: label <list|create|ensure|delete> owner/repo ...")
	}
	sub := cfg.Args[0]

	fs := pflag.NewFlagSet("label", pflag.ContinueOnError)
	color := fs.String("color", "00aabb", "цвет метки (hex без #)")
	description := fs.String("description", "", "описание метки")
	if err := fs.Parse(cfg.Args[1:]); err != nil {
		return shared.UsageError("label: %v", err)
	}
	args := fs.Args()
	if len(args) < 1 {
		return shared.UsageError("использование: label %s owner/repo [имя]", sub)
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
		labels, err := client.ListLabels(ctx, owner, repo)
		if err != nil {
			return err
		}
		return renderLabels(cfg, labels)
	case "create", "ensure", "delete":
		if len(args) < 2 {
			return shared.UsageError("использование: label %s owner/repo <имя>", sub)
		}
		name := args[1]
		switch sub {
		case "create":
			label, err := client.CreateLabel(ctx, owner, repo, name, *color, *description)
			if err != nil {
				return err
			}
			return renderLabels(cfg, []gitea.Label{*label})
		case "ensure":
			label, err := client.EnsureLabel(ctx, owner, repo, name, *color, *description)
			if err != nil {
				return err
			}
			return renderLabels(cfg, []gitea.Label{*label})
		default:
			return client.DeleteLabel(ctx, owner, repo, name)
		}
	default:
		return shared.UsageError("неизвестная подкоманда label: %q", sub)
	}
}

// renderLabels выводит метки одной таблицей.
func renderLabels(cfg *config.Config, labels []gitea.Label) error {
	table := &output.Table{Headers: []string{"ID", "NAME", "COLOR", "DESCRIPTION"}}
	for _, l := range labels {
		table.AddRow(fmt.Sprintf("%d", l.ID), l.Name, l.Color, shared.Dash(l.Description))
	}
	return shared.Render(cfg, table)
}
