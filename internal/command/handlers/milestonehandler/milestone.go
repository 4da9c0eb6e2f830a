// Package milestonehandler реализует команду milestone для управления вехами:
// список, создание, смена состояния и редактирование.
// Веха в аргументах указывается номером или заголовком (ResolveMilestone).
package milestonehandler

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

// Handler обрабатывает команду milestone.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActMilestone
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Управление вехами (list, create, edit, close, reopen)"
}

// Execute выполняет подкоманду milestone.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	if len(cfg.Args) < 2 {
		return shared.UsageError("использование: milestone <list|create|edit|close|reopen> owner/repo ...")
	}
	sub := cfg.Args[0]

	client, err := shared.CreateClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	switch sub {
	case "list":
		return listMilestones(ctx, cfg, client, cfg.Args[1:])
	case "create":
		return createMilestone(ctx, cfg, client, cfg.Args[1:])
	case "edit":
		return editMilestone(ctx, cfg, client, cfg.Args[1:])
	case "close", "reopen":
		return setMilestoneState(ctx, cfg, client, sub, cfg.Args[1:])
	default:
		return shared.UsageError("неизвестная подкоманда milestone: %q", sub)
	}
}

func listMilestones(ctx context.Context, cfg *config.Config, client *gitea.Client, args []string) error {
	fs := pflag.NewFlagSet("milestone list", pflag.ContinueOnError)
	state := fs.String("state", gitea.StateOpen, "фильтр состояния: open, closed, all")
	if err := fs.Parse(args); err != nil {
		return shared.UsageError("milestone list: %v", err)
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return shared.UsageError("использование: milestone list owner/repo [--state ...]")
	}
	owner, repo, err := shared.SplitRepo(rest[0])
	if err != nil {
		return err
	}

	milestones, err := client.ListMilestones(ctx, owner, repo, *state)
	if err != nil {
		return err
	}
	return renderMilestones(cfg, milestones)
}

func createMilestone(ctx context.Context, cfg *config.Config, client *gitea.Client, args []string) error {
	fs := pflag.NewFlagSet("milestone create", pflag.ContinueOnError)
	description := fs.String("description", "", "описание вехи")
	due := fs.String("due", "", "срок в формате RFC 3339")
	if err := fs.Parse(args); err != nil {
		return shared.UsageError("milestone create: %v", err)
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return shared.UsageError("использование: milestone create owner/repo <заголовок>")
	}
	owner, repo, err := shared.SplitRepo(rest[0])
	if err != nil {
		return err
	}

	milestone, err := client.CreateMilestone(ctx, owner, repo, rest[1], *description, *due)
	if err != nil {
		return err
	}
	return renderMilestones(cfg, []gitea.Milestone{*milestone})
}

func editMilestone(ctx context.Context, cfg *config.Config, client *gitea.Client, args []string) error {
	fs := pflag.NewFlagSet("milestone edit", pflag.ContinueOnError)
	title := fs.String("title", "", "новый заголовок")
	description := fs.String("description", "", "новое описание")
	due := fs.String("due", "", "новый срок; пустая строка снимает срок")
	if err := fs.Parse(args); err != nil {
		return shared.UsageError("milestone edit: %v", err)
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return shared.UsageError("использование: milestone edit owner/repo <веха> [--title ...]")
	}
	owner, repo, err := shared.SplitRepo(rest[0])
	if err != nil {
		return err
	}
	id, err := client.ResolveMilestone(ctx, owner, repo, rest[1])
	if err != nil {
		return err
	}

	opts := gitea.MilestoneEditOptions{}
	if fs.Changed("title") {
		opts.Title = title
	}
	if fs.Changed("description") {
		opts.Description = description
	}
	if fs.Changed("due") {
		opts.DueOn = due
	}

	milestone, err := client.EditMilestone(ctx, owner, repo, id, opts)
	if err != nil {
		return err
	}
	return renderMilestones(cfg, []gitea.Milestone{*milestone})
}

func setMilestoneState(ctx context.Context, cfg *config.Config, client *gitea.Client, sub string, args []string) error {
	if len(args) < 2 {
		return shared.UsageError("использование: milestone %s owner/repo <веха>", sub)
	}
	owner, repo, err := shared.SplitRepo(args[0])
	if err != nil {
		return err
	}
	id, err := client.ResolveMilestone(ctx, owner, repo, args[1])
	if err != nil {
		return err
	}

	var milestone *gitea.Milestone
	if sub == "close" {
		milestone, err = client.CloseMilestone(ctx, owner, repo, id)
	} else {
		milestone, err = client.ReopenMilestone(ctx, owner, repo, id)
	}
	if err != nil {
		return err
	}
	return renderMilestones(cfg, []gitea.Milestone{*milestone})
}

// renderMilestones выводит вехи одной таблицей.
func renderMilestones(cfg *config.Config, milestones []gitea.Milestone) error {
	table := &output.Table{Headers: []string{"ID", "TITLE", "STATE", "DUE", "DESCRIPTION"}}
	for _, m := range milestones {
		table.AddRow(
			fmt.Sprintf("%d", m.ID),
			m.Title,
			m.State,
			shared.Dash(m.DueOn),
			shared.Dash(m.Description),
		)
	}
	return shared.Render(cfg, table)
}
