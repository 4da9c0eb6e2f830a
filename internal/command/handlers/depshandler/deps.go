// Package depshandler реализует команду deps для управления зависимостями задач.
// Зависимость — направленное ребро: задача A заблокирована задачей B.
// Флаг --blocks переключает направление: какие задачи блокирует данная.
package depshandler

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

// Handler обрабатывает команду deps.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActDeps
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Управление зависимостями задач (list, add, rm)"
}

// Execute выполняет подкоманду deps.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	if len(cfg.Args) < 1 {
		return shared.UsageError("использование: deps <list|add|rm> owner/repo N [ссылка] [--blocks]")
	}
	sub := cfg.Args[0]

	fs := pflag.NewFlagSet("deps", pflag.ContinueOnError)
	blocks := fs.Bool("blocks", false, "работать с обратным направлением: задачи, которые блокирует данная")
	if err := fs.Parse(cfg.Args[1:]); err != nil {
		return shared.UsageError("deps: %v", err)
	}
	args := fs.Args()

	if len(args) < 2 {
		return shared.UsageError("использование: deps %s owner/repo N [ссылка]", sub)
	}
	owner, repo, err := shared.SplitRepo(args[0])
	if err != nil {
		return err
	}
	index, err := shared.ParseIndex(args[1])
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
		return listDeps(ctx, cfg, client, owner, repo, index, *blocks)
	case "add", "rm":
		if len(args) < 3 {
			return shared.UsageError("использование: deps %s owner/repo N <ссылка-на-задачу>", sub)
		}
		tOwner, tRepo, tIndex, err := shared.ParseIssueRef(args[2], owner, repo)
		if err != nil {
			return err
		}
		return editEdge(ctx, client, sub, *blocks, owner, repo, index, tOwner, tRepo, tIndex)
	default:
		return shared.UsageError("неизвестная подкоманда deps: %q", sub)
	}
}

// listDeps выводит таблицу зависимостей (или блокируемых задач) задачи.
func listDeps(ctx context.Context, cfg *config.Config, client *gitea.Client,
	owner, repo string, index int64, blocks bool) error {

	var (
		deps []gitea.Dependency
		err  error
	)
	if blocks {
		deps, err = client.ListBlocks(ctx, owner, repo, index)
	} else {
		deps, err = client.ListDependencies(ctx, owner, repo, index)
	}
	if err != nil {
		return err
	}

	table := &output.Table{Headers: []string{"REPOSITORY", "INDEX", "STATE", "TITLE"}}
	for _, d := range deps {
		table.AddRow(d.Repository.FullName, fmt.Sprintf("%d", d.Number), d.State, d.Title)
	}
	return shared.Render(cfg, table)
}

// editEdge добавляет или удаляет ребро зависимости.
// При blocks=false целевая задача — блокер данной,
// при blocks=true данная задача — блокер целевой.
func editEdge(ctx context.Context, client *gitea.Client, sub string, blocks bool,
	owner, repo string, index int64, tOwner, tRepo string, tIndex int64) error {

	switch {
	case sub == "add" && !blocks:
		return client.AddDependency(ctx, owner, repo, index, tOwner, tRepo, tIndex)
	case sub == "add" && blocks:
		return client.AddBlocks(ctx, owner, repo, index, tOwner, tRepo, tIndex)
	case sub == "rm" && !blocks:
		return client.RemoveDependency(ctx, owner, repo, index, tOwner, tRepo, tIndex)
	default:
		return client.RemoveBlocks(ctx, owner, repo, index, tOwner, tRepo, tIndex)
	}
}
