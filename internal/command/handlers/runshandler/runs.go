// Package runshandler реализует команду runs для просмотра запусков
// workflow Actions и их job-ов.
package runshandler

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

// Handler обрабатывает команду runs.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActRuns
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Просмотр запусков Actions (list, get, jobs, delete)"
}

// Execute выполняет подкоманду runs.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	if len(cfg.Args) < 2 {
		return shared.UsageError("использование: runs <list|get|jobs|delete> owner/repo [id]")
	}
	sub := cfg.Args[0]

	fs := pflag.NewFlagSet("runs", pflag.ContinueOnError)
	workflow := fs.String("workflow", "", "фильтр по workflow: имя файла (ci.yml) или полный путь")
	sha := fs.String("sha", "", "фильтр по SHA коммита")
	if err := fs.Parse(cfg.Args[1:]); err != nil {
		return shared.UsageError("runs: %v", err)
	}
	args := fs.Args()
	if len(args) < 1 {
		return shared.UsageError("использование: runs %s owner/repo [id]", sub)
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
		runs, err := client.ListRuns(ctx, owner, repo, gitea.RunFilter{
			Workflow: *workflow,
			SHA:      *sha,
		})
		if err != nil {
			return err
		}
		return renderRuns(cfg, runs)
	case "get", "jobs", "delete":
		if len(args) < 2 {
			return shared.UsageError("использование: runs %s owner/repo <id>", sub)
		}
		id, err := shared.ParseIndex(args[1])
		if err != nil {
			return err
		}
		switch sub {
		case "get":
			run, err := client.GetRun(ctx, owner, repo, id)
			if err != nil {
				return err
			}
			return renderRuns(cfg, []gitea.WorkflowRun{*run})
		case "jobs":
			jobs, err := client.ListJobs(ctx, owner, repo, id)
			if err != nil {
				return err
			}
			return renderJobs(cfg, jobs)
		default:
			return client.DeleteRun(ctx, owner, repo, id)
		}
	default:
		return shared.UsageError("неизвестная подкоманда runs: %q", sub)
	}
}

// renderRuns выводит запуски одной таблицей.
func renderRuns(cfg *config.Config, runs []gitea.WorkflowRun) error {
	table := &output.Table{Headers: []string{"ID", "RUN", "STATUS", "CONCLUSION", "BRANCH", "SHA", "TITLE"}}
	for _, r := range runs {
		sha := r.HeadSHA
		if len(sha) > 10 {
			sha = sha[:10]
		}
		table.AddRow(
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.RunNumber),
			r.Status,
			shared.Dash(r.Conclusion),
			r.HeadBranch,
			sha,
			r.DisplayTitle,
		)
	}
	return shared.Render(cfg, table)
}

// renderJobs выводит job-ы одной таблицей.
func renderJobs(cfg *config.Config, jobs []gitea.Job) error {
	table := &output.Table{Headers: []string{"ID", "NAME", "STATUS", "CONCLUSION", "RUNNER"}}
	for _, j := range jobs {
		table.AddRow(
			fmt.Sprintf("%d", j.ID),
			j.Name,
			j.Status,
			shared.Dash(j.Conclusion),
			shared.Dash(j.RunnerName),
		)
	}
	return shared.Render(cfg, table)
}
