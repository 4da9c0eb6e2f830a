// Package issuehandler реализует команду issue для работы с задачами:
// просмотр, создание, список, редактирование, смена состояния,
// комментарии и метки.
package issuehandler

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

// Handler обрабатывает команду issue.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActIssue
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Работа с задачами (view, create, list, edit, close, reopen, comment, comment-edit, comment-delete, labels)"
}

// Execute выполняет подкоманду issue.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	if len(cfg.Args) < 2 {
		return shared.UsageError("использование: issue <view|create|list|edit|close|reopen|comment|comment-edit|comment-delete|labels> owner/repo ...")
	}
	sub := cfg.Args[0]

	client, err := shared.CreateClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	switch sub {
	case "view":
		return viewIssue(ctx, cfg, client, cfg.Args[1:])
	case "create":
		return createIssue(ctx, cfg, client, cfg.Args[1:])
	case "list":
		return listIssues(ctx, cfg, client, cfg.Args[1:])
	case "edit":
		return editIssue(ctx, cfg, client, cfg.Args[1:])
	case "close", "reopen":
		return setIssueState(ctx, cfg, client, sub, cfg.Args[1:])
	case "comment":
		return commentIssue(ctx, cfg, client, cfg.Args[1:])
	case "comment-edit":
		return editComment(ctx, cfg, client, cfg.Args[1:])
	case "comment-delete":
		return deleteComment(ctx, client, cfg.Args[1:])
	case "labels":
		return issueLabels(ctx, cfg, client, cfg.Args[1:])
	default:
		return shared.UsageError("неизвестная подкоманда issue: %q", sub)
	}
}

// repoAndIndex разбирает обязательную пару аргументов owner/repo N.
func repoAndIndex(args []string, sub string) (string, string, int64, error) {
	if len(args) < 2 {
		return "", "", 0, shared.UsageError("использование: issue %s owner/repo N", sub)
	}
	owner, repo, err := shared.SplitRepo(args[0])
	if err != nil {
		return "", "", 0, err
	}
	index, err := shared.ParseIndex(args[1])
	if err != nil {
		return "", "", 0, err
	}
	return owner, repo, index, nil
}

func viewIssue(ctx context.Context, cfg *config.Config, client *gitea.Client, args []string) error {
	owner, repo, index, err := repoAndIndex(args, "view")
	if err != nil {
		return err
	}
	issue, err := client.GetIssue(ctx, owner, repo, index)
	if err != nil {
		return err
	}

	milestone := ""
	if issue.Milestone != nil {
		milestone = issue.Milestone.Title
	}
	table := &output.Table{Headers: []string{"FIELD", "VALUE"}}
	table.AddRow("index", fmt.Sprintf("%d", issue.Number))
	table.AddRow("title", issue.Title)
	table.AddRow("state", issue.State)
	table.AddRow("author", issue.User.Login)
	table.AddRow("labels", shared.Dash(shared.LabelNames(issue.Labels)))
	table.AddRow("milestone", shared.Dash(milestone))
	table.AddRow("created", issue.CreatedAt)
	table.AddRow("updated", issue.UpdatedAt)
	table.AddRow("body", shared.Dash(issue.Body))
	return shared.Render(cfg, table)
}

func createIssue(ctx context.Context, cfg *config.Config, client *gitea.Client, args []string) error {
	fs := pflag.NewFlagSet("issue create", pflag.ContinueOnError)
	title := fs.String("title", "", "заголовок задачи (обязателен)")
	body := fs.String("body", "", "текст задачи")
	labels := fs.StringSlice("labels", nil, "метки через запятую")
	milestone := fs.String("milestone", "", "веха: номер или заголовок")
	assignees := fs.StringSlice("assignees", nil, "исполнители через запятую")
	if err := fs.Parse(args); err != nil {
		return shared.UsageError("issue create: %v", err)
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return shared.UsageError("использование: issue create owner/repo --title ...")
	}
	owner, repo, err := shared.SplitRepo(rest[0])
	if err != nil {
		return err
	}

	issue, err := client.CreateIssue(ctx, owner, repo, gitea.IssueCreateOptions{
		Title:     *title,
		Body:      *body,
		Labels:    *labels,
		Milestone: *milestone,
		Assignees: *assignees,
	})
	if err != nil {
		return err
	}
	return renderIssueList(cfg, []gitea.Issue{*issue})
}

func listIssues(ctx context.Context, cfg *config.Config, client *gitea.Client, args []string) error {
	fs := pflag.NewFlagSet("issue list", pflag.ContinueOnError)
	state := fs.String("state", gitea.StateOpen, "фильтр состояния: open, closed, all")
	labels := fs.StringSlice("labels", nil, "фильтр по меткам через запятую")
	if err := fs.Parse(args); err != nil {
		return shared.UsageError("issue list: %v", err)
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return shared.UsageError("использование: issue list owner/repo [--state ...]")
	}
	owner, repo, err := shared.SplitRepo(rest[0])
	if err != nil {
		return err
	}

	issues, err := client.ListIssues(ctx, owner, repo, *state, *labels)
	if err != nil {
		return err
	}
	return renderIssueList(cfg, issues)
}

func editIssue(ctx context.Context, cfg *config.Config, client *gitea.Client, args []string) error {
	fs := pflag.NewFlagSet("issue edit", pflag.ContinueOnError)
	title := fs.String("title", "", "новый заголовок")
	body := fs.String("body", "", "новый текст")
	milestone := fs.String("milestone", "", "веха: номер, заголовок или пустая строка для снятия")
	if err := fs.Parse(args); err != nil {
		return shared.UsageError("issue edit: %v", err)
	}
	rest := fs.Args()
	owner, repo, index, err := repoAndIndex(rest, "edit")
	if err != nil {
		return err
	}

	opts := gitea.IssueEditOptions{}
	if fs.Changed("title") {
		opts.Title = title
	}
	if fs.Changed("body") {
		opts.Body = body
	}
	if fs.Changed("milestone") {
		id, err := resolveMilestoneFlag(ctx, client, owner, repo, *milestone)
		if err != nil {
			return err
		}
		opts.Milestone = &id
	}

	issue, err := client.EditIssue(ctx, owner, repo, index, opts)
	if err != nil {
		return err
	}
	return renderIssueList(cfg, []gitea.Issue{*issue})
}

// resolveMilestoneFlag переводит значение флага --milestone в ID.
// Пустая строка — снятие вехи (sentinel 0 → явный null в запросе).
func resolveMilestoneFlag(ctx context.Context, client *gitea.Client, owner, repo, ref string) (int64, error) {
	if ref == "" {
		return 0, nil
	}
	return client.ResolveMilestone(ctx, owner, repo, ref)
}

func setIssueState(ctx context.Context, cfg *config.Config, client *gitea.Client, sub string, args []string) error {
	owner, repo, index, err := repoAndIndex(args, sub)
	if err != nil {
		return err
	}
	var issue *gitea.Issue
	if sub == "close" {
		issue, err = client.CloseIssue(ctx, owner, repo, index)
	} else {
		issue, err = client.ReopenIssue(ctx, owner, repo, index)
	}
	if err != nil {
		return err
	}
	return renderIssueList(cfg, []gitea.Issue{*issue})
}

func commentIssue(ctx context.Context, cfg *config.Config, client *gitea.Client, args []string) error {
	fs := pflag.NewFlagSet("issue comment", pflag.ContinueOnError)
	message := fs.String("message", "", "текст комментария; без флага выводится список комментариев")
	if err := fs.Parse(args); err != nil {
		return shared.UsageError("issue comment: %v", err)
	}
	rest := fs.Args()
	owner, repo, index, err := repoAndIndex(rest, "comment")
	if err != nil {
		return err
	}

	if fs.Changed("message") {
		comment, err := client.AddComment(ctx, owner, repo, index, *message)
		if err != nil {
			return err
		}
		table := &output.Table{Headers: []string{"ID", "AUTHOR", "CREATED"}}
		table.AddRow(fmt.Sprintf("%d", comment.ID), comment.User.Login, comment.CreatedAt)
		return shared.Render(cfg, table)
	}

	comments, err := client.ListComments(ctx, owner, repo, index)
	if err != nil {
		return err
	}
	table := &output.Table{Headers: []string{"ID", "AUTHOR", "CREATED", "BODY"}}
	for _, c := range comments {
		table.AddRow(fmt.Sprintf("%d", c.ID), c.User.Login, c.CreatedAt, c.Body)
	}
	return shared.Render(cfg, table)
}

// editComment заменяет текст существующего комментария.
// Комментарий адресуется по id, который показывает issue comment.
func editComment(ctx context.Context, cfg *config.Config, client *gitea.Client, args []string) error {
	fs := pflag.NewFlagSet("issue comment-edit", pflag.ContinueOnError)
	message := fs.String("message", "", "новый текст комментария (обязателен)")
	if err := fs.Parse(args); err != nil {
		return shared.UsageError("issue comment-edit: %v", err)
	}
	rest := fs.Args()
	owner, repo, commentID, err := repoAndIndex(rest, "comment-edit")
	if err != nil {
		return err
	}
	if !fs.Changed("message") {
		return shared.UsageError("использование: issue comment-edit owner/repo ID --message ...")
	}

	comment, err := client.EditComment(ctx, owner, repo, commentID, *message)
	if err != nil {
		return err
	}
	table := &output.Table{Headers: []string{"ID", "AUTHOR", "UPDATED"}}
	table.AddRow(fmt.Sprintf("%d", comment.ID), comment.User.Login, comment.UpdatedAt)
	return shared.Render(cfg, table)
}

// deleteComment удаляет комментарий по id.
func deleteComment(ctx context.Context, client *gitea.Client, args []string) error {
	owner, repo, commentID, err := repoAndIndex(args, "comment-delete")
	if err != nil {
		return err
	}
	return client.DeleteComment(ctx, owner, repo, commentID)
}

// issueLabels управляет метками задачи: --add и --rm принимают имена меток,
// без флагов выводится текущий список.
func issueLabels(ctx context.Context, cfg *config.Config, client *gitea.Client, args []string) error {
	fs := pflag.NewFlagSet("issue labels", pflag.ContinueOnError)
	add := fs.StringSlice("add", nil, "добавить метки")
	remove := fs.StringSlice("rm", nil, "снять метки")
	if err := fs.Parse(args); err != nil {
		return shared.UsageError("issue labels: %v", err)
	}
	rest := fs.Args()
	owner, repo, index, err := repoAndIndex(rest, "labels")
	if err != nil {
		return err
	}

	if len(*add) > 0 {
		ids, err := client.ResolveLabelIDs(ctx, owner, repo, *add)
		if err != nil {
			return err
		}
		if err := client.AddIssueLabels(ctx, owner, repo, index, ids); err != nil {
			return err
		}
	}
	for _, name := range *remove {
		ids, err := client.ResolveLabelIDs(ctx, owner, repo, []string{name})
		if err != nil {
			return err
		}
		if err := client.RemoveIssueLabel(ctx, owner, repo, index, ids[0]); err != nil {
			return err
		}
	}

	issue, err := client.GetIssue(ctx, owner, repo, index)
	if err != nil {
		return err
	}
	table := &output.Table{Headers: []string{"NAME", "COLOR", "DESCRIPTION"}}
	for _, l := range issue.Labels {
		table.AddRow(l.Name, "#"+strings.TrimPrefix(l.Color, "#"), shared.Dash(l.Description))
	}
	return shared.Render(cfg, table)
}

// renderIssueList выводит задачи одной таблицей.
func renderIssueList(cfg *config.Config, issues []gitea.Issue) error {
	table := &output.Table{Headers: []string{"INDEX", "STATE", "TITLE", "LABELS", "MILESTONE"}}
	for _, i := range issues {
		milestone := ""
		if i.Milestone != nil {
			milestone = i.Milestone.Title
		}
		table.AddRow(
			fmt.Sprintf("%d", i.Number),
			i.State,
			i.Title,
			shared.Dash(shared.LabelNames(i.Labels)),
			shared.Dash(milestone),
		)
	}
	return shared.Render(cfg, table)
}
