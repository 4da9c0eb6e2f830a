package gitea

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// IssueCreateOptions описывает создаваемую задачу.
// Пустые необязательные поля в тело запроса не попадают:
// задача с одним Title уходит как {"title": "..."} без лишних ключей.
type IssueCreateOptions struct {
	Title     string
	Body      string
	Labels    []string // имена меток, разрешаются в ID через кэш
	Milestone string   // ссылка на веху: числовой ID или title
	Assignees []string
}

// IssueEditOptions описывает частичное изменение задачи.
// nil поле не отправляется вовсе.
// Milestone со значением 0 отправляет явный null: задача снимается с вехи.
type IssueEditOptions struct {
	Title     *string
	Body      *string
	State     *string
	Milestone *int64
}

// GetIssue возвращает задачу по номеру.
func (c *Client) GetIssue(ctx context.Context, owner, repo string, index int64) (*Issue, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	u := c.apiURL(prefix + "/issues/" + strconv.FormatInt(index, 10))
	body, status, err := c.send(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "получение задачи"); err != nil {
		return nil, err
	}
	var issue Issue
	if err := decodeInto(body, &issue, "получение задачи"); err != nil {
		return nil, err
	}
	return &issue, nil
}

// ListIssues возвращает задачи репозитория.
// state — open, closed или all; labels — фильтр по именам меток.
func (c *Client) ListIssues(ctx context.Context, owner, repo, state string, labels []string) ([]Issue, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("type", "issues")
	if state != "" {
		q.Set("state", state)
	}
	if len(labels) > 0 {
		q.Set("labels", strings.Join(labels, ","))
	}
	return listAll[Issue](ctx, c, c.apiURL(prefix+"/issues"), q, "", "получение задач")
}

// CreateIssue создаёт задачу.
// Метки и веха разрешаются из имён до запроса; ошибка разрешения
// означает, что запрос создания не отправлялся.
func (c *Client) CreateIssue(ctx context.Context, owner, repo string, opts IssueCreateOptions) (*Issue, error) {
	if opts.Title == "" {
		return nil, NewValidationError("title", "заголовок задачи не может быть пустым")
	}
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{"title": opts.Title}
	if opts.Body != "" {
		payload["body"] = opts.Body
	}
	if len(opts.Labels) > 0 {
		ids, err := c.ResolveLabelIDs(ctx, owner, repo, opts.Labels)
		if err != nil {
			return nil, err
		}
		payload["labels"] = ids
	}
	if opts.Milestone != "" {
		id, err := c.ResolveMilestone(ctx, owner, repo, opts.Milestone)
		if err != nil {
			return nil, err
		}
		payload["milestone"] = id
	}
	if len(opts.Assignees) > 0 {
		payload["assignees"] = opts.Assignees
	}

	body, status, err := c.send(ctx, http.MethodPost, c.apiURL(prefix+"/issues"), payload)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "создание задачи"); err != nil {
		return nil, err
	}

	var issue Issue
	if err := decodeInto(body, &issue, "создание задачи"); err != nil {
		return nil, err
	}
	return &issue, nil
}

// EditIssue частично изменяет задачу по номеру.
func (c *Client) EditIssue(ctx context.Context, owner, repo string, index int64, opts IssueEditOptions) (*Issue, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{}
	if opts.Title != nil {
		payload["title"] = *opts.Title
	}
	if opts.Body != nil {
		payload["body"] = *opts.Body
	}
	if opts.State != nil {
		payload["state"] = *opts.State
	}
	if opts.Milestone != nil {
		if *opts.Milestone == 0 {
			// Явный null снимает задачу с вехи. Отсутствие ключа
			// оставило бы веху без изменений.
			payload["milestone"] = nil
		} else {
			payload["milestone"] = *opts.Milestone
		}
	}
	if len(payload) == 0 {
		return nil, NewValidationError("options", "не указано ни одного изменяемого поля")
	}

	u := c.apiURL(prefix + "/issues/" + strconv.FormatInt(index, 10))
	body, status, err := c.send(ctx, http.MethodPatch, u, payload)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "изменение задачи"); err != nil {
		return nil, err
	}

	var issue Issue
	if err := decodeInto(body, &issue, "изменение задачи"); err != nil {
		return nil, err
	}
	return &issue, nil
}

// CloseIssue закрывает задачу по номеру.
func (c *Client) CloseIssue(ctx context.Context, owner, repo string, index int64) (*Issue, error) {
	state := StateClosed
	return c.EditIssue(ctx, owner, repo, index, IssueEditOptions{State: &state})
}

// ReopenIssue переоткрывает задачу по номеру.
func (c *Client) ReopenIssue(ctx context.Context, owner, repo string, index int64) (*Issue, error) {
	state := StateOpen
	return c.EditIssue(ctx, owner, repo, index, IssueEditOptions{State: &state})
}

// AddIssueLabels добавляет метки к задаче по их ID.
// Разрешение имён в ID выполняет вызывающий код (ResolveLabelIDs).
func (c *Client) AddIssueLabels(ctx context.Context, owner, repo string, index int64, labelIDs []int64) error {
	if len(labelIDs) == 0 {
		return NewValidationError("labels", "не указано ни одной метки")
	}
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return err
	}

	u := c.apiURL(prefix + "/issues/" + strconv.FormatInt(index, 10) + "/labels")
	payload := map[string]any{"labels": labelIDs}
	body, status, err := c.send(ctx, http.MethodPost, u, payload)
	if err != nil {
		return err
	}
	return c.checkStatus(status, body, "добавление меток к задаче")
}

// RemoveIssueLabel снимает метку с задачи по ID метки.
func (c *Client) RemoveIssueLabel(ctx context.Context, owner, repo string, index int64, labelID int64) error {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return err
	}

	u := c.apiURL(prefix + "/issues/" + strconv.FormatInt(index, 10) +
		"/labels/" + strconv.FormatInt(labelID, 10))
	body, status, err := c.send(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	return c.checkStatus(status, body, "снятие метки с задачи")
}
