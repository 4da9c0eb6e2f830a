package gitea

import (
	"context"
	"net/http"
)

// ListWorkflows возвращает workflow репозитория.
// Workflow существуют только на уровне репозитория.
func (c *Client) ListWorkflows(ctx context.Context, owner, repo string) ([]Workflow, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	u := c.apiURL(prefix + "/actions/workflows")
	return listAll[Workflow](ctx, c, u, nil, "workflows", "получение workflow")
}

// DispatchWorkflow запускает workflow вручную на заданном ref.
// workflowID — имя файла workflow (например "ci.yml").
// inputs — входные параметры workflow_dispatch; может быть nil.
func (c *Client) DispatchWorkflow(ctx context.Context, owner, repo, workflowID, ref string, inputs map[string]string) error {
	if workflowID == "" {
		return NewValidationError("workflow", "идентификатор workflow не может быть пустым")
	}
	if ref == "" {
		return NewValidationError("ref", "ref запуска не может быть пустым")
	}
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return err
	}
	id, err := EncodeSegment(workflowID)
	if err != nil {
		return err
	}

	payload := map[string]any{"ref": ref}
	if len(inputs) > 0 {
		payload["inputs"] = inputs
	}

	u := c.apiURL(prefix + "/actions/workflows/" + id + "/dispatches")
	body, status, err := c.send(ctx, http.MethodPost, u, payload)
	if err != nil {
		return err
	}
	return c.checkStatus(status, body, "запуск workflow")
}

// EnableWorkflow включает отключённый workflow.
func (c *Client) EnableWorkflow(ctx context.Context, owner, repo, workflowID string) error {
	return c.setWorkflowState(ctx, owner, repo, workflowID, "enable", "включение workflow")
}

// DisableWorkflow отключает workflow: новые запуски не создаются.
func (c *Client) DisableWorkflow(ctx context.Context, owner, repo, workflowID string) error {
	return c.setWorkflowState(ctx, owner, repo, workflowID, "disable", "отключение workflow")
}

func (c *Client) setWorkflowState(ctx context.Context, owner, repo, workflowID, action, what string) error {
	if workflowID == "" {
		return NewValidationError("workflow", "идентификатор workflow не может быть пустым")
	}
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return err
	}
	id, err := EncodeSegment(workflowID)
	if err != nil {
		return err
	}
	u := c.apiURL(prefix + "/actions/workflows/" + id + "/" + action)
	body, status, err := c.send(ctx, http.MethodPut, u, nil)
	if err != nil {
		return err
	}
	return c.checkStatus(status, body, what)
}
