package gitea

import (
	"context"
	"net/http"
	"strconv"
)

// ListComments возвращает комментарии задачи в порядке сервера.
func (c *Client) ListComments(ctx context.Context, owner, repo string, index int64) ([]Comment, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	u := c.apiURL(prefix + "/issues/" + strconv.FormatInt(index, 10) + "/comments")
	return listAll[Comment](ctx, c, u, nil, "", "получение комментариев")
}

// AddComment добавляет комментарий к задаче.
func (c *Client) AddComment(ctx context.Context, owner, repo string, index int64, text string) (*Comment, error) {
	if text == "" {
		return nil, NewValidationError("body", "текст комментария не может быть пустым")
	}
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}

	u := c.apiURL(prefix + "/issues/" + strconv.FormatInt(index, 10) + "/comments")
	body, status, err := c.send(ctx, http.MethodPost, u, map[string]any{"body": text})
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "добавление комментария"); err != nil {
		return nil, err
	}

	var comment Comment
	if err := decodeInto(body, &comment, "добавление комментария"); err != nil {
		return nil, err
	}
	return &comment, nil
}

// EditComment заменяет текст комментария. Комментарии адресуются
// по id в пределах репозитория, без номера задачи.
func (c *Client) EditComment(ctx context.Context, owner, repo string, commentID int64, text string) (*Comment, error) {
	if text == "" {
		return nil, NewValidationError("body", "текст комментария не может быть пустым")
	}
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}

	u := c.apiURL(prefix + "/issues/comments/" + strconv.FormatInt(commentID, 10))
	body, status, err := c.send(ctx, http.MethodPatch, u, map[string]any{"body": text})
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "изменение комментария"); err != nil {
		return nil, err
	}

	var comment Comment
	if err := decodeInto(body, &comment, "изменение комментария"); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment удаляет комментарий по id.
func (c *Client) DeleteComment(ctx context.Context, owner, repo string, commentID int64) error {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return err
	}
	u := c.apiURL(prefix + "/issues/comments/" + strconv.FormatInt(commentID, 10))
	body, status, err := c.send(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	return c.checkStatus(status, body, "удаление комментария")
}
