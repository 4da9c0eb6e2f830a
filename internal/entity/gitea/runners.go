package gitea

import (
	"context"
	"net/http"
	"strconv"
)

// ListRunners возвращает раннеры Actions на заданном уровне:
// репозиторий, организация или глобальный (admin).
func (c *Client) ListRunners(ctx context.Context, scope Scope) ([]Runner, error) {
	prefix, err := scope.prefix()
	if err != nil {
		return nil, err
	}
	u := c.apiURL(prefix + "/actions/runners")
	return listAll[Runner](ctx, c, u, nil, "runners", "получение раннеров")
}

// GetRunner возвращает раннер по ID на заданном уровне.
func (c *Client) GetRunner(ctx context.Context, scope Scope, id int64) (*Runner, error) {
	prefix, err := scope.prefix()
	if err != nil {
		return nil, err
	}
	u := c.apiURL(prefix + "/actions/runners/" + strconv.FormatInt(id, 10))
	body, status, err := c.send(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "получение раннера"); err != nil {
		return nil, err
	}
	var runner Runner
	if err := decodeInto(body, &runner, "получение раннера"); err != nil {
		return nil, err
	}
	return &runner, nil
}

// DeleteRunner удаляет раннер по ID на заданном уровне.
func (c *Client) DeleteRunner(ctx context.Context, scope Scope, id int64) error {
	prefix, err := scope.prefix()
	if err != nil {
		return err
	}
	u := c.apiURL(prefix + "/actions/runners/" + strconv.FormatInt(id, 10))
	body, status, err := c.send(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	return c.checkStatus(status, body, "удаление раннера")
}

// GetRegistrationToken возвращает токен регистрации нового раннера
// на заданном уровне. Токен одноразовый и короткоживущий.
func (c *Client) GetRegistrationToken(ctx context.Context, scope Scope) (*RegistrationToken, error) {
	prefix, err := scope.prefix()
	if err != nil {
		return nil, err
	}
	u := c.apiURL(prefix + "/actions/runners/registration-token")
	body, status, err := c.send(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "получение токена регистрации"); err != nil {
		return nil, err
	}
	var token RegistrationToken
	if err := decodeInto(body, &token, "получение токена регистрации"); err != nil {
		return nil, err
	}
	return &token, nil
}
