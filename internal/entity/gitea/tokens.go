package gitea

import (
	"context"
	"net/http"
)

// CreateAccessToken создаёт токен доступа для пользователя user; пустой
// user означает пользователя из логина сессии.
//
// Эндпоинт создания токенов не принимает токенную авторизацию,
// поэтому запрос идёт с HTTP basic (имя пользователя + пароль или
// существующий токен в роли пароля).
//
// Значение нового токена (SHA1) сервер возвращает только в этом ответе;
// повторно получить его нельзя.
func (c *Client) CreateAccessToken(ctx context.Context, user, password, name string, scopes []string) (*AccessToken, error) {
	if name == "" {
		return nil, NewValidationError("name", "имя токена не может быть пустым")
	}
	if user == "" {
		user = c.username
	}
	if user == "" {
		return nil, NewValidationError("user", "для создания токена нужно имя пользователя: флаг --user или логин с user")
	}

	seg, err := EncodeSegment(user)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{"name": name}
	if len(scopes) > 0 {
		payload["scopes"] = scopes
	}

	u := c.apiURL("users/" + seg + "/tokens")
	body, status, err := c.sendBasic(ctx, http.MethodPost, u, payload, user, password)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "создание токена доступа"); err != nil {
		return nil, err
	}

	var token AccessToken
	if err := decodeInto(body, &token, "создание токена доступа"); err != nil {
		return nil, err
	}
	return &token, nil
}
