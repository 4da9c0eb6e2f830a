// Package gitea реализует клиент REST API Gitea: сессия с нормализованным
// базовым URL, TLS политикой и кэшами разрешения имён, плюс операции над
// задачами, метками, вехами, зависимостями, раннерами, workflow, пакетами
// и токенами доступа.
package gitea

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/Kargones/teax/internal/constants"
	"github.com/Kargones/teax/internal/pkg/logging"
	"github.com/Kargones/teax/internal/pkg/urlutil"
)

// TLSOptions задаёт транспортную политику сессии.
// Приоритет: CABundlePath (высший) > InsecureSkipVerify (низший).
// Если указаны оба, используется CA bundle, insecure игнорируется.
type TLSOptions struct {
	// CABundlePath — путь к PEM файлу с доверенными CA сертификатами.
	CABundlePath string
	// InsecureSkipVerify отключает проверку сертификата сервера.
	// Всегда сопровождается предупреждением в лог.
	InsecureSkipVerify bool
	// AllowHTTP явно разрешает plaintext http:// URL.
	// Без него http:// отклоняется до любого запроса: токен ушёл бы открытым текстом.
	AllowHTTP bool
}

// Client — сессия работы с одним инстансом Gitea под одним токеном.
// Создаётся через NewClient, освобождается через Close.
// Кэши имя→ID живут не дольше сессии.
type Client struct {
	baseURL     string // нормализованный, всегда оканчивается на /api/v1/
	packagesURL string // соседний /api/packages/
	token       string
	username    string // имя пользователя логина, нужно для basic auth операций

	httpClient *http.Client
	log        logging.Logger

	labelCache     *nameCache
	milestoneCache *nameCache
}

// NewClient создаёт сессию Gitea.
// rawURL нормализуется (NormalizeBaseURL), поэтому принимаются и "голый" URL
// инстанса, и URL с уже добавленным /api или /api/v1 суффиксом.
// Ошибки политики (http без разрешения, неизвестная схема, нечитаемый CA bundle)
// возвращаются до любого сетевого запроса.
func NewClient(rawURL, username, token string, tlsOpts TLSOptions, log logging.Logger) (*Client, error) {
	base := urlutil.NormalizeBaseURL(rawURL)

	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return nil, NewValidationError("url", fmt.Sprintf("некорректный URL инстанса: %s", urlutil.MaskURL(rawURL)))
	}
	switch u.Scheme {
	case "https":
	case "http":
		if !tlsOpts.AllowHTTP {
			return nil, NewValidationError("url",
				"plaintext http:// запрещён: токен ушёл бы открытым текстом; установите "+constants.EnvAllowHTTP+" для явного разрешения")
		}
		log.Warn("Используется plaintext HTTP, токен передаётся открытым текстом", "url", urlutil.MaskURL(base))
	default:
		return nil, NewValidationError("url", fmt.Sprintf("неподдерживаемая схема URL: %s", u.Scheme))
	}

	transport, err := newTransport(tlsOpts, log)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:     base,
		packagesURL: urlutil.PackagesBaseURL(base),
		token:       token,
		username:    username,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   constants.RequestTimeout,
		},
		log:            log,
		labelCache:     newNameCache(),
		milestoneCache: newNameCache(),
	}, nil
}

// newTransport строит транспорт сессии.
// Proxy принудительно nil: переменные окружения HTTP_PROXY/HTTPS_PROXY
// игнорируются, запросы идут напрямую к инстансу.
func newTransport(tlsOpts TLSOptions, log logging.Logger) (*http.Transport, error) {
	transport := &http.Transport{
		Proxy: nil,
	}

	switch {
	case tlsOpts.CABundlePath != "":
		pem, err := os.ReadFile(tlsOpts.CABundlePath)
		if err != nil {
			return nil, NewValidationError("ca_bundle", "не удалось прочитать CA bundle: "+tlsOpts.CABundlePath)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, NewValidationError("ca_bundle", "файл не содержит PEM сертификатов: "+tlsOpts.CABundlePath)
		}
		transport.TLSClientConfig = &tls.Config{RootCAs: pool}
	case tlsOpts.InsecureSkipVerify:
		log.Warn("Проверка TLS сертификатов отключена")
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
	}

	return transport, nil
}

// BaseURL возвращает нормализованный базовый URL API сессии.
func (c *Client) BaseURL() string { return c.baseURL }

// Close завершает сессию: очищает кэши разрешения имён
// и закрывает неиспользуемые соединения.
func (c *Client) Close() error {
	c.labelCache.clear()
	c.milestoneCache.clear()
	c.httpClient.CloseIdleConnections()
	return nil
}

// apiURL строит абсолютный URL для пути относительно /api/v1/.
// path передаётся без ведущего слэша, сегменты уже закодированы вызывающим.
func (c *Client) apiURL(path string) string {
	return c.baseURL + path
}

// packagesURLFor строит абсолютный URL для пути относительно /api/packages/.
func (c *Client) packagesURLFor(path string) string {
	return c.packagesURL + path
}

// send выполняет запрос с токенной авторизацией и возвращает тело и статус.
// body != nil сериализуется в JSON.
func (c *Client) send(ctx context.Context, method, rawURL string, body any) ([]byte, int, error) {
	return c.sendAuth(ctx, method, rawURL, body, "token "+c.token)
}

// sendBasic выполняет запрос с HTTP basic авторизацией (логин + токен/пароль).
// Используется эндпоинтом создания токенов доступа, который токенную
// авторизацию не принимает.
func (c *Client) sendBasic(ctx context.Context, method, rawURL string, body any, username, password string) ([]byte, int, error) {
	cred := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return c.sendAuth(ctx, method, rawURL, body, "Basic "+cred)
}

func (c *Client) sendAuth(ctx context.Context, method, rawURL string, body any, authorization string) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, NewGiteaError(ErrGiteaValidation, "не удалось сериализовать тело запроса", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, NewGiteaError(ErrGiteaConnect, "не удалось создать запрос", err)
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("Запрос к Gitea API", "method", method, "url", urlutil.MaskURL(rawURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, NewGiteaError(ErrGiteaConnect, "не удалось прочитать тело ответа", err)
	}

	return data, resp.StatusCode, nil
}

// classifyTransportError различает таймаут и ошибку подключения.
func classifyTransportError(err error) *GiteaError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewGiteaError(ErrGiteaTimeout, "превышено время ожидания запроса", err)
	}
	return NewGiteaError(ErrGiteaConnect, "ошибка подключения к серверу Gitea", err)
}

// checkStatus отображает не-2xx статус в ошибку GiteaError.
// what — человекочитаемое имя операции для сообщения.
func (c *Client) checkStatus(status int, body []byte, what string) error {
	if status >= 200 && status < 300 {
		return nil
	}
	detail := apiErrorDetail(body)
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewGiteaErrorWithStatus(ErrGiteaAuth,
			fmt.Sprintf("%s: доступ запрещён (HTTP %d)%s", what, status, detail), status, nil)
	case http.StatusNotFound:
		return NewGiteaErrorWithStatus(ErrGiteaNotFound,
			fmt.Sprintf("%s: ресурс не найден (HTTP %d)%s", what, status, detail), status, nil)
	default:
		return NewGiteaErrorWithStatus(ErrGiteaAPI,
			fmt.Sprintf("%s: сервер вернул HTTP %d%s", what, status, detail), status, nil)
	}
}

// apiErrorDetail извлекает поле message из тела ошибки Gitea, если оно есть.
func apiErrorDetail(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return ": " + payload.Message
	}
	return ""
}

// decodeInto разбирает тело 2xx ответа в v.
// Несоответствие формы — отдельный код ErrGiteaDecode, не ErrGiteaAPI.
func decodeInto(body []byte, v any, what string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return NewGiteaError(ErrGiteaDecode,
			fmt.Sprintf("%s: тело ответа не соответствует ожидаемой форме", what), err)
	}
	return nil
}

// decodeList разбирает список, который сервер отдаёт в одной из двух форм:
// голый массив либо объект-обёртка {wrapKey: [...], "total_count": N}.
// Какая форма у какого ресурса, зависит от версии сервера, поэтому
// принимаются обе. wrapKey == "" означает, что ресурс всегда голый массив.
func decodeList[T any](body []byte, wrapKey, what string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, NewGiteaError(ErrGiteaDecode,
				fmt.Sprintf("%s: массив ответа не соответствует ожидаемой форме", what), err)
		}
		return items, nil
	}

	if wrapKey != "" {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapped); err == nil {
			if raw, ok := wrapped[wrapKey]; ok {
				var items []T
				if err := json.Unmarshal(raw, &items); err != nil {
					return nil, NewGiteaError(ErrGiteaDecode,
						fmt.Sprintf("%s: поле %q не соответствует ожидаемой форме", what, wrapKey), err)
				}
				return items, nil
			}
		}
	}

	return nil, NewGiteaError(ErrGiteaDecode,
		fmt.Sprintf("%s: тело ответа не является ни массивом, ни известной обёрткой", what), nil)
}

// listAll выполняет пагинированный GET и накапливает все страницы.
// query — дополнительные параметры поверх page/limit (может быть nil).
// При достижении потолка страниц результат возвращается усечённым
// с нефатальным предупреждением в лог.
func listAll[T any](ctx context.Context, c *Client, rawURL string, query url.Values, wrapKey, what string) ([]T, error) {
	items, truncated, err := fetchAll(func(page, limit int) ([]T, error) {
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", strconv.Itoa(limit))

		body, status, err := c.send(ctx, http.MethodGet, rawURL+"?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}
		if err := c.checkStatus(status, body, what); err != nil {
			return nil, err
		}
		return decodeList[T](body, wrapKey, what)
	}, constants.PageLimit, constants.MaxPages)
	if err != nil {
		return nil, err
	}
	if truncated {
		c.log.Warn("Результат усечён: достигнут потолок страниц пагинации",
			"operation", what,
			"max_pages", constants.MaxPages,
			"collected", len(items))
	}
	return items, nil
}

// repoKey строит ключ кэша для пары владелец/репозиторий.
func repoKey(owner, repo string) string {
	return owner + "/" + repo
}

// repoPath строит префикс пути repos/{owner}/{repo} с кодированием сегментов.
func repoPath(owner, repo string) (string, error) {
	return RepoScope(owner, repo).prefix()
}
