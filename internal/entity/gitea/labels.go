package gitea

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// labelFilter — кэш меток не зависит от фильтра состояния.
const labelFilter = ""

// listLabelsRaw загружает все метки репозитория без побочных эффектов для кэша.
func (c *Client) listLabelsRaw(ctx context.Context, owner, repo string) ([]Label, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	return listAll[Label](ctx, c, c.apiURL(prefix+"/labels"), nil, "", "получение меток")
}

// labelEntries строит отображение имя→ID для кэша.
func labelEntries(labels []Label) map[string]int64 {
	entries := make(map[string]int64, len(labels))
	for _, l := range labels {
		entries[l.Name] = l.ID
	}
	return entries
}

// labelRefetch возвращает функцию полного обновления кэша меток репозитория.
func (c *Client) labelRefetch(ctx context.Context, owner, repo string) refetchFunc {
	return func() (map[string]int64, error) {
		labels, err := c.listLabelsRaw(ctx, owner, repo)
		if err != nil {
			return nil, err
		}
		return labelEntries(labels), nil
	}
}

// ListLabels возвращает все метки репозитория.
// Успешный листинг попутно перезаполняет кэш разрешения имён.
func (c *Client) ListLabels(ctx context.Context, owner, repo string) ([]Label, error) {
	labels, err := c.listLabelsRaw(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	entries := labelEntries(labels)
	_ = c.labelCache.refresh(repoKey(owner, repo), labelFilter, func() (map[string]int64, error) {
		return entries, nil
	})
	return labels, nil
}

// CreateLabel создаёт метку репозитория.
// color — hex цвет без ведущего #. Созданная метка сразу добавляется в кэш,
// остальной кэш не инвалидируется.
func (c *Client) CreateLabel(ctx context.Context, owner, repo, name, color, description string) (*Label, error) {
	if name == "" {
		return nil, NewValidationError("name", "имя метки не может быть пустым")
	}
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"name":  name,
		"color": color,
	}
	if description != "" {
		payload["description"] = description
	}

	body, status, err := c.send(ctx, http.MethodPost, c.apiURL(prefix+"/labels"), payload)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "создание метки"); err != nil {
		return nil, err
	}

	var label Label
	if err := decodeInto(body, &label, "создание метки"); err != nil {
		return nil, err
	}

	c.labelCache.add(repoKey(owner, repo), label.Name, label.ID)
	return &label, nil
}

// DeleteLabel удаляет метку по имени.
// Имя разрешается в ID через кэш; из кэша метка удаляется после успеха.
func (c *Client) DeleteLabel(ctx context.Context, owner, repo, name string) error {
	ids, err := c.ResolveLabelIDs(ctx, owner, repo, []string{name})
	if err != nil {
		return err
	}
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return err
	}

	u := c.apiURL(prefix + "/labels/" + strconv.FormatInt(ids[0], 10))
	body, status, err := c.send(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	if err := c.checkStatus(status, body, "удаление метки"); err != nil {
		return err
	}

	c.labelCache.remove(repoKey(owner, repo), name)
	return nil
}

// EnsureLabel гарантирует существование метки: возвращает существующую
// или создаёт новую с заданным цветом и описанием.
func (c *Client) EnsureLabel(ctx context.Context, owner, repo, name, color, description string) (*Label, error) {
	labels, err := c.ListLabels(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	for i := range labels {
		if labels[i].Name == name {
			return &labels[i], nil
		}
	}
	return c.CreateLabel(ctx, owner, repo, name, color, description)
}

// ResolveLabelIDs разрешает имена меток в ID через кэш сессии.
//
// Политика: незаполненный кэш заполняется один раз; промах по заполненному
// кэшу вызывает не более одного полного обновления на весь вызов.
// Имя, отсутствующее и после обновления, — ошибка ErrGiteaNotFound
// с именем метки в сообщении.
func (c *Client) ResolveLabelIDs(ctx context.Context, owner, repo string, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}

	key := repoKey(owner, repo)
	refetch := c.labelRefetch(ctx, owner, repo)

	refreshed := false
	if _, ok := c.labelCache.populated(key); !ok {
		if err := c.labelCache.refresh(key, labelFilter, refetch); err != nil {
			return nil, err
		}
		refreshed = true
	}

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, ok := c.labelCache.lookup(key, name)
		if !ok && !refreshed {
			if err := c.labelCache.refresh(key, labelFilter, refetch); err != nil {
				return nil, err
			}
			refreshed = true
			id, ok = c.labelCache.lookup(key, name)
		}
		if !ok {
			return nil, NewGiteaError(ErrGiteaNotFound,
				fmt.Sprintf("метка %q не найдена в репозитории %s/%s", name, owner, repo), nil)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
