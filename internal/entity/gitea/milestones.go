package gitea

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Состояния вех и задач.
const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateAll    = "all"
)

// MilestoneEditOptions описывает частичное изменение вехи.
// nil поле не отправляется вовсе.
//
// Для DueOn значения различаются:
//
//	nil          — поле due_on в запрос не попадает, срок не меняется
//	указатель "" — отправляется явный null, срок сбрасывается
//	непустое     — отправляется новое значение срока
type MilestoneEditOptions struct {
	Title       *string
	Description *string
	State       *string
	DueOn       *string
}

// milestoneEntries строит отображение title→ID.
// При дубликатах title выигрывает первое совпадение в порядке сервера.
func milestoneEntries(milestones []Milestone) map[string]int64 {
	entries := make(map[string]int64, len(milestones))
	for _, m := range milestones {
		if _, ok := entries[m.Title]; !ok {
			entries[m.Title] = m.ID
		}
	}
	return entries
}

// listMilestonesRaw загружает вехи репозитория с фильтром состояния
// без побочных эффектов для кэша.
func (c *Client) listMilestonesRaw(ctx context.Context, owner, repo, state string) ([]Milestone, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	if state != "" {
		q.Set("state", state)
	}
	return listAll[Milestone](ctx, c, c.apiURL(prefix+"/milestones"), q, "", "получение вех")
}

// ListMilestones возвращает вехи репозитория.
// state — open, closed или all; пустая строка означает серверное значение
// по умолчанию (open). Успешный листинг перезаполняет кэш разрешения title,
// с записью фильтра, под которым кэш заполнен.
func (c *Client) ListMilestones(ctx context.Context, owner, repo, state string) ([]Milestone, error) {
	milestones, err := c.listMilestonesRaw(ctx, owner, repo, state)
	if err != nil {
		return nil, err
	}
	entries := milestoneEntries(milestones)
	_ = c.milestoneCache.refresh(repoKey(owner, repo), state, func() (map[string]int64, error) {
		return entries, nil
	})
	return milestones, nil
}

// GetMilestone возвращает веху по числовому ID.
func (c *Client) GetMilestone(ctx context.Context, owner, repo string, id int64) (*Milestone, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	u := c.apiURL(prefix + "/milestones/" + strconv.FormatInt(id, 10))
	body, status, err := c.send(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "получение вехи"); err != nil {
		return nil, err
	}
	var m Milestone
	if err := decodeInto(body, &m, "получение вехи"); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMilestone создаёт веху.
// dueOn — срок в формате RFC 3339; пустая строка означает веху без срока.
// Созданная веха сразу добавляется в кэш разрешения title.
func (c *Client) CreateMilestone(ctx context.Context, owner, repo, title, description, dueOn string) (*Milestone, error) {
	if title == "" {
		return nil, NewValidationError("title", "название вехи не может быть пустым")
	}
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{"title": title}
	if description != "" {
		payload["description"] = description
	}
	if dueOn != "" {
		payload["due_on"] = dueOn
	}

	body, status, err := c.send(ctx, http.MethodPost, c.apiURL(prefix+"/milestones"), payload)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "создание вехи"); err != nil {
		return nil, err
	}

	var m Milestone
	if err := decodeInto(body, &m, "создание вехи"); err != nil {
		return nil, err
	}

	c.milestoneCache.add(repoKey(owner, repo), m.Title, m.ID)
	return &m, nil
}

// EditMilestone частично изменяет веху по ID.
// Изменение title перекраивает ключ в кэше разрешения; изменение только
// state или сроков кэш имён не трогает.
func (c *Client) EditMilestone(ctx context.Context, owner, repo string, id int64, opts MilestoneEditOptions) (*Milestone, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}

	var oldTitle string
	if opts.Title != nil {
		cur, err := c.GetMilestone(ctx, owner, repo, id)
		if err != nil {
			return nil, err
		}
		oldTitle = cur.Title
	}

	payload := map[string]any{}
	if opts.Title != nil {
		payload["title"] = *opts.Title
	}
	if opts.Description != nil {
		payload["description"] = *opts.Description
	}
	if opts.State != nil {
		payload["state"] = *opts.State
	}
	if opts.DueOn != nil {
		if *opts.DueOn == "" {
			// Явный null: сервер сбрасывает срок. Отсутствие ключа
			// оставило бы срок без изменений.
			payload["due_on"] = nil
		} else {
			payload["due_on"] = *opts.DueOn
		}
	}
	if len(payload) == 0 {
		return nil, NewValidationError("options", "не указано ни одного изменяемого поля")
	}

	u := c.apiURL(prefix + "/milestones/" + strconv.FormatInt(id, 10))
	body, status, err := c.send(ctx, http.MethodPatch, u, payload)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "изменение вехи"); err != nil {
		return nil, err
	}

	var m Milestone
	if err := decodeInto(body, &m, "изменение вехи"); err != nil {
		return nil, err
	}

	if opts.Title != nil && oldTitle != m.Title {
		c.milestoneCache.rename(repoKey(owner, repo), oldTitle, m.Title, m.ID)
	}
	return &m, nil
}

// CloseMilestone закрывает веху по ID.
func (c *Client) CloseMilestone(ctx context.Context, owner, repo string, id int64) (*Milestone, error) {
	state := StateClosed
	return c.EditMilestone(ctx, owner, repo, id, MilestoneEditOptions{State: &state})
}

// ReopenMilestone переоткрывает веху по ID.
func (c *Client) ReopenMilestone(ctx context.Context, owner, repo string, id int64) (*Milestone, error) {
	state := StateOpen
	return c.EditMilestone(ctx, owner, repo, id, MilestoneEditOptions{State: &state})
}

// ResolveMilestone разрешает ссылку на веху в числовой ID.
//
// Ссылка, целиком состоящая из цифр, трактуется как ID и проверяется
// прямым запросом: несуществующий ID — жёсткая ошибка, а не повод
// искать веху с таким названием.
//
// Иначе ссылка трактуется как title и разрешается через кэш, заполненный
// под фильтром "all": закрытая веха тоже должна разрешаться. Промах по
// заполненному кэшу вызывает не более одного полного обновления.
// Дубликаты title разрешаются в пользу первого совпадения.
func (c *Client) ResolveMilestone(ctx context.Context, owner, repo, ref string) (int64, error) {
	if ref == "" {
		return 0, NewValidationError("milestone", "ссылка на веху не может быть пустой")
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		m, err := c.GetMilestone(ctx, owner, repo, id)
		if err != nil {
			return 0, err
		}
		return m.ID, nil
	}

	key := repoKey(owner, repo)
	refetch := func() (map[string]int64, error) {
		milestones, err := c.listMilestonesRaw(ctx, owner, repo, StateAll)
		if err != nil {
			return nil, err
		}
		return milestoneEntries(milestones), nil
	}

	refreshed := false
	if filter, ok := c.milestoneCache.populated(key); !ok || filter != StateAll {
		if err := c.milestoneCache.refresh(key, StateAll, refetch); err != nil {
			return 0, err
		}
		refreshed = true
	}

	id, ok := c.milestoneCache.lookup(key, ref)
	if !ok && !refreshed {
		if err := c.milestoneCache.refresh(key, StateAll, refetch); err != nil {
			return 0, err
		}
		id, ok = c.milestoneCache.lookup(key, ref)
	}
	if !ok {
		return 0, NewGiteaError(ErrGiteaNotFound,
			fmt.Sprintf("веха %q не найдена в репозитории %s/%s", ref, owner, repo), nil)
	}
	return id, nil
}
