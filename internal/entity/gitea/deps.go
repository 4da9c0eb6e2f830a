package gitea

import (
	"context"
	"net/http"
	"strconv"
)

// dependencyEdge регистрирует или удаляет одно направленное ребро
// "owner/repo#index зависит от target". Запрос идёт на зависимую
// задачу, задача-блокер передаётся в теле; ключи dependent* в теле —
// особенность именования API Gitea, они несут именно цель зависимости.
//
// Это единственный примитив графа зависимостей: операции "depends on"
// и "blocks" — один и тот же вызов с переставленными операндами.
func (c *Client) dependencyEdge(ctx context.Context, method string,
	owner, repo string, index int64,
	targetOwner, targetRepo string, targetIndex int64) error {

	prefix, err := repoPath(owner, repo)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"dependentOwner": targetOwner,
		"dependentRepo":  targetRepo,
		"dependentIndex": targetIndex,
	}

	u := c.apiURL(prefix + "/issues/" + strconv.FormatInt(index, 10) + "/dependencies")
	body, status, err := c.send(ctx, method, u, payload)
	if err != nil {
		return err
	}
	what := "добавление зависимости"
	if method == http.MethodDelete {
		what = "удаление зависимости"
	}
	return c.checkStatus(status, body, what)
}

// AddDependency отмечает, что задача owner/repo#index зависит от
// задачи blockerOwner/blockerRepo#blockerIndex.
func (c *Client) AddDependency(ctx context.Context, owner, repo string, index int64,
	blockerOwner, blockerRepo string, blockerIndex int64) error {
	return c.dependencyEdge(ctx, http.MethodPost,
		owner, repo, index, blockerOwner, blockerRepo, blockerIndex)
}

// RemoveDependency удаляет зависимость задачи owner/repo#index от
// задачи blockerOwner/blockerRepo#blockerIndex.
func (c *Client) RemoveDependency(ctx context.Context, owner, repo string, index int64,
	blockerOwner, blockerRepo string, blockerIndex int64) error {
	return c.dependencyEdge(ctx, http.MethodDelete,
		owner, repo, index, blockerOwner, blockerRepo, blockerIndex)
}

// AddBlocks отмечает, что задача owner/repo#index блокирует задачу
// depOwner/depRepo#depIndex. Тот же примитив, что AddDependency,
// с переставленными операндами.
func (c *Client) AddBlocks(ctx context.Context, owner, repo string, index int64,
	depOwner, depRepo string, depIndex int64) error {
	return c.dependencyEdge(ctx, http.MethodPost,
		depOwner, depRepo, depIndex, owner, repo, index)
}

// RemoveBlocks удаляет отметку, что задача owner/repo#index блокирует
// задачу depOwner/depRepo#depIndex.
func (c *Client) RemoveBlocks(ctx context.Context, owner, repo string, index int64,
	depOwner, depRepo string, depIndex int64) error {
	return c.dependencyEdge(ctx, http.MethodDelete,
		depOwner, depRepo, depIndex, owner, repo, index)
}

// ListDependencies возвращает задачи, от которых зависит owner/repo#index.
// Межрепозиторные зависимости допустимы: каждая запись несёт свой репозиторий.
func (c *Client) ListDependencies(ctx context.Context, owner, repo string, index int64) ([]Dependency, error) {
	return c.listEdges(ctx, owner, repo, index, "dependencies", "получение зависимостей")
}

// ListBlocks возвращает задачи, которые блокирует owner/repo#index.
func (c *Client) ListBlocks(ctx context.Context, owner, repo string, index int64) ([]Dependency, error) {
	return c.listEdges(ctx, owner, repo, index, "blocks", "получение блокируемых задач")
}

func (c *Client) listEdges(ctx context.Context, owner, repo string, index int64, edge, what string) ([]Dependency, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	u := c.apiURL(prefix + "/issues/" + strconv.FormatInt(index, 10) + "/" + edge)
	return listAll[Dependency](ctx, c, u, nil, "", what)
}
