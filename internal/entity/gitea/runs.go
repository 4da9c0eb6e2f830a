package gitea

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// RunFilter задаёт клиентскую фильтрацию списка запусков.
// Пустое поле означает отсутствие фильтра.
type RunFilter struct {
	// Workflow — путь или имя файла workflow (например "ci.yml" для
	// запусков с path ".gitea/workflows/ci.yml"). Сервер иногда
	// дописывает к path запуска суффикс "@<ref>", поэтому сравнение
	// идёт по path без суффикса и по имени файла.
	Workflow string
	// SHA — полный hash коммита запуска.
	SHA string
}

// matchesWorkflow сравнивает path запуска с искомым workflow:
// сначала отрезается суффикс "@<ref>", затем сравнивается полный путь
// и имя файла (последняя компонента пути).
func matchesWorkflow(runPath, want string) bool {
	if runPath == want {
		return true
	}
	if at := strings.Index(runPath, "@"); at >= 0 {
		runPath = runPath[:at]
	}
	if runPath == want {
		return true
	}
	if slash := strings.LastIndex(runPath, "/"); slash >= 0 {
		return runPath[slash+1:] == want
	}
	return false
}

// ListRuns возвращает запуски workflow репозитория, применяя фильтр
// на стороне клиента после полной выборки.
func (c *Client) ListRuns(ctx context.Context, owner, repo string, filter RunFilter) ([]WorkflowRun, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	u := c.apiURL(prefix + "/actions/runs")
	runs, err := listAll[WorkflowRun](ctx, c, u, nil, "workflow_runs", "получение запусков")
	if err != nil {
		return nil, err
	}

	if filter.Workflow == "" && filter.SHA == "" {
		return runs, nil
	}
	filtered := make([]WorkflowRun, 0, len(runs))
	for _, run := range runs {
		if filter.Workflow != "" && !matchesWorkflow(run.Path, filter.Workflow) {
			continue
		}
		if filter.SHA != "" && run.HeadSHA != filter.SHA {
			continue
		}
		filtered = append(filtered, run)
	}
	return filtered, nil
}

// GetRun возвращает запуск workflow по ID.
func (c *Client) GetRun(ctx context.Context, owner, repo string, runID int64) (*WorkflowRun, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	u := c.apiURL(prefix + "/actions/runs/" + strconv.FormatInt(runID, 10))
	body, status, err := c.send(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "получение запуска"); err != nil {
		return nil, err
	}
	var run WorkflowRun
	if err := decodeInto(body, &run, "получение запуска"); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListJobs возвращает job заданного запуска.
func (c *Client) ListJobs(ctx context.Context, owner, repo string, runID int64) ([]Job, error) {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return nil, err
	}
	u := c.apiURL(prefix + "/actions/runs/" + strconv.FormatInt(runID, 10) + "/jobs")
	return listAll[Job](ctx, c, u, nil, "jobs", "получение job запуска")
}

// DeleteRun удаляет запуск workflow по ID.
// Удаляются только завершённые запуски; активный запуск сервер отклонит.
func (c *Client) DeleteRun(ctx context.Context, owner, repo string, runID int64) error {
	prefix, err := repoPath(owner, repo)
	if err != nil {
		return err
	}
	u := c.apiURL(prefix + "/actions/runs/" + strconv.FormatInt(runID, 10))
	body, status, err := c.send(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	return c.checkStatus(status, body, "удаление запуска")
}
