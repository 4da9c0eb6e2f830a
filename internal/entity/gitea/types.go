package gitea

// User представляет пользователя Gitea.
type User struct {
	ID       int64  `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
}

// Label представляет метку репозитория.
// Для разрешения имени в ID метка уникальна по имени в рамках репозитория,
// для мутаций используется ID.
type Label struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"` // hex без ведущего #
	Description string `json:"description"`
}

// Milestone представляет веху репозитория.
// Сервер НЕ гарантирует уникальность title в рамках репозитория,
// поэтому разрешение по title — best-effort (первое совпадение).
type Milestone struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	State       string `json:"state"` // "open" или "closed"
	Description string `json:"description"`
	DueOn       string `json:"due_on"`
}

// Issue представляет задачу в Gitea.
type Issue struct {
	ID        int64      `json:"id"`
	Number    int64      `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	State     string     `json:"state"` // "open" или "closed"
	Labels    []Label    `json:"labels"`
	Assignees []User     `json:"assignees"`
	Milestone *Milestone `json:"milestone"`
	User      User       `json:"user"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

// Repository представляет ссылку на репозиторий в ответах API.
type Repository struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// Dependency представляет задачу на другом конце ребра зависимости.
// Ребро направленное: (задача A) depends-on (задача B).
// Межрепозиторные зависимости допустимы, поэтому ответ несёт репозиторий.
type Dependency struct {
	ID         int64      `json:"id"`
	Number     int64      `json:"number"`
	Title      string     `json:"title"`
	State      string     `json:"state"`
	Repository Repository `json:"repository"`
}

// Comment представляет комментарий к задаче.
type Comment struct {
	ID        int64  `json:"id"`
	Body      string `json:"body"`
	User      User   `json:"user"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Runner представляет раннер Gitea Actions.
type Runner struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Status  string   `json:"status"` // online, offline, idle, active
	Busy    bool     `json:"busy"`
	Labels  []string `json:"labels"`
	Version string   `json:"version"`
}

// RegistrationToken представляет токен регистрации раннера.
type RegistrationToken struct {
	Token string `json:"token"`
}

// Workflow представляет workflow Gitea Actions.
// ID — строковый (обычно имя файла workflow).
type Workflow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	State     string `json:"state"` // active, disabled_manually, ...
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// WorkflowRun представляет запуск workflow.
// Path может содержать суффикс "@<ref>" (сервер иногда дописывает ref к пути).
type WorkflowRun struct {
	ID           int64  `json:"id"`
	RunNumber    int64  `json:"run_number"`
	Status       string `json:"status"`     // queued, in_progress, completed, waiting
	Conclusion   string `json:"conclusion"` // success, failure, cancelled, skipped
	HeadSHA      string `json:"head_sha"`
	HeadBranch   string `json:"head_branch"`
	Event        string `json:"event"`
	DisplayTitle string `json:"display_title"`
	Path         string `json:"path"`
	StartedAt    string `json:"started_at"`
	CompletedAt  string `json:"completed_at"`
	HTMLURL      string `json:"html_url"`
}

// Job представляет job внутри запуска workflow.
type Job struct {
	ID          int64    `json:"id"`
	RunID       int64    `json:"run_id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Conclusion  string   `json:"conclusion"`
	StartedAt   string   `json:"started_at"`
	CompletedAt string   `json:"completed_at"`
	HeadSHA     string   `json:"head_sha"`
	HeadBranch  string   `json:"head_branch"`
	RunnerID    int64    `json:"runner_id"`
	RunnerName  string   `json:"runner_name"`
	Labels      []string `json:"labels"`
}

// Package представляет пакет в реестре пакетов Gitea.
type Package struct {
	ID        int64  `json:"id"`
	Owner     User   `json:"owner"`
	Name      string `json:"name"`
	Type      string `json:"type"` // pypi, container, generic, npm, ...
	Version   string `json:"version"`
	CreatedAt string `json:"created_at"`
	HTMLURL   string `json:"html_url"`
}

// PackageFile представляет файл внутри версии пакета.
type PackageFile struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	MD5    string `json:"md5"`
	SHA256 string `json:"sha256"`
}

// PackageVersion представляет детали версии пакета.
type PackageVersion struct {
	ID        int64         `json:"id"`
	Version   string        `json:"version"`
	CreatedAt string        `json:"created_at"`
	HTMLURL   string        `json:"html_url"`
	Files     []PackageFile `json:"files"`
}

// AccessToken представляет токен доступа пользователя.
// SHA1 (само значение токена) сервер возвращает только при создании.
type AccessToken struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	SHA1           string   `json:"sha1"`
	TokenLastEight string   `json:"token_last_eight"`
	Scopes         []string `json:"scopes"`
}
