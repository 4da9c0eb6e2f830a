package gitea

import "fmt"

// scopeKind — тег варианта Scope.
type scopeKind int

const (
	scopeInvalid scopeKind = iota
	scopeRepo
	scopeOrg
	scopeGlobal
)

// Scope — уровень авторизации вызова Actions/runner/package эндпоинтов.
// Tagged variant: репозиторий, организация или глобальный (admin).
// Ровно один уровень на вызов; конструируется один раз и валидируется
// до построения пути.
type Scope struct {
	kind  scopeKind
	owner string
	repo  string
	org   string
}

// RepoScope создаёт Scope уровня репозитория.
func RepoScope(owner, repo string) Scope {
	return Scope{kind: scopeRepo, owner: owner, repo: repo}
}

// OrgScope создаёт Scope уровня организации.
func OrgScope(org string) Scope {
	return Scope{kind: scopeOrg, org: org}
}

// GlobalScope создаёт глобальный (admin) Scope.
func GlobalScope() Scope {
	return Scope{kind: scopeGlobal}
}

// IsRepo сообщает, является ли Scope уровнем репозитория.
func (s Scope) IsRepo() bool { return s.kind == scopeRepo }

// String возвращает человекочитаемое описание Scope для логов и ошибок.
func (s Scope) String() string {
	switch s.kind {
	case scopeRepo:
		return fmt.Sprintf("repo %s/%s", s.owner, s.repo)
	case scopeOrg:
		return fmt.Sprintf("org %s", s.org)
	case scopeGlobal:
		return "global"
	default:
		return "invalid"
	}
}

// prefix строит префикс пути API для данного Scope.
// Сегменты owner/repo/org кодируются через EncodeSegment.
// Невалидный (нулевой) Scope — ошибка валидации до любого запроса.
func (s Scope) prefix() (string, error) {
	switch s.kind {
	case scopeRepo:
		o, err := EncodeSegment(s.owner)
		if err != nil {
			return "", err
		}
		r, err := EncodeSegment(s.repo)
		if err != nil {
			return "", err
		}
		return "repos/" + o + "/" + r, nil
	case scopeOrg:
		org, err := EncodeSegment(s.org)
		if err != nil {
			return "", err
		}
		return "orgs/" + org, nil
	case scopeGlobal:
		return "admin", nil
	default:
		return "", NewValidationError("scope", "должен быть указан ровно один из уровней: repo, org, global")
	}
}
