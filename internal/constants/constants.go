// Package constants содержит все константы, используемые в проекте teax.
// Константы сгруппированы по их функциональному назначению для удобства использования и поддержки.
package constants

import "time"

// Константы сообщений приложения
const (
	// MsgAppExit - сообщение о завершении работы программы
	MsgAppExit = "Завершение работы программы"
	// MsgErrProcessing - сообщение об обработке ошибки
	MsgErrProcessing = "Обработка ошибки"
)

// Константы API Gitea
const (
	// APIVersion - версия REST API Gitea
	APIVersion = "v1"
	// APIBasePath - базовый путь стандартных ресурсов API
	APIBasePath = "/api/v1/"
	// PackagesBasePath - базовый путь ресурсов пакетов.
	// Соседний с /api/v1/, НЕ вложенный в него.
	PackagesBasePath = "/api/packages/"
	// RequestTimeout - таймаут одного HTTP запроса к API
	RequestTimeout = 30 * time.Second
)

// Константы пагинации
const (
	// PageLimit - количество элементов на одной странице.
	// Максимальное значение, поддерживаемое Gitea API.
	PageLimit = 50
	// MaxPages - максимальное количество страниц для запроса.
	// Защита от бесконечного цикла при некорректном поведении сервера.
	MaxPages = 100
)

// Константы команд
const (
	ActDeps      = "deps"
	ActIssue     = "issue"
	ActLabel     = "label"
	ActMilestone = "milestone"
	ActRunners   = "runners"
	ActWorkflow  = "workflow"
	ActRuns      = "runs"
	ActPkg       = "pkg"
	ActToken     = "token"
	ActHelp      = "help"
	ActVersion   = "version"
)

// Переменные окружения
const (
	// EnvLogin - имя логина tea для использования
	EnvLogin = "TEAX_LOGIN"
	// EnvOutput - формат вывода: table, simple, csv
	EnvOutput = "TEAX_OUTPUT"
	// EnvConfigPath - переопределение пути к config.yml tea
	EnvConfigPath = "TEAX_CONFIG_PATH"
	// EnvCABundle - путь к пользовательскому CA bundle (высший приоритет)
	EnvCABundle = "TEAX_CA_BUNDLE"
	// EnvInsecureTLS - отключение проверки сертификатов (низший приоритет, всегда с предупреждением)
	EnvInsecureTLS = "TEAX_INSECURE_TLS"
	// EnvAllowHTTP - явное разрешение plaintext HTTP (токен уходит открытым текстом)
	EnvAllowHTTP = "TEAX_ALLOW_HTTP"
)

// Константы exit codes.
// Контракт CLI: 0 при успехе, 1 при любой перехваченной ошибке.
const (
	ExitOK    = 0
	ExitError = 1
)
