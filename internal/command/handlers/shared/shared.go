// Package shared предоставляет общие утилиты для обработчиков команд:
// создание Gitea клиента из конфигурации, разбор аргументов-ссылок
// (owner/repo, номер задачи) и вывод табличных результатов.
package shared

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Kargones/teax/internal/config"
	"github.com/Kargones/teax/internal/entity/gitea"
	"github.com/Kargones/teax/internal/pkg/apperrors"
	"github.com/Kargones/teax/internal/pkg/output"
)

// CreateClient создаёт Gitea API клиент из конфигурации.
// Клиент использует URL, пользователя и токен выбранного логина tea
// и транспортную политику сессии (CA bundle / insecure / allow-http).
func CreateClient(cfg *config.Config) (*gitea.Client, error) {
	if cfg == nil || cfg.Login == nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"конфигурация не загружена", nil)
	}
	return gitea.NewClient(cfg.Login.URL, cfg.Login.User, cfg.Login.Token, cfg.TLS, cfg.Logger)
}

// UsageError возвращает ошибку неправильного использования команды.
func UsageError(format string, args ...any) error {
	return apperrors.NewAppError(apperrors.ErrCommandUsage,
		fmt.Sprintf(format, args...), nil)
}

// SplitRepo разбирает аргумент вида "owner/repo" на владельца и репозиторий.
// Обе части обязательны и не могут содержать дополнительных слэшей.
func SplitRepo(s string) (string, string, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", UsageError("ожидается аргумент вида owner/repo, получено %q", s)
	}
	return parts[0], parts[1], nil
}

// ParseIndex разбирает номер задачи. Номер должен быть положительным целым.
func ParseIndex(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, UsageError("ожидается положительный номер задачи, получено %q", s)
	}
	return n, nil
}

// ParseIssueRef разбирает ссылку на задачу. Поддерживаемые формы:
//
//	"12"               — задача в репозитории по умолчанию
//	"#12"              — то же самое
//	"owner/repo#12"    — задача в другом репозитории
//
// defOwner/defRepo используются когда репозиторий в ссылке не указан.
func ParseIssueRef(ref, defOwner, defRepo string) (string, string, int64, error) {
	owner, repo := defOwner, defRepo
	num := ref

	if i := strings.Index(ref, "#"); i >= 0 {
		num = ref[i+1:]
		if i > 0 {
			var err error
			owner, repo, err = SplitRepo(ref[:i])
			if err != nil {
				return "", "", 0, err
			}
		}
	}

	index, err := ParseIndex(num)
	if err != nil {
		return "", "", 0, UsageError("ожидается ссылка на задачу вида [owner/repo#]N, получено %q", ref)
	}
	return owner, repo, index, nil
}

// Render выводит таблицу в stdout в формате из конфигурации.
func Render(cfg *config.Config, table *output.Table) error {
	return RenderTo(os.Stdout, cfg, table)
}

// RenderTo выводит таблицу в произвольный writer. Используется в тестах.
func RenderTo(w io.Writer, cfg *config.Config, table *output.Table) error {
	format := output.FormatTable
	if cfg != nil && cfg.Settings != nil {
		format = cfg.Settings.Output
	}
	return output.NewWriter(format).Write(w, table)
}

// Dash возвращает "-" для пустой строки. Пустые ячейки таблицы
// сливаются визуально, плейсхолдер сохраняет выравнивание.
func Dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// LabelNames возвращает имена меток через запятую.
func LabelNames(labels []gitea.Label) string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return strings.Join(names, ",")
}
