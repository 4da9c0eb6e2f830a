// Package urlutil предоставляет утилиты для безопасной работы с URL.
package urlutil

import (
	"net/url"
	"strings"
)

// MaskURL маскирует URL для безопасного логирования.
// Скрывает path и query параметры, которые могут содержать токены или credentials.
// Пример: "https://gitea.example.com/api/v1/repos?token=x" → "https://gitea.example.com/***"
func MaskURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "***invalid-url***"
	}
	// Показываем только scheme и host
	return u.Scheme + "://" + u.Host + "/***"
}

// NormalizeBaseURL нормализует URL инстанса Gitea в базовый URL API.
// Алгоритм:
//  1. Убрать окружающие пробелы и завершающие слэши.
//  2. Убрать существующий суффикс /api/v1 или /api, если есть.
//  3. Добавить /api/v1/.
//
// Функция идемпотентна: NormalizeBaseURL(NormalizeBaseURL(u)) == NormalizeBaseURL(u),
// и никогда не порождает задвоенный /api/v1/api/v1/ сегмент — независимо от того,
// сколько раз нормализация применена и какой subpath предшествует суффиксу.
//
//	NormalizeBaseURL("https://h/gitea/api/v1") == "https://h/gitea/api/v1/"
//	NormalizeBaseURL("https://h/gitea/")       == "https://h/gitea/api/v1/"
func NormalizeBaseURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, "/")
	if strings.HasSuffix(s, "/api/v1") {
		s = strings.TrimSuffix(s, "/api/v1")
	} else if strings.HasSuffix(s, "/api") {
		s = strings.TrimSuffix(s, "/api")
	}
	s = strings.TrimRight(s, "/")
	return s + "/api/v1/"
}

// PackagesBaseURL строит базовый URL API пакетов из нормализованного базового URL.
// API пакетов живёт на /api/packages/ — соседний путь с /api/v1/,
// НЕ вложенный в него.
func PackagesBaseURL(normalized string) string {
	return strings.TrimSuffix(normalized, "api/v1/") + "api/packages/"
}
