// Package metrics предоставляет интерфейсы и реализации для сбора и отправки
// метрик выполнения команд в Prometheus Pushgateway.
//
// При отключённых метриках используется NopCollector: команды работают
// одинаково независимо от наличия Pushgateway.
package metrics

import (
	"context"
	"time"
)

// Collector определяет интерфейс для сбора метрик.
// Реализации: PrometheusCollector (активный) и NopCollector (no-op).
type Collector interface {
	// RecordCommandEnd записывает завершение команды с результатом.
	// repo — репозиторий в форме owner/repo, пустая строка для глобальных команд.
	RecordCommandEnd(command, repo string, duration time.Duration, success bool)

	// Push отправляет метрики в Pushgateway.
	// Всегда возвращает nil: ошибки отправки логируются внутри реализации,
	// недоступный Pushgateway не должен ронять команду.
	Push(ctx context.Context) error
}
