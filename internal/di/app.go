// Package di содержит провайдеры зависимостей приложения и их связывание
// через Wire DI.
package di

import (
	"context"

	"github.com/Kargones/teax/internal/config"
	"github.com/Kargones/teax/internal/pkg/logging"
	"github.com/Kargones/teax/internal/pkg/metrics"
	"github.com/Kargones/teax/internal/pkg/output"
)

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// Все поля инициализируются через провайдеры в providers.go.
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config содержит конфигурацию приложения.
	// Передаётся извне через InitializeApp().
	Config *config.Config

	// Logger предоставляет структурированное логирование.
	// Создаётся через ProvideLogger на основе настроек TEAX_LOG_*.
	Logger logging.Logger

	// OutputWriter форматирует табличные результаты команд.
	// Создаётся через ProvideOutputWriter на основе TEAX_OUTPUT.
	OutputWriter output.Writer

	// TraceID содержит уникальный идентификатор для корреляции логов.
	// Генерируется через ProvideTraceID.
	TraceID string

	// MetricsCollector собирает и отправляет метрики в Prometheus Pushgateway.
	// Создаётся через ProvideMetricsCollector на основе настроек TEAX_METRICS_*.
	// Если метрики отключены — используется NopCollector.
	MetricsCollector metrics.Collector

	// TracerShutdown завершает OTel TracerProvider и отправляет буферизированные span-ы.
	// Создаётся через ProvideTracerProvider на основе настроек TEAX_TRACING_*.
	// Если трейсинг отключён — nop function (нулевой overhead).
	TracerShutdown func(context.Context) error
}
