package di

import (
	"context"

	"github.com/Kargones/teax/internal/config"
	"github.com/Kargones/teax/internal/constants"
	"github.com/Kargones/teax/internal/pkg/logging"
	"github.com/Kargones/teax/internal/pkg/metrics"
	"github.com/Kargones/teax/internal/pkg/output"
	"github.com/Kargones/teax/internal/pkg/tracing"
)

// ProvideLogger создаёт Logger на основе настроек TEAX_LOG_* из Config.
//
// Если поля пусты, используются значения по умолчанию:
//   - Level: "info"
//   - Format: "text"
//   - Output: "stderr"
//
// Логи идут ТОЛЬКО в stderr или файл; stdout зарезервирован
// за выводом команд.
func ProvideLogger(cfg *config.Config) logging.Logger {
	logCfg := logging.DefaultConfig()

	if cfg != nil && cfg.Settings != nil {
		s := cfg.Settings.Logging
		if s.Level != "" {
			logCfg.Level = s.Level
		}
		if s.Format != "" {
			logCfg.Format = s.Format
		}
		if s.Output != "" {
			logCfg.Output = s.Output
		}
		if s.FilePath != "" {
			logCfg.FilePath = s.FilePath
		}
	}

	return logging.NewLogger(logCfg)
}

// ProvideOutputWriter создаёт OutputWriter на основе формата из Config.
// Неизвестный формат даёт TableWriter (default).
func ProvideOutputWriter(cfg *config.Config) output.Writer {
	format := output.FormatTable
	if cfg != nil && cfg.Settings != nil {
		format = cfg.Settings.Output
	}
	return output.NewWriter(format)
}

// ProvideTraceID генерирует уникальный trace_id для корреляции логов.
// Формат: 32-символьный hex string (16 байт).
//
// TraceID генерируется один раз при инициализации App
// и используется для корреляции всех логов в рамках одного запуска команды.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector на основе настроек TEAX_METRICS_*.
// Если метрики отключены, возвращает NopCollector.
// При ошибке создания Collector возвращает NopCollector и логирует ошибку.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil || cfg.Settings == nil {
		return metrics.NewNopCollector()
	}

	metricsCfg := metrics.DefaultConfig()
	metricsCfg.Enabled = cfg.Settings.Metrics.Enabled
	metricsCfg.PushgatewayURL = cfg.Settings.Metrics.URL
	if cfg.Settings.Metrics.JobName != "" {
		metricsCfg.JobName = cfg.Settings.Metrics.JobName
	}

	collector, err := metrics.NewCollector(metricsCfg, logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			"error", err.Error())
		return metrics.NewNopCollector()
	}

	return collector
}

// ProvideTracerProvider создаёт и инициализирует OTel TracerProvider.
// Возвращает shutdown function для graceful завершения.
// Если трейсинг отключён, возвращает nop shutdown.
// При ошибке создания TracerProvider возвращает nop shutdown и логирует ошибку.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil || cfg.Settings == nil {
		return tracing.NewNopTracerProvider()
	}

	tracingCfg := tracing.DefaultConfig()
	tracingCfg.Enabled = cfg.Settings.Tracing.Enabled
	tracingCfg.Endpoint = cfg.Settings.Tracing.Endpoint
	tracingCfg.Version = constants.Version
	tracingCfg.SamplingRate = cfg.Settings.Tracing.SampleRate
	if cfg.Settings.Tracing.ServiceName != "" {
		tracingCfg.ServiceName = cfg.Settings.Tracing.ServiceName
	}

	shutdown, err := tracing.NewTracerProvider(tracingCfg, logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			"error", err.Error())
		return tracing.NewNopTracerProvider()
	}

	return shutdown
}
