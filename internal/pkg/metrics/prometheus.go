package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Kargones/teax/internal/pkg/logging"
	"github.com/Kargones/teax/internal/pkg/urlutil"
)

// PrometheusCollector реализует Collector с Prometheus метриками.
// Отправляет метрики в Pushgateway при вызове Push().
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	commandDuration *prometheus.HistogramVec
	commandSuccess  *prometheus.CounterVec
	commandError    *prometheus.CounterVec

	// Instance label (hostname)
	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector с указанной конфигурацией.
// Регистрирует метрики:
//   - teax_command_duration_seconds (histogram)
//   - teax_command_success_total (counter)
//   - teax_command_error_total (counter)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	registry := prometheus.NewRegistry()

	// Buckets покрывают диапазон от одиночного запроса до долгой пагинации
	commandDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "teax",
			Name:      "command_duration_seconds",
			Help:      "Duration of command execution in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"command", "repo", "status"},
	)

	commandSuccess := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teax",
			Name:      "command_success_total",
			Help:      "Total number of successful command executions",
		},
		[]string{"command", "repo"},
	)

	commandError := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teax",
			Name:      "command_error_total",
			Help:      "Total number of failed command executions",
		},
		[]string{"command", "repo"},
	)

	// Register вместо MustRegister: ошибка возможна только при
	// дублировании имён метрик в одном registry, без panic.
	collectors := []prometheus.Collector{commandDuration, commandSuccess, commandError}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return &PrometheusCollector{
		config:          config,
		logger:          logger,
		registry:        registry,
		commandDuration: commandDuration,
		commandSuccess:  commandSuccess,
		commandError:    commandError,
		instance:        instance,
	}, nil
}

// maxLabelLength — максимальная длина значения label для защиты от cardinality explosion.
const maxLabelLength = 128

// sanitizeLabel обрезает значение label до допустимой длины и заменяет
// контрольные символы, которые могут нарушить Prometheus text format.
// Обрезка выполняется по рунам для корректной работы с UTF-8.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordCommandEnd записывает завершение команды.
// Обновляет histogram duration и counter success/error.
func (c *PrometheusCollector) RecordCommandEnd(command, repo string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	command = sanitizeLabel(command)
	repo = sanitizeLabel(repo)

	c.commandDuration.WithLabelValues(command, repo, status).Observe(duration.Seconds())

	if success {
		c.commandSuccess.WithLabelValues(command, repo).Inc()
	} else {
		c.commandError.WithLabelValues(command, repo).Inc()
	}

	c.logger.Debug("metrics: command ended",
		"command", command,
		"repo", repo,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// Push отправляет метрики в Pushgateway.
// Всегда возвращает nil: ошибки отправки только логируются.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		c.logger.Debug("metrics: pushgateway URL not configured, skipping push")
		return nil
	}

	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"error", err.Error(),
		)
		return nil
	}

	c.logger.Debug("metrics: метрики отправлены",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
	)
	return nil
}
