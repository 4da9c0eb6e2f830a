// Package config содержит конфигурацию приложения: настройки из переменных
// окружения и логины из файла config.yml клиента tea.
package config

import (
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/teax/internal/pkg/apperrors"
)

// Settings представляет настройки приложения из переменных окружения TEAX_*.
//
// Флаговые переменные (TEAX_INSECURE_TLS, TEAX_ALLOW_HTTP) читаются как строки
// и интерпретируются через IsTruthy: истинны только "1", "true" и "yes"
// без учёта регистра. Любое другое значение, включая пустое, — ложь.
type Settings struct {
	// Login — имя логина tea; пустое значение означает логин по умолчанию
	Login string `env:"TEAX_LOGIN"`
	// Output — формат вывода команд: table, simple или csv
	Output string `env:"TEAX_OUTPUT" env-default:"table"`
	// ConfigPath — переопределение пути к config.yml tea
	ConfigPath string `env:"TEAX_CONFIG_PATH"`
	// CABundle — путь к PEM файлу с доверенными CA (высший приоритет TLS политики)
	CABundle string `env:"TEAX_CA_BUNDLE"`
	// InsecureTLS — отключение проверки сертификатов (низший приоритет)
	InsecureTLS string `env:"TEAX_INSECURE_TLS"`
	// AllowHTTP — явное разрешение plaintext HTTP
	AllowHTTP string `env:"TEAX_ALLOW_HTTP"`

	Logging LoggingSettings
	Metrics MetricsSettings
	Tracing TracingSettings
}

// LoggingSettings представляет настройки логирования из переменных окружения.
type LoggingSettings struct {
	Level    string `env:"TEAX_LOG_LEVEL" env-default:"info"`
	Format   string `env:"TEAX_LOG_FORMAT" env-default:"text"`
	Output   string `env:"TEAX_LOG_OUTPUT" env-default:"stderr"`
	FilePath string `env:"TEAX_LOG_FILE_PATH"`
}

// MetricsSettings представляет настройки отправки метрик в Pushgateway.
type MetricsSettings struct {
	Enabled bool   `env:"TEAX_METRICS_ENABLED" env-default:"false"`
	URL     string `env:"TEAX_METRICS_URL"`
	JobName string `env:"TEAX_METRICS_JOB" env-default:"teax"`
}

// TracingSettings представляет настройки OTLP трассировки.
type TracingSettings struct {
	Enabled     bool    `env:"TEAX_TRACING_ENABLED" env-default:"false"`
	Endpoint    string  `env:"TEAX_TRACING_ENDPOINT"`
	ServiceName string  `env:"TEAX_TRACING_SERVICE_NAME" env-default:"teax"`
	SampleRate  float64 `env:"TEAX_TRACING_SAMPLE_RATE" env-default:"1.0"`
}

// LoadSettings читает настройки из переменных окружения.
func LoadSettings() (*Settings, error) {
	settings := &Settings{}
	if err := cleanenv.ReadEnv(settings); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать настройки из переменных окружения", err)
	}
	return settings, nil
}

// IsTruthy интерпретирует строковое значение флаговой переменной окружения.
// Истинны только "1", "true" и "yes" без учёта регистра.
func IsTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
