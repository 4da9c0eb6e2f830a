// Package main содержит точку входа для приложения teax.
// teax — компаньон-клиент REST API Gitea, читающий подключения
// из config.yml клиента tea.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/teax/internal/command"
	"github.com/Kargones/teax/internal/config"
	"github.com/Kargones/teax/internal/constants"
	"github.com/Kargones/teax/internal/di"
	"github.com/Kargones/teax/internal/pkg/metrics"
	"github.com/Kargones/teax/internal/pkg/tracing"

	// Команды: blank import для self-registration через init()
	_ "github.com/Kargones/teax/internal/command/handlers/depshandler"
	_ "github.com/Kargones/teax/internal/command/handlers/help"
	_ "github.com/Kargones/teax/internal/command/handlers/issuehandler"
	_ "github.com/Kargones/teax/internal/command/handlers/labelhandler"
	_ "github.com/Kargones/teax/internal/command/handlers/milestonehandler"
	_ "github.com/Kargones/teax/internal/command/handlers/pkghandler"
	_ "github.com/Kargones/teax/internal/command/handlers/runnershandler"
	_ "github.com/Kargones/teax/internal/command/handlers/runshandler"
	_ "github.com/Kargones/teax/internal/command/handlers/tokenhandler"
	_ "github.com/Kargones/teax/internal/command/handlers/version"
	_ "github.com/Kargones/teax/internal/command/handlers/workflowhandler"
)

// recordMetrics записывает результат выполнения команды и отправляет метрики в Pushgateway.
func recordMetrics(ctx context.Context, collector metrics.Collector, command string, start time.Time, success bool) {
	collector.RecordCommandEnd(command, "", time.Since(start), success)
	_ = collector.Push(ctx) // Ошибки push логируются внутри, не критичны
}

func main() {
	os.Exit(run())
}

// run содержит основную логику приложения и возвращает exit code.
// Вынесена из main() чтобы os.Exit() вызывался ПОСЛЕ отработки всех
// defer-ов (tracerShutdown, span.End). Без этого трейсы ошибочных
// выполнений терялись бы, потому что os.Exit() не выполняет defer.
func run() int {
	ctx := context.Background()

	fs := pflag.NewFlagSet("teax", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	login := fs.String("login", "", "имя логина tea из config.yml")
	outputFormat := fs.String("output", "", "формат вывода: table, simple, csv")
	showVersion := fs.Bool("version", false, "вывод версии приложения")
	// Флаги после имени команды принадлежат обработчику команды.
	fs.SetInterspersed(false)
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "teax: %v\n", err)
		return constants.ExitError
	}

	if *showVersion {
		fmt.Printf("teax version %s\n", constants.Version)
		return constants.ExitOK
	}

	// Флаги имеют приоритет над окружением. cleanenv читает окружение,
	// поэтому переопределение делается до загрузки конфигурации.
	if fs.Changed("login") {
		_ = os.Setenv(constants.EnvLogin, *login)
	}
	if fs.Changed("output") {
		_ = os.Setenv(constants.EnvOutput, *outputFormat)
	}

	// Bootstrap логгер из настроек окружения; конфигурация tea ещё не нужна.
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось прочитать настройки окружения: %v\n", err)
		return constants.ExitError
	}
	logger := di.ProvideLogger(&config.Config{Settings: settings})

	args := fs.Args()
	cmdName := constants.ActHelp
	if len(args) > 0 {
		cmdName = args[0]
	}

	// help и version работают без config.yml tea: у пользователя может
	// ещё не быть ни одного логина.
	var cfg *config.Config
	if cmdName == constants.ActHelp || cmdName == constants.ActVersion {
		cfg = &config.Config{Settings: settings, Logger: logger}
	} else {
		cfg, err = config.Load(logger)
		if err != nil {
			logger.Error("Не удалось загрузить конфигурацию",
				"error", err.Error(),
				constants.MsgErrProcessing, constants.MsgAppExit)
			return constants.ExitError
		}
	}
	cfg.Command = cmdName
	if len(args) > 1 {
		cfg.Args = args[1:]
	}

	logger.Debug("Информация о сборке", "version", constants.Version)

	// Генерируем trace_id для корреляции логов
	traceID := tracing.GenerateTraceID()
	ctx = tracing.WithTraceID(ctx, traceID)
	// Связываем с OTel span context — все span-ы используют этот trace ID
	ctx = tracing.ContextWithOTelTraceID(ctx, traceID)

	metricsCollector := di.ProvideMetricsCollector(cfg, logger)

	// Инициализация OpenTelemetry трейсинга
	tracerShutdown := di.ProvideTracerProvider(cfg, logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(shutdownCtx); err != nil {
			logger.Error("ошибка завершения tracing",
				"error", err.Error(),
				"trace_id", traceID,
				"command", cfg.Command)
		}
	}()

	tracer := otel.Tracer("teax")
	ctx, span := tracer.Start(ctx, cfg.Command,
		trace.WithAttributes(
			attribute.String("command", cfg.Command),
			attribute.String("trace_id", traceID),
		),
	)
	defer span.End()

	start := time.Now()

	handler, ok := command.Get(cfg.Command)
	if !ok {
		logger.Error("неизвестная команда",
			"command", cfg.Command,
			constants.MsgErrProcessing, constants.MsgAppExit)
		if helpHandler, found := command.Get(constants.ActHelp); found {
			_ = helpHandler.Execute(ctx, cfg)
		}
		return constants.ExitError
	}

	logger.Debug("Выполнение команды", "command", cfg.Command, "trace_id", traceID)
	execErr := handler.Execute(ctx, cfg)

	recordMetrics(ctx, metricsCollector, cfg.Command, start, execErr == nil)

	if execErr != nil {
		logger.Error("Ошибка выполнения команды",
			"command", cfg.Command,
			"error", execErr.Error(),
			constants.MsgErrProcessing, constants.MsgAppExit)
		return constants.ExitError
	}
	return constants.ExitOK
}
