package config

import (
	"github.com/Kargones/teax/internal/entity/gitea"
	"github.com/Kargones/teax/internal/pkg/logging"
)

// Config — собранная конфигурация приложения: настройки окружения,
// выбранный логин tea и транспортная политика сессии.
type Config struct {
	Settings *Settings
	Login    *Login
	TLS      gitea.TLSOptions

	// Command — имя выполняемой команды (первый позиционный аргумент).
	// Устанавливается в main после разбора глобальных флагов.
	Command string

	// Args — аргументы команды (всё после имени команды).
	Args []string

	// Logger — логгер приложения. Пишет ТОЛЬКО в stderr,
	// stdout зарезервирован за выводом команд.
	Logger logging.Logger
}

// Load собирает конфигурацию: читает переменные окружения,
// загружает config.yml tea и выбирает логин.
//
// Порядок выбора пути к config.yml: TEAX_CONFIG_PATH, затем
// стандартный каталог конфигурации пользователя.
func Load(log logging.Logger) (*Config, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	path := settings.ConfigPath
	if path == "" {
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	teaCfg, err := LoadTeaConfig(path)
	if err != nil {
		return nil, err
	}

	login, err := SelectLogin(teaCfg, settings.Login)
	if err != nil {
		return nil, err
	}

	log.Debug("Конфигурация загружена",
		"config_path", path,
		"login", login.Name,
		"output", settings.Output)

	return &Config{
		Settings: settings,
		Login:    login,
		Logger:   log,
		TLS: gitea.TLSOptions{
			CABundlePath:       settings.CABundle,
			InsecureSkipVerify: IsTruthy(settings.InsecureTLS) || login.Insecure,
			AllowHTTP:          IsTruthy(settings.AllowHTTP),
		},
	}, nil
}
