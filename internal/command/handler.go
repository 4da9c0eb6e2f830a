// Package command предоставляет интерфейсы и реестр для команд приложения.
// Пакет реализует паттерн self-registration, позволяющий командам
// регистрироваться в реестре через init() без изменения main.go.
package command

import (
	"context"

	"github.com/Kargones/teax/internal/config"
)

// Handler определяет интерфейс обработчика команды.
// Каждая команда приложения должна реализовывать этот интерфейс.
// Регистрация обработчиков происходит через функцию Register() в init().
type Handler interface {
	// Name возвращает имя команды для регистрации в реестре.
	// Должно соответствовать константам из internal/constants
	// (например, "deps", "milestone").
	Name() string

	// Description возвращает описание команды для вывода в help.
	Description() string

	// Execute выполняет команду с переданным контекстом и конфигурацией.
	// Аргументы команды доступны через cfg.Args.
	// Возвращает ошибку если выполнение завершилось неуспешно.
	Execute(ctx context.Context, cfg *config.Config) error
}
