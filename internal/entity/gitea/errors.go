package gitea

import (
	"errors"
	"fmt"

	"github.com/Kargones/teax/internal/pkg/apperrors"
)

// Коды ошибок для Gitea операций.
const (
	// ErrGiteaConnect — ошибка подключения к серверу Gitea (transport-уровень)
	ErrGiteaConnect = "GITEA.CONNECT_FAILED"
	// ErrGiteaAPI — сервер вернул не-2xx статус
	ErrGiteaAPI = "GITEA.API_FAILED"
	// ErrGiteaAuth — ошибка аутентификации
	ErrGiteaAuth = "GITEA.AUTH_FAILED"
	// ErrGiteaTimeout — превышено время ожидания запроса
	ErrGiteaTimeout = "GITEA.TIMEOUT"
	// ErrGiteaNotFound — ресурс не найден (в том числе имя после повторного обновления кэша)
	ErrGiteaNotFound = "GITEA.NOT_FOUND"
	// ErrGiteaDecode — сервер вернул 2xx, но тело не соответствует ожидаемой форме.
	// Отдельный код от ErrGiteaAPI: вызывающий различает "сервер отказал"
	// и "сервер прислал мусор".
	ErrGiteaDecode = "GITEA.DECODE_FAILED"
	// ErrGiteaValidation — ошибка валидации входных данных (до любого запроса)
	ErrGiteaValidation = "GITEA.VALIDATION_FAILED"
)

// GiteaError представляет ошибку при работе с Gitea API.
type GiteaError struct {
	// Code — код ошибки (одна из констант ErrGitea*)
	Code string
	// Message — человекочитаемое описание ошибки
	Message string
	// Cause — оригинальная ошибка (если есть)
	Cause error
	// StatusCode — HTTP статус код ответа (если применимо)
	StatusCode int
}

// Error реализует интерфейс error.
func (e *GiteaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap возвращает оригинальную ошибку для использования с errors.Is/As.
func (e *GiteaError) Unwrap() error {
	return e.Cause
}

// ErrorCode возвращает машиночитаемый код ошибки.
// Реализует интерфейс apperrors.Coded.
func (e *GiteaError) ErrorCode() string {
	return e.Code
}

// As поддерживает преобразование GiteaError в apperrors.AppError через errors.As.
func (e *GiteaError) As(target interface{}) bool {
	if t, ok := target.(**apperrors.AppError); ok {
		*t = &apperrors.AppError{
			Code:    e.Code,
			Message: e.Message,
			Cause:   e.Cause,
		}
		return true
	}
	return false
}

// NewGiteaError создаёт новую ошибку Gitea.
func NewGiteaError(code, message string, cause error) *GiteaError {
	return &GiteaError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewGiteaErrorWithStatus создаёт новую ошибку Gitea с HTTP статус кодом.
func NewGiteaErrorWithStatus(code, message string, statusCode int, cause error) *GiteaError {
	return &GiteaError{
		Code:       code,
		Message:    message,
		Cause:      cause,
		StatusCode: statusCode,
	}
}

// ValidationError представляет ошибку валидации входных данных.
// Всегда возникает ДО любого сетевого запроса.
type ValidationError struct {
	// Field — имя поля с ошибкой
	Field string
	// Message — описание ошибки
	Message string
	// Cause — оригинальная ошибка (если есть)
	Cause error
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] поле '%s': %s: %v", ErrGiteaValidation, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] поле '%s': %s", ErrGiteaValidation, e.Field, e.Message)
}

// Unwrap возвращает оригинальную ошибку для использования с errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// ErrorCode возвращает машиночитаемый код ошибки валидации.
func (e *ValidationError) ErrorCode() string {
	return ErrGiteaValidation
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsNotFoundError проверяет, является ли ошибка ошибкой "не найдено".
// Поддерживает wrapped errors через errors.As.
func IsNotFoundError(err error) bool {
	var giteaErr *GiteaError
	if errors.As(err, &giteaErr) {
		return giteaErr.Code == ErrGiteaNotFound
	}
	return false
}

// IsAPIError проверяет, является ли ошибка ошибкой HTTP статуса.
func IsAPIError(err error) bool {
	var giteaErr *GiteaError
	if errors.As(err, &giteaErr) {
		return giteaErr.Code == ErrGiteaAPI
	}
	return false
}

// IsDecodeError проверяет, является ли ошибка ошибкой декодирования ответа.
func IsDecodeError(err error) bool {
	var giteaErr *GiteaError
	if errors.As(err, &giteaErr) {
		return giteaErr.Code == ErrGiteaDecode
	}
	return false
}

// IsTimeoutError проверяет, является ли ошибка ошибкой таймаута.
func IsTimeoutError(err error) bool {
	var giteaErr *GiteaError
	if errors.As(err, &giteaErr) {
		return giteaErr.Code == ErrGiteaTimeout
	}
	return false
}

// IsConnectionError проверяет, является ли ошибка ошибкой подключения.
func IsConnectionError(err error) bool {
	var giteaErr *GiteaError
	if errors.As(err, &giteaErr) {
		return giteaErr.Code == ErrGiteaConnect
	}
	return false
}

// IsValidationError проверяет, является ли ошибка ошибкой валидации.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
