package constants

// Константы версии приложения.
// Значения переопределяются при сборке через ldflags:
//
//	go build -ldflags "-X github.com/Kargones/teax/internal/constants.Version=..."
var (
	// Version - версия приложения
	Version = "0.4.0"
	// PreCommitHash - хэш коммита, из которого собрано приложение
	PreCommitHash = "dev"
)
