package ports

import "go.trai.ch/glass/internal/core/domain"

// Logger defines the interface for structured logging.
// Arguments after the message are slog-style key/value pairs.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error, args ...any)
	// SetLevel changes the minimum level that is emitted.
	SetLevel(level domain.LogLevel)
}
