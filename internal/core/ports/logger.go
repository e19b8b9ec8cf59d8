package ports

import "io"

// Logger defines the interface for logging.
// Every component receives it explicitly; output is redirected with SetOutput
// rather than by replacing the process's standard streams.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
	// SetOutput redirects subsequent log lines. A nil writer restores stderr.
	SetOutput(w io.Writer)
}
