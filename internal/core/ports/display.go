package ports

import "context"

// Display multiplexes labeled output streams into separate regions.
// It is a presentation sink only; AppendLine and ScrollToBottom must not block.
//
//go:generate mockgen -source=display.go -destination=mocks/mock_display.go -package=mocks
type Display interface {
	// Start initializes the display and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop tears the display down. Further lines are dropped or printed directly.
	Stop() error

	// Wait blocks until the display has fully terminated.
	Wait() error

	// AppendLine appends one line of text to the region for label.
	AppendLine(label, text string)

	// ScrollToBottom moves the region for label to its latest output.
	ScrollToBottom(label string)

	// Exit is closed when the user asks to leave the session.
	Exit() <-chan struct{}
}
