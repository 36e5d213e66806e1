package dashboard

import "go.uber.org/zap"

// Confirmer answers a yes/no question put to the user before a destructive
// command. A false answer aborts the command without a notice.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Always answers every confirmation with the same value.
func Always(answer bool) Confirmer {
	return ConfirmFunc(func(string) bool { return answer })
}

// Notifier receives every user-facing notice. Notify must not block.
type Notifier interface {
	Notify(msg string)
}

// LogNotifier records notices at debug level.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(msg string) {
	n.Logger.Debug("Notice", zap.String("message", msg))
}
