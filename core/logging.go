package core

// Logger is any leveled logger that can ship errors to an external sink.
// Args may carry errors, maps of extra data and the acting user record.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
