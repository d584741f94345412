package core

// Logger interface for evaluator and generator diagnostics
type Logger interface {
	Printf(format string, args ...interface{})
}
