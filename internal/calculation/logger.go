package calculation

// Logger is a minimal logging interface for the calculation engine.
// *zap.SugaredLogger satisfies it; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// scenarioLogger prefixes every message with the scenario being computed.
type scenarioLogger struct {
	name string
	next Logger
}

// WithScenario tags log lines emitted while computing one named scenario.
func WithScenario(l Logger, name string) Logger {
	if l == nil {
		return NopLogger{}
	}
	if _, ok := l.(NopLogger); ok {
		return l
	}
	return scenarioLogger{name: name, next: l}
}

func (s scenarioLogger) prefixed(format string, args []any) (string, []any) {
	return "[%s] " + format, append([]any{s.name}, args...)
}

func (s scenarioLogger) Debugf(format string, args ...any) {
	f, a := s.prefixed(format, args)
	s.next.Debugf(f, a...)
}

func (s scenarioLogger) Infof(format string, args ...any) {
	f, a := s.prefixed(format, args)
	s.next.Infof(f, a...)
}

func (s scenarioLogger) Warnf(format string, args ...any) {
	f, a := s.prefixed(format, args)
	s.next.Warnf(f, a...)
}

func (s scenarioLogger) Errorf(format string, args ...any) {
	f, a := s.prefixed(format, args)
	s.next.Errorf(f, a...)
}
