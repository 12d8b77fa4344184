package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want *zapcore.Level
	}{
		{in: "debug", want: levelPtr(zapcore.DebugLevel)},
		{in: "info", want: levelPtr(zapcore.InfoLevel)},
		{in: "warn", want: levelPtr(zapcore.WarnLevel)},
		{in: "error", want: levelPtr(zapcore.ErrorLevel)},
		{in: "fatal", want: nil},
		{in: "verbose", want: nil},
		{in: "", want: levelPtr(zapcore.InfoLevel)},
	}

	for _, tt := range tests {
		got := parseLevel(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("parseLevel(%q) = %v, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, *tt.want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	log := NewNop()
	log.Info("ignored", String("k", "v"), Int("n", 1), Bool("b", true), Error(errors.New("x")))
	log.With(Uint64("seq", 3)).Debugf("ignored %d", 1)
	_ = log.Sync()
}

func levelPtr(l zapcore.Level) *zapcore.Level { return &l }
