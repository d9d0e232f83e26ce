package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bidsapp/internal/adapters/logger"
)

func TestPrettyHandler(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		msg   string
		attrs []any
		want  string
	}{
		{"info", slog.LevelInfo, "info message", nil, "info message\n"},
		{"warn", slog.LevelWarn, "careful", nil, "! careful\n"},
		{"error", slog.LevelError, "broken", nil, "✗ broken\n"},
		{"debug filtered", slog.LevelDebug, "hidden", nil, ""},
		{"attrs", slog.LevelInfo, "loaded", []any{"apps", 2, "file", "bidsapp.yaml"}, "loaded apps=2 file=bidsapp.yaml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, tt.msg, tt.attrs...)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).With("app", "mriqc").WithGroup("digest")
	lg.Info("recorded", "status", "new")

	assert.Equal(t, "recorded app=mriqc digest.status=new\n", buf.String())
}
