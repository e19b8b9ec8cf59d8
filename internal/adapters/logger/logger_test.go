package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsbuild/internal/adapters/logger"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewWithWriter(buf), buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(l *logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("starting compiler in watch mode") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("initial build failed, watching anyway") },
			goldenName: "warn_basic",
		},
		{
			name:       "error chain",
			log:        func(l *logger.Logger) { l.Error(zerr.Wrap(zerr.New("permission denied"), "failed to sync deletion")) },
			goldenName: "error_chain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetOutput(t *testing.T) {
	lg, first := newTestLogger(t)
	second := new(bytes.Buffer)

	lg.Info("one")
	lg.SetOutput(second)
	lg.Info("two")

	assert.Equal(t, "one\n", first.String())
	assert.Equal(t, "two\n", second.String())
}

func TestFormatError(t *testing.T) {
	t.Run("standard error", func(t *testing.T) {
		assert.Equal(t, "Error: boom", logger.FormatError(errors.New("boom")))
	})

	t.Run("metadata is rendered next to its message", func(t *testing.T) {
		err := zerr.With(zerr.Wrap(errors.New("no such file"), "failed to read settings file"), "path", "/p/tsbuild.yaml")
		got := logger.FormatError(err)

		require.Contains(t, got, "Error: failed to read settings file (path=/p/tsbuild.yaml)")
		assert.Contains(t, got, "  Caused by:\n    → no such file")
	})

	t.Run("context-only wrappers fold into the next message", func(t *testing.T) {
		err := zerr.With(fmt.Errorf("exit status 2"), "exit_code", 2)
		assert.Equal(t, "Error: exit status 2 (exit_code=2)", logger.FormatError(err))
	})

	t.Run("joined category keeps multi-line detail", func(t *testing.T) {
		err := errors.Join(domain.ErrBuildFailure, errors.New("src/a.ts(1,7): error TS2322\nsrc/b.ts(2,1): error TS1005"))
		got := logger.FormatError(err)

		assert.Equal(t, "Error: build failed\n       src/a.ts(1,7): error TS2322\n       src/b.ts(2,1): error TS1005", got)
	})
}
