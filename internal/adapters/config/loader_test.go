package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsbuild/internal/adapters/config"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.SettingsFileName), []byte(content), 0o600))
}

func TestLoader_Defaults(t *testing.T) {
	loader := config.NewLoader(nil)

	settings, err := loader.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestLoader_Overrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)

	root := t.TempDir()
	writeSettings(t, root, `
version: "1"
compiler: [npx, tsc]
aliasResolver: [npx, tsc-alias]
concurrency: 4
killTimeout: 500ms
debounce: 20ms
readyTimeout: 5s
outputMode: linear
`)

	nested := filepath.Join(root, "packages", "app")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	settings, err := config.NewLoader(mockLogger).Load(nested)
	require.NoError(t, err)

	assert.Equal(t, []string{"npx", "tsc"}, settings.Compiler)
	assert.Equal(t, []string{"npx", "tsc-alias"}, settings.AliasResolver)
	assert.Equal(t, 4, settings.Concurrency)
	assert.Equal(t, 500*time.Millisecond, settings.KillTimeout)
	assert.Equal(t, 20*time.Millisecond, settings.Debounce)
	assert.Equal(t, 5*time.Second, settings.ReadyTimeout)
	assert.Equal(t, "linear", settings.OutputMode)
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	root := t.TempDir()
	writeSettings(t, root, "concurrency: 2\n")

	settings, err := config.NewLoader(nil).Load(root)
	require.NoError(t, err)

	assert.Equal(t, 2, settings.Concurrency)
	assert.Equal(t, []string{"tsc"}, settings.Compiler)
	assert.Equal(t, domain.DefaultKillTimeout, settings.KillTimeout)
}

func TestLoader_EmptyFile(t *testing.T) {
	root := t.TempDir()
	writeSettings(t, root, "")

	settings, err := config.NewLoader(nil).Load(root)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "unknown field", content: "concurrancy: 3\n", wantErr: domain.ErrSettingsParse},
		{name: "malformed yaml", content: "compiler: [tsc\n", wantErr: domain.ErrSettingsParse},
		{name: "negative concurrency", content: "concurrency: -1\n", wantErr: domain.ErrInvalidSettings},
		{name: "bad duration", content: "killTimeout: soon\n", wantErr: domain.ErrInvalidSettings},
		{name: "bad output mode", content: "outputMode: fancy\n", wantErr: domain.ErrInvalidSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeSettings(t, root, tt.content)

			_, err := config.NewLoader(nil).Load(root)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
