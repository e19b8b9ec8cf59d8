// Package config loads the optional tsbuild.yaml settings file.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var validOutputModes = []string{"auto", "tui", "linear"}

// Loader implements ports.SettingsLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

var _ ports.SettingsLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers tsbuild.yaml from cwd upwards and merges it over the defaults.
// A missing file is not an error.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	path, ok := findSettingsFile(cwd)
	if !ok {
		return settings, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is discovered, not user input
	if err != nil {
		return settings, errors.Join(domain.ErrSettingsRead, zerr.With(err, "path", path))
	}

	var file Settingsfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return settings, errors.Join(domain.ErrSettingsParse, zerr.With(err, "path", path))
	}

	if err := apply(&settings, &file); err != nil {
		return settings, zerr.With(err, "path", path)
	}

	if l.Logger != nil {
		l.Logger.Info("using settings from " + path)
	}
	return settings, nil
}

func findSettingsFile(cwd string) (string, bool) {
	dir := cwd
	for {
		candidate := filepath.Join(dir, domain.SettingsFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func apply(s *domain.Settings, f *Settingsfile) error {
	if len(f.Compiler) > 0 {
		s.Compiler = f.Compiler
	}
	if len(f.AliasResolver) > 0 {
		s.AliasResolver = f.AliasResolver
	}

	switch {
	case f.Concurrency < 0:
		return domain.Tag(domain.ErrInvalidSettings, "concurrency", f.Concurrency)
	case f.Concurrency > 0:
		s.Concurrency = f.Concurrency
	}

	durations := []struct {
		key   string
		value string
		dst   *time.Duration
	}{
		{"killTimeout", f.KillTimeout, &s.KillTimeout},
		{"debounce", f.Debounce, &s.Debounce},
		{"readyTimeout", f.ReadyTimeout, &s.ReadyTimeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil || parsed < 0 {
			return domain.Tag(domain.ErrInvalidSettings, d.key, d.value)
		}
		*d.dst = parsed
	}

	if f.OutputMode != "" {
		if !slices.Contains(validOutputModes, f.OutputMode) {
			return domain.Tag(domain.ErrInvalidSettings, "outputMode", f.OutputMode)
		}
		s.OutputMode = f.OutputMode
	}

	return nil
}
