// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/tsbuild/internal/core/domain"
)

// ConfigResolver resolves the compiler configuration into absolute source and output roots.
//
//go:generate mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigResolver interface {
	// Resolve locates and resolves the project configuration.
	// An empty project discovers tsconfig.json from the working directory upwards.
	Resolve(ctx context.Context, project string) (domain.BuildConfig, error)
}

// SettingsLoader loads orchestrator settings.
type SettingsLoader interface {
	// Load reads settings discovered from cwd upwards, falling back to defaults.
	Load(cwd string) (domain.Settings, error)
}
