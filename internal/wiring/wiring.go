// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tsbuild/internal/adapters/config"
	_ "go.trai.ch/tsbuild/internal/adapters/logger"
	_ "go.trai.ch/tsbuild/internal/adapters/process"
	_ "go.trai.ch/tsbuild/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/tsbuild/internal/app"
)
