// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/bidsapp/internal/adapters/cas"
	_ "go.trai.ch/bidsapp/internal/adapters/config"
	_ "go.trai.ch/bidsapp/internal/adapters/logger"
	_ "go.trai.ch/bidsapp/internal/adapters/telemetry"
	_ "go.trai.ch/bidsapp/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/bidsapp/internal/app"
)
