// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/glass/internal/adapters/config"
	_ "go.trai.ch/glass/internal/adapters/dispatch"
	_ "go.trai.ch/glass/internal/adapters/fs"
	_ "go.trai.ch/glass/internal/adapters/jsonstore"
	_ "go.trai.ch/glass/internal/adapters/logger"
	_ "go.trai.ch/glass/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/glass/internal/app"
	_ "go.trai.ch/glass/internal/engine/scheduler"
	_ "go.trai.ch/glass/internal/engine/sizecache"
	_ "go.trai.ch/glass/internal/engine/userdata"
)
