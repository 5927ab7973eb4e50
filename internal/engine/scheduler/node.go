package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glass/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/glass/internal/adapters/dispatch"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/glass/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/glass/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/glass/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/glass/internal/core/ports"
	"go.trai.ch/glass/internal/engine/sizecache"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			sizecache.NodeID,
			fs.NodeID,
			progrock.NodeID,
			logger.NodeID,
			dispatch.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			cache, err := graft.Dep[*sizecache.Cache](ctx)
			if err != nil {
				return nil, err
			}

			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			dispatcher, err := graft.Dep[ports.Dispatcher](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}

			return NewScheduler(cache, fsys, tel, log, dispatcher, cfg.Workers), nil
		},
	})
}
