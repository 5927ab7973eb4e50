package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glass/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/glass/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/glass/internal/adapters/jsonstore"          //nolint:depguard // Wired in app layer
	"go.trai.ch/glass/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/glass/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/glass/internal/core/ports"
	"go.trai.ch/glass/internal/engine/scheduler"
	"go.trai.ch/glass/internal/engine/sizecache"
	"go.trai.ch/glass/internal/engine/userdata"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			sizecache.NodeID,
			scheduler.NodeID,
			userdata.NodeID,
			fs.NodeID,
			jsonstore.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cache, err := graft.Dep[*sizecache.Cache](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	data, err := graft.Dep[*userdata.Manager](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.DataStore](ctx)
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

	return New(cache, sched, data, fsys, store, tel, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
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
	log.SetLevel(domain.ParseLogLevel(cfg.LogLevel))

	return &Components{
		App:    app,
		Logger: log,
		Config: cfg,
	}, nil
}
