package userdata

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glass/internal/adapters/config"    //nolint:depguard // Wired in engine node
	"go.trai.ch/glass/internal/adapters/jsonstore" //nolint:depguard // Wired in engine node
	"go.trai.ch/glass/internal/adapters/logger"    //nolint:depguard // Wired in engine node
	"go.trai.ch/glass/internal/core/ports"
)

// NodeID is the unique identifier for the user data Graft node.
const NodeID graft.ID = "engine.userdata"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			jsonstore.NodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*Manager, error) {
			store, err := graft.Dep[ports.DataStore](ctx)
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
			return NewManager(store, log, cfg.HistoryLimit, cfg.RecentLimit), nil
		},
	})
}
