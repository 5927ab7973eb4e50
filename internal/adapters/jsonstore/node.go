package jsonstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glass/internal/adapters/config"
	"go.trai.ch/glass/internal/adapters/logger"
	"go.trai.ch/glass/internal/core/ports"
)

// NodeID is the unique identifier for the data store Graft node.
const NodeID graft.ID = "adapter.data_store"

func init() {
	graft.Register(graft.Node[ports.DataStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.DataStore, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}

			store := NewStore(cfg.DataDir, log)
			if err := store.Init(); err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
