package sizecache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glass/internal/adapters/config"    //nolint:depguard // Wired in engine node
	"go.trai.ch/glass/internal/adapters/fs"        //nolint:depguard // Wired in engine node
	"go.trai.ch/glass/internal/adapters/jsonstore" //nolint:depguard // Wired in engine node
	"go.trai.ch/glass/internal/adapters/logger"    //nolint:depguard // Wired in engine node
	"go.trai.ch/glass/internal/core/ports"
)

// NodeID is the unique identifier for the folder size cache Graft node.
const NodeID graft.ID = "engine.sizecache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			jsonstore.NodeID,
			fs.NodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*Cache, error) {
			store, err := graft.Dep[ports.DataStore](ctx)
			if err != nil {
				return nil, err
			}
			fsys, err := graft.Dep[ports.FileSystem](ctx)
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
			return New(store, fsys, log, cfg.MtimeTolerance), nil
		},
	})
}
