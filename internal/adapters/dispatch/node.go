package dispatch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glass/internal/core/ports"
)

// NodeID is the unique identifier for the default UI dispatcher Graft node.
const NodeID graft.ID = "adapter.dispatcher"

func init() {
	graft.Register(graft.Node[ports.Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Dispatcher, error) {
			return NewSerial(), nil
		},
	})
}
