package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bidsapp/internal/core/ports"
)

// NodeID is the unique identifier for the digest store Graft node.
const NodeID graft.ID = "adapter.digest_store"

func init() {
	graft.Register(graft.Node[ports.DigestStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DigestStore, error) {
			return NewStore(), nil
		},
	})
}
