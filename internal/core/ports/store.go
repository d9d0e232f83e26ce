package ports

import "go.trai.ch/bidsapp/internal/core/domain"

// DigestStore defines the interface for recording definition digests between runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DigestStore interface {
	// Get retrieves the record of an app under the given project root.
	// Returns nil, nil if not found.
	Get(root, app string) (*domain.DigestRecord, error)

	// Put stores the record under the given project root.
	Put(root string, record domain.DigestRecord) error
}
