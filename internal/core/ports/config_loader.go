package ports

import "go.trai.ch/bidsapp/internal/core/domain"

// ConfigLoader defines the interface for loading BIDS App declarations.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the declaration file at path and builds its definitions.
	Load(path string) (*domain.Catalog, error)

	// Discover walks up from cwd and returns the path of the nearest declaration file.
	Discover(cwd string) (string, error)
}
