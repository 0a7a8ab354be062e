package cli

import (
	"fmt"

	"github.com/clearpond/kassa/internal/config"
	"github.com/clearpond/kassa/internal/pos"
	"github.com/clearpond/kassa/internal/storage"
)

// openBackend constructs the snapshot backend selected by the config.
func openBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage.Driver {
	case "file":
		return storage.NewFileBackend(cfg.Storage.Path)
	case "sqlite":
		return storage.OpenSQLite(cfg.Storage.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// openStore opens the local store over the configured backend. The caller
// owns the backend and must close it.
func openStore(cfg *config.Config) (*pos.Store, storage.Backend, error) {
	backend, err := openBackend(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open backend: %w", err)
	}

	mode := pos.IDModeUUID
	if cfg.IDMode == "sequential" {
		mode = pos.IDModeSequential
	}

	store, err := pos.Open(backend, pos.WithIDMode(mode))
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return store, backend, nil
}
