package ports

import (
	"context"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

// ConfigLoader loads application configuration from its storage form.
type ConfigLoader interface {
	// LoadGlobal loads the user-level configuration, creating it with
	// defaults on first run.
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads the per-directory configuration. A missing file
	// yields (nil, nil).
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// CreateDefaults writes a default configuration file at path.
	CreateDefaults(ctx context.Context, path string) error
}

// ConfigMerger combines configuration layers into an effective config.
type ConfigMerger interface {
	// Merge combines configurations with later ones taking precedence.
	Merge(configs ...*entities.Config) *entities.Config

	// ApplyFlags overlays CLI flag values onto a configuration.
	ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config

	// ApplyEnvVars overlays environment variables onto a configuration.
	ApplyEnvVars(config *entities.Config) *entities.Config
}
