package ports

import (
	"context"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

// TemplateInfo describes an available deck template.
type TemplateInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	BuiltIn     bool   `json:"built_in"`
}

// TemplateProvider looks up named style configurations and fetches
// externally sourced presentation templates.
type TemplateProvider interface {
	// Config never fails; unknown names return the default configuration.
	Config(name string) entities.TemplateConfig

	// List returns the known templates, built-in and downloadable.
	List() []TemplateInfo

	// Fetch downloads a community template into destDir, returning the
	// local path, or "" when the template is unknown or unavailable.
	Fetch(ctx context.Context, name, destDir string) (string, error)
}
