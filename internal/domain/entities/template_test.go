package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateConfigColor(t *testing.T) {
	cfg := TemplateConfig{
		Colors: map[ColorRole]RGB{
			ColorTitle: {R: 10, G: 20, B: 30},
		},
	}

	assert.Equal(t, RGB{R: 10, G: 20, B: 30}, cfg.Color(ColorTitle))

	t.Run("missing role falls back to black", func(t *testing.T) {
		assert.Equal(t, RGB{}, cfg.Color(ColorAccent))
	})
}

func TestTemplateConfigLayoutIndex(t *testing.T) {
	cfg := TemplateConfig{
		Layouts: map[LayoutRole]int{
			RoleTitleSlide:   0,
			RoleContentSlide: 1,
			RoleBlank:        6,
		},
	}

	t.Run("known role resolves", func(t *testing.T) {
		assert.Equal(t, 1, cfg.LayoutIndex(RoleContentSlide, 7))
	})

	t.Run("index clamped to available layouts", func(t *testing.T) {
		assert.Equal(t, 2, cfg.LayoutIndex(RoleBlank, 3))
	})

	t.Run("unknown role maps to zero", func(t *testing.T) {
		assert.Equal(t, 0, cfg.LayoutIndex(RoleTwoColumn, 7))
	})

	t.Run("no layouts available", func(t *testing.T) {
		assert.Equal(t, 0, cfg.LayoutIndex(RoleBlank, 0))
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := Config{
			Server:    ServerConfig{Host: "localhost", Port: 8000},
			Generator: GeneratorConfig{Provider: "offline"},
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects bad port", func(t *testing.T) {
		cfg := Config{Server: ServerConfig{Port: 70000}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		cfg := Config{Generator: GeneratorConfig{Provider: "mystery"}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		cfg := Config{Logging: LoggingConfig{Level: "loud"}}
		assert.Error(t, cfg.Validate())
	})
}
