package templates

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
	"github.com/slidesmith/slidesmith/internal/domain/ports"
)

// DefaultTemplate is the configuration used for unknown template names.
const DefaultTemplate = "minimal"

// communityTemplates maps downloadable template names to their source
// URLs.
var communityTemplates = map[string]string{
	"minimal_clean":   "https://raw.githubusercontent.com/daveebbelaar/powerpoint-templates/main/minimal-clean.pptx",
	"corporate_blue":  "https://raw.githubusercontent.com/daveebbelaar/powerpoint-templates/main/corporate-blue.pptx",
	"modern_gradient": "https://raw.githubusercontent.com/daveebbelaar/powerpoint-templates/main/modern-gradient.pptx",
	"startup_pitch":   "https://raw.githubusercontent.com/daveebbelaar/powerpoint-templates/main/startup-pitch.pptx",
}

func builtinConfigs() map[string]entities.TemplateConfig {
	defaultLayouts := map[entities.LayoutRole]int{
		entities.RoleTitleSlide:   0,
		entities.RoleContentSlide: 1,
		entities.RoleTwoColumn:    3,
		entities.RoleBlank:        6,
	}

	return map[string]entities.TemplateConfig{
		"minimal": {
			Name:          "minimal",
			FontFamily:    "Arial",
			TitleFontSize: 24,
			BodyFontSize:  18,
			Colors: map[entities.ColorRole]entities.RGB{
				entities.ColorTitle:      {R: 0, G: 0, B: 0},
				entities.ColorBody:       {R: 64, G: 64, B: 64},
				entities.ColorBackground: {R: 255, G: 255, B: 255},
				entities.ColorAccent:     {R: 0, G: 120, B: 215},
			},
			Layouts: defaultLayouts,
		},
		"corporate": {
			Name:          "corporate",
			FontFamily:    "Calibri",
			TitleFontSize: 28,
			BodyFontSize:  20,
			Colors: map[entities.ColorRole]entities.RGB{
				entities.ColorTitle:      {R: 0, G: 51, B: 102},
				entities.ColorBody:       {R: 51, G: 51, B: 51},
				entities.ColorBackground: {R: 248, G: 248, B: 248},
				entities.ColorAccent:     {R: 0, G: 176, B: 80},
			},
			Layouts: defaultLayouts,
		},
		"bold": {
			Name:          "bold",
			FontFamily:    "Arial Black",
			TitleFontSize: 32,
			BodyFontSize:  22,
			Colors: map[entities.ColorRole]entities.RGB{
				entities.ColorTitle:      {R: 192, G: 0, B: 0},
				entities.ColorBody:       {R: 0, G: 0, B: 0},
				entities.ColorBackground: {R: 255, G: 255, B: 240},
				entities.ColorAccent:     {R: 255, G: 165, B: 0},
			},
			Layouts: defaultLayouts,
		},
	}
}

// Provider implements ports.TemplateProvider: built-in style
// configurations, optional user-defined overrides from a YAML file, and
// best-effort download of community presentation templates.
type Provider struct {
	configs map[string]entities.TemplateConfig
	client  *http.Client
	logger  *slog.Logger
}

// NewProvider creates a template provider with the built-in catalog.
func NewProvider(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		configs: builtinConfigs(),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// templateSpec is the YAML shape of a user-defined template.
type templateSpec struct {
	FontFamily    string                  `yaml:"font_family"`
	TitleFontSize int                     `yaml:"title_font_size"`
	BodyFontSize  int                     `yaml:"body_font_size"`
	Colors        map[string]entities.RGB `yaml:"colors"`
	Layouts       map[string]int          `yaml:"layouts"`
}

// LoadOverrides merges user-defined templates from a YAML file over the
// built-in catalog. A missing file is not an error.
func (p *Provider) LoadOverrides(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from local configuration
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading templates %s: %w", path, err)
	}

	var specs map[string]templateSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return fmt.Errorf("parsing templates %s: %w", path, err)
	}

	for name, spec := range specs {
		p.configs[name] = p.mergeSpec(name, spec)
	}

	p.logger.Info("loaded template overrides",
		slog.String("path", path), slog.Int("count", len(specs)))
	return nil
}

// mergeSpec fills a partial user spec with the default configuration.
func (p *Provider) mergeSpec(name string, spec templateSpec) entities.TemplateConfig {
	cfg := p.configs[DefaultTemplate]
	cfg.Name = name

	if spec.FontFamily != "" {
		cfg.FontFamily = spec.FontFamily
	}
	if spec.TitleFontSize > 0 {
		cfg.TitleFontSize = spec.TitleFontSize
	}
	if spec.BodyFontSize > 0 {
		cfg.BodyFontSize = spec.BodyFontSize
	}

	if len(spec.Colors) > 0 {
		colors := make(map[entities.ColorRole]entities.RGB, len(cfg.Colors))
		for role, rgb := range cfg.Colors {
			colors[role] = rgb
		}
		for role, rgb := range spec.Colors {
			colors[entities.ColorRole(role)] = rgb
		}
		cfg.Colors = colors
	}

	if len(spec.Layouts) > 0 {
		layouts := make(map[entities.LayoutRole]int, len(cfg.Layouts))
		for role, idx := range cfg.Layouts {
			layouts[role] = idx
		}
		for role, idx := range spec.Layouts {
			layouts[entities.LayoutRole(role)] = idx
		}
		cfg.Layouts = layouts
	}

	return cfg
}

// Config returns the configuration for a template name. Unknown names
// fall back to the default template; lookup never fails.
func (p *Provider) Config(name string) entities.TemplateConfig {
	if cfg, ok := p.configs[name]; ok {
		return cfg
	}
	return p.configs[DefaultTemplate]
}

// List returns all known templates, built-in styles and downloadable
// presentations alike, sorted by name.
func (p *Provider) List() []ports.TemplateInfo {
	titler := cases.Title(language.English)

	infos := make([]ports.TemplateInfo, 0, len(p.configs)+len(communityTemplates))
	for name := range p.configs {
		infos = append(infos, ports.TemplateInfo{
			Name:        name,
			DisplayName: titler.String(strings.ReplaceAll(name, "_", " ")),
			BuiltIn:     true,
		})
	}
	for name := range communityTemplates {
		infos = append(infos, ports.TemplateInfo{
			Name:        name,
			DisplayName: titler.String(strings.ReplaceAll(name, "_", " ")),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Fetch downloads a community template into destDir. The result is ""
// when the name is unknown or the download fails; an already downloaded
// file is reused.
func (p *Provider) Fetch(ctx context.Context, name, destDir string) (string, error) {
	url, ok := communityTemplates[name]
	if !ok {
		return "", nil
	}

	dest := filepath.Join(destDir, name+".pptx")
	if _, err := os.Stat(dest); err == nil {
		p.logger.Info("template already downloaded", slog.String("name", name))
		return dest, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building template request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("template download failed",
			slog.String("name", name), slog.String("error", err.Error()))
		return "", nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("template download failed",
			slog.String("name", name), slog.Int("status", resp.StatusCode))
		return "", nil
	}

	file, err := os.Create(dest) // #nosec G304 - dest is inside the request work dir
	if err != nil {
		return "", &entities.PersistenceError{Op: "creating template", Path: dest, Err: err}
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return "", &entities.PersistenceError{Op: "writing template", Path: dest, Err: err}
	}

	p.logger.Info("downloaded template",
		slog.String("name", name), slog.String("path", dest))
	return dest, nil
}
