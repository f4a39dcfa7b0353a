package pptx

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
	"github.com/slidesmith/slidesmith/internal/domain/ports"
)

// Assembler implements ports.DeckAssembler: it turns a validated deck
// into a saved .pptx document, rendering chart visuals through the
// chart renderer and representing diagrams as text previews.
type Assembler struct {
	charts    ports.ChartRenderer
	templates ports.TemplateProvider
	logger    *slog.Logger
}

// NewAssembler creates a deck assembler.
func NewAssembler(charts ports.ChartRenderer, templates ports.TemplateProvider, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{charts: charts, templates: templates, logger: logger}
}

// Assemble builds the presentation file in destDir and returns its path.
// A slide that fails to build is skipped; only a save failure fails the
// whole deck.
func (a *Assembler) Assemble(ctx context.Context, deck *entities.Deck, title, templateName, destDir string) (string, error) {
	cfg := a.templates.Config(templateName)
	prs := NewPresentation(title)

	for i := range deck.Slides {
		slide := &deck.Slides[i]
		if err := a.buildSlide(ctx, prs, slide, i, cfg, destDir); err != nil {
			a.logger.Warn("skipping slide",
				slog.Int("index", i),
				slog.String("title", slide.Title),
				slog.String("error", err.Error()))
		}
	}

	path := filepath.Join(destDir, entities.SafeFileName(title)+".pptx")
	if err := prs.WriteFile(path); err != nil {
		return "", &entities.PersistenceError{Op: "saving presentation", Path: path, Err: err}
	}

	a.logger.Info("presentation saved",
		slog.String("path", path), slog.Int("slides", len(prs.Slides())))
	return path, nil
}

// buildSlide adds one slide to the presentation. A panic while placing
// content is contained to the slide.
func (a *Assembler) buildSlide(ctx context.Context, prs *Presentation, slide *entities.Slide, index int, cfg entities.TemplateConfig, destDir string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("building slide: %v", r)
		}
	}()

	role := layoutRole(slide, index)
	target := prs.AddSlide(cfg.LayoutIndex(role, len(prs.Layouts())))

	a.placeTitle(target, slide, cfg)
	a.placeContent(target, slide, cfg)
	a.placeVisuals(ctx, target, slide, cfg, destDir)

	return nil
}

// layoutRole picks the logical layout for a slide. The first slide is
// always the title slide; chart and diagram slides get a blank canvas,
// comparisons a two-column layout, and visual-only slides a blank one.
func layoutRole(slide *entities.Slide, index int) entities.LayoutRole {
	switch {
	case index == 0:
		return entities.RoleTitleSlide
	case slide.Type == entities.TypeChart || slide.Type == entities.TypeDiagram:
		return entities.RoleBlank
	case strings.Contains(strings.ToLower(slide.Title), "comparison"):
		return entities.RoleTwoColumn
	case len(slide.Visuals) > 0 && len(slide.Content) == 0:
		return entities.RoleBlank
	default:
		return entities.RoleContentSlide
	}
}

// placeTitle writes the slide title into the layout's title region, or a
// free text box near the top when the layout offers none.
func (a *Assembler) placeTitle(target *Slide, slide *entities.Slide, cfg entities.TemplateConfig) {
	ph, ok := target.Layout().TitlePlaceholder()
	if !ok {
		ph = Placeholder{X: Inches(0.5), Y: Inches(0.3), W: Inches(9), H: Inches(1)}
	}

	box := target.AddTextBox(ph.X, ph.Y, ph.W, ph.H)
	box.AddParagraph(slide.Title, TextStyle{
		Font:  cfg.FontFamily,
		Size:  cfg.TitleFontSize,
		Color: cfg.Color(entities.ColorTitle),
	})
	target.MarkTitle(box)
}

// placeContent distributes the bullet lines. Comparison slides with a
// left and right region alternate bullets between the two columns;
// everything else flows into a single body frame.
func (a *Assembler) placeContent(target *Slide, slide *entities.Slide, cfg entities.TemplateConfig) {
	if len(slide.Content) == 0 {
		return
	}

	style := TextStyle{
		Font:  cfg.FontFamily,
		Size:  cfg.BodyFontSize,
		Color: cfg.Color(entities.ColorBody),
	}

	layout := target.Layout()
	if slide.Type == entities.TypeComparison && len(layout.Placeholders) >= 3 {
		left, lok := layout.Placeholder(PlaceholderLeft)
		right, rok := layout.Placeholder(PlaceholderRight)
		if lok && rok {
			leftBox := target.AddTextBox(left.X, left.Y, left.W, left.H)
			rightBox := target.AddTextBox(right.X, right.Y, right.W, right.H)
			for i, line := range slide.Content {
				if i%2 == 0 {
					leftBox.AddParagraph("• "+line, style)
				} else {
					rightBox.AddParagraph("• "+line, style)
				}
			}
			return
		}
	}

	body := a.bodyTarget(target)
	for _, line := range slide.Content {
		body.AddParagraph("• "+line, style)
	}
}

// bodyTarget finds where bullet content belongs: the layout's body
// region first, then any non-title region, then an existing non-title
// box, and finally a synthesized frame.
func (a *Assembler) bodyTarget(target *Slide) *TextBox {
	layout := target.Layout()

	if ph, ok := layout.Placeholder(PlaceholderBody); ok {
		return target.AddTextBox(ph.X, ph.Y, ph.W, ph.H)
	}
	if ph, ok := layout.FirstNonTitle(); ok {
		return target.AddTextBox(ph.X, ph.Y, ph.W, ph.H)
	}
	if box := target.FirstNonTitleBox(); box != nil {
		return box
	}
	return target.AddTextBox(Inches(0.5), Inches(1.75), Inches(9), Inches(4.9))
}

// placeVisuals renders each visual onto the slide. Vega-Lite JSON
// becomes a chart image, mermaid a source preview; plain JSON, plantuml
// and latex have no renderer and are carried only in the deck JSON.
func (a *Assembler) placeVisuals(ctx context.Context, target *Slide, slide *entities.Slide, cfg entities.TemplateConfig, destDir string) {
	for _, visual := range slide.Visuals {
		switch {
		case visual.Lang == entities.LangJSON && isVegaSpec(visual.Code):
			a.placeChart(ctx, target, slide, visual, destDir)
		case visual.Lang == entities.LangMermaid:
			placeDiagramPreview(target, visual, cfg)
		}
	}
}

// isVegaSpec reports whether a JSON visual names vega, the only JSON
// dialect the chart renderer understands.
func isVegaSpec(code string) bool {
	return strings.Contains(strings.ToLower(code), "vega")
}

// placeChart renders a chart image and embeds it with the slide's alt
// text. Render and embed failures lose the visual, not the slide.
func (a *Assembler) placeChart(ctx context.Context, target *Slide, slide *entities.Slide, visual entities.Visual, destDir string) {
	imagePath, err := a.charts.Render(ctx, visual.Code, destDir)
	if err != nil {
		a.logger.Warn("chart rendering failed",
			slog.String("slide", slide.Title), slog.String("error", err.Error()))
		return
	}

	altText, _ := slide.FirstAltText()
	if err := target.AddPicture(imagePath, Inches(3), Inches(2), Inches(4), altText); err != nil {
		a.logger.Warn("embedding chart failed",
			slog.String("slide", slide.Title), slog.String("error", err.Error()))
	}
}

// placeDiagramPreview represents a mermaid diagram as a truncated source
// listing.
func placeDiagramPreview(target *Slide, visual entities.Visual, cfg entities.TemplateConfig) {
	preview := visual.Code
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}

	box := target.AddTextBox(Inches(3), Inches(2), Inches(4), Inches(2))
	box.AddParagraph("Mermaid Diagram:", TextStyle{
		Font:  cfg.FontFamily,
		Size:  12,
		Color: cfg.Color(entities.ColorBody),
	})
	box.AddParagraph(preview, TextStyle{
		Font:  cfg.FontFamily,
		Size:  12,
		Color: cfg.Color(entities.ColorBody),
	})
}
