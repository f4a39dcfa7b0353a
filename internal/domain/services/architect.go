package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
	"github.com/slidesmith/slidesmith/internal/domain/ports"
)

// toneStyle pairs the tone and style defaults derived from an audience.
type toneStyle struct {
	tone  string
	style string
}

// audienceDefaults maps well-known audiences to tone and style choices
// applied when a request leaves them unspecified.
var audienceDefaults = []struct {
	audience string
	settings toneStyle
}{
	{"Executives", toneStyle{"Formal", "Clean & minimal"}},
	{"Investors", toneStyle{"Investor-facing", "Clean & minimal"}},
	{"Sales Team", toneStyle{"Energetic", "Bold & colorful"}},
	{"Developers/Engineers", toneStyle{"Technical", "Data-driven"}},
	{"Internal Training", toneStyle{"Energetic", "Visual-first"}},
}

// DeckResult carries everything a deck request produces: the markdown
// source, the structured deck, and the persisted artifact paths.
type DeckResult struct {
	Markdown     string         `json:"markdown"`
	Deck         *entities.Deck `json:"json"`
	PPTXFile     string         `json:"pptx_file"`
	MarkdownFile string         `json:"md_file"`
	JSONFile     string         `json:"json_file"`
}

// Architect orchestrates one deck request end to end: prompt assembly,
// model call (or offline template), parsing, validation, assembly and
// artifact persistence. Each instance owns a private work directory, so
// concurrent requests never share state.
type Architect struct {
	parser    ports.DeckParser
	validator *DeckValidator
	assembler ports.DeckAssembler
	templates ports.TemplateProvider
	sanitizer ports.Sanitizer
	workDir   string
	logger    *slog.Logger
}

// NewArchitect creates an architect with an isolated work directory
// beneath root (or $SLIDE_WORK_DIR, or the system temp dir). Failure to
// set up a writable work area is fatal for the request.
func NewArchitect(
	parser ports.DeckParser,
	validator *DeckValidator,
	assembler ports.DeckAssembler,
	templates ports.TemplateProvider,
	sanitizer ports.Sanitizer,
	root string,
	logger *slog.Logger,
) (*Architect, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if root == "" {
		root = os.Getenv("SLIDE_WORK_DIR")
	}
	if root == "" {
		root = os.TempDir()
	}

	workDir := filepath.Join(root, "slidesmith-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o750); err != nil {
		return nil, &entities.PersistenceError{Op: "creating work dir", Path: workDir, Err: err}
	}

	return &Architect{
		parser:    parser,
		validator: validator,
		assembler: assembler,
		templates: templates,
		sanitizer: sanitizer,
		workDir:   workDir,
		logger:    logger,
	}, nil
}

// WorkDir returns the request's private artifact directory.
func (a *Architect) WorkDir() string { return a.workDir }

// GenerateDeck runs the full pipeline for one request. A nil generator
// selects the offline template; model failures fall back to it as well.
func (a *Architect) GenerateDeck(ctx context.Context, input entities.SlideInput, gen ports.TextGenerator) (*DeckResult, error) {
	markdown := a.generateMarkdown(ctx, input, gen)

	deck, err := a.parser.Parse(ctx, markdown)
	if err != nil {
		return nil, fmt.Errorf("generating deck: %w", err)
	}

	a.validator.Validate(deck)

	// Community templates are fetched as a styling artifact when the
	// request names one; built-in names are simply not in the catalog.
	if path, _ := a.templates.Fetch(ctx, input.Template, a.workDir); path != "" {
		a.logger.Info("fetched presentation template", slog.String("path", path))
	}

	pptxFile, err := a.assembler.Assemble(ctx, deck, input.Topic, input.Template, a.workDir)
	if err != nil {
		return nil, fmt.Errorf("assembling deck: %w", err)
	}

	mdFile, jsonFile, err := a.persist(markdown, deck, input.Topic)
	if err != nil {
		return nil, err
	}

	a.logger.Info("deck generated",
		slog.String("topic", input.Topic), slog.Int("slides", len(deck.Slides)))

	return &DeckResult{
		Markdown:     markdown,
		Deck:         deck,
		PPTXFile:     pptxFile,
		MarkdownFile: mdFile,
		JSONFile:     jsonFile,
	}, nil
}

// generateMarkdown obtains the deck markdown from the model, falling
// back to the offline template on any adapter failure or oversized
// response.
func (a *Architect) generateMarkdown(ctx context.Context, input entities.SlideInput, gen ports.TextGenerator) string {
	if gen == nil {
		return offlineMarkdown(input)
	}

	tone, style := resolveToneStyle(input)
	prompt := deckPrompt + "\n\n" + userPrompt(input, tone, style)

	output, err := gen.Generate(ctx, prompt)
	if err != nil {
		a.logger.Warn("model call failed, using offline template",
			slog.String("error", err.Error()))
		return offlineMarkdown(input)
	}

	if len(output) > entities.MaxModelOutputChars {
		a.logger.Warn("model response too large, using offline template",
			slog.Int("chars", len(output)))
		return offlineMarkdown(input)
	}

	return a.sanitizer.StripKeepingCode(output)
}

// persist writes the markdown source verbatim and the structured deck as
// JSON next to the presentation file.
func (a *Architect) persist(markdown string, deck *entities.Deck, topic string) (string, string, error) {
	stem := entities.SafeFileName(topic)

	mdFile := filepath.Join(a.workDir, stem+".md")
	if err := os.WriteFile(mdFile, []byte(markdown), 0o600); err != nil {
		return "", "", &entities.PersistenceError{Op: "writing markdown", Path: mdFile, Err: err}
	}

	payload, err := json.MarshalIndent(deck, "", "  ")
	if err != nil {
		return "", "", &entities.PersistenceError{Op: "encoding deck", Path: stem + ".json", Err: err}
	}

	jsonFile := filepath.Join(a.workDir, stem+".json")
	if err := os.WriteFile(jsonFile, payload, 0o600); err != nil {
		return "", "", &entities.PersistenceError{Op: "writing deck", Path: jsonFile, Err: err}
	}

	return mdFile, jsonFile, nil
}

// resolveToneStyle fills unspecified tone and style from the audience
// defaults, with a professional fallback.
func resolveToneStyle(input entities.SlideInput) (string, string) {
	tone, style := input.Tone, input.Style
	if tone != "" && style != "" {
		return tone, style
	}

	lower := strings.ToLower(input.Audience)
	for _, d := range audienceDefaults {
		if strings.Contains(lower, strings.ToLower(d.audience)) {
			if tone == "" {
				tone = d.settings.tone
			}
			if style == "" {
				style = d.settings.style
			}
			break
		}
	}

	if tone == "" {
		tone = "Professional"
	}
	if style == "" {
		style = "Clean & minimal"
	}

	return tone, style
}
