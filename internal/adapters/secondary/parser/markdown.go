package parser

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
	"github.com/slidesmith/slidesmith/internal/domain/ports"
)

// Field markers of the deck authoring convention. Matching is an exact,
// case-sensitive prefix check on the literal marker text.
const (
	markerTitle      = "**Title:**"
	markerBody       = "**Body:**"
	markerVisual     = "**Visual:**"
	markerAltText    = "**Alt Text:**"
	markerNotes      = "**Slide Notes:**"
	markerEngagement = "**Engagement Techniques:**"
)

// Parse-time size guards for fenced code blocks.
const (
	maxVisualChars  = 5000
	maxMermaidLines = 20
)

// bucket is the parser cursor: the target sequence for incoming content.
type bucket int

const (
	bucketNone bucket = iota
	bucketTitle
	bucketContent
	bucketVisuals
	bucketNotes
	bucketEngagement
	bucketAltText
)

// deckState is the accumulator threaded through the document walk:
// the deck built so far, the slide in progress, and the cursor.
type deckState struct {
	slides  []entities.Slide
	current *entities.Slide
	cursor  bucket
}

// open flushes the slide in progress and starts a fresh one with the
// cursor on the title.
func (st *deckState) open() {
	st.flush()
	s := entities.NewSlide()
	st.current = &s
	st.cursor = bucketTitle
}

// flush pushes the in-progress slide, if any, onto the deck.
func (st *deckState) flush() {
	if st.current != nil {
		st.slides = append(st.slides, *st.current)
		st.current = nil
	}
	st.cursor = bucketNone
}

// MarkdownDeckParser extracts slide structure from semi-free-form model
// output using Goldmark. It recognizes exactly one authoring convention:
// "Slide N" level-1 headings, bolded field markers, list items and fenced
// code blocks; anything else is lossy by design.
type MarkdownDeckParser struct {
	md        goldmark.Markdown
	sanitizer ports.Sanitizer
	logger    *slog.Logger
}

// NewMarkdownDeckParser creates a deck parser. The sanitizer is applied
// to every heading, paragraph, list item and code block before it enters
// a slide.
func NewMarkdownDeckParser(sanitizer ports.Sanitizer, logger *slog.Logger) *MarkdownDeckParser {
	if logger == nil {
		logger = slog.Default()
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	return &MarkdownDeckParser{md: md, sanitizer: sanitizer, logger: logger}
}

// Parse converts markdown text into a deck. A document without a single
// "Slide N" heading is a hard failure.
func (p *MarkdownDeckParser) Parse(ctx context.Context, markdown string) (*entities.Deck, error) {
	source := []byte(markdown)
	doc := p.md.Parser().Parse(text.NewReader(source))

	st := &deckState{}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			p.handleHeading(st, node, source)
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if insideListItem(node) {
				return ast.WalkContinue, nil
			}
			p.handleParagraph(st, node, source)
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			p.handleListItem(st, node, source)
			return ast.WalkContinue, nil
		case *ast.FencedCodeBlock:
			p.handleCodeBlock(st, node, source)
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	st.flush()

	if len(st.slides) == 0 {
		p.logger.Warn("no slides parsed from markdown")
		return nil, &entities.ParseError{Msg: "no slides found"}
	}

	return &entities.Deck{Slides: st.slides}, nil
}

// handleHeading opens a new slide on every level-1 "Slide N" heading.
// All other headings carry no meaning in the convention.
func (p *MarkdownDeckParser) handleHeading(st *deckState, node *ast.Heading, source []byte) {
	if node.Level != 1 {
		return
	}

	title := p.sanitizer.Strip(strings.Join(rawLines(node, source), " "))
	if strings.HasPrefix(title, "Slide ") {
		st.open()
	}
}

// handleParagraph dispatches each paragraph line through the marker
// rules. The authoring convention uses hard line breaks to stack several
// markers inside one paragraph, so dispatch is per line rather than per
// block.
func (p *MarkdownDeckParser) handleParagraph(st *deckState, node *ast.Paragraph, source []byte) {
	if st.current == nil {
		return
	}
	for _, line := range rawLines(node, source) {
		p.dispatchLine(st, p.sanitizer.Strip(line))
	}
}

func (p *MarkdownDeckParser) dispatchLine(st *deckState, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	switch {
	case strings.HasPrefix(line, markerTitle):
		// One-shot assignment; the cursor stays wherever it was.
		title := strings.TrimSpace(strings.TrimPrefix(line, markerTitle))
		st.current.Title = title
		if st.current.Type == entities.TypeStandard &&
			strings.Contains(strings.ToLower(title), "comparison") {
			st.current.Type = entities.TypeComparison
		}

	case strings.HasPrefix(line, markerBody):
		st.cursor = bucketContent

	case strings.HasPrefix(line, markerVisual):
		st.cursor = bucketVisuals
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "vega"):
			st.current.Type = entities.TypeChart
		case strings.Contains(lower, "mermaid"):
			st.current.Type = entities.TypeDiagram
		}

	case strings.HasPrefix(line, markerAltText):
		// Unlike the other markers, Alt Text carries inline content.
		st.cursor = bucketAltText
		st.current.AltText = append(st.current.AltText,
			strings.TrimSpace(strings.TrimPrefix(line, markerAltText)))

	case strings.HasPrefix(line, markerNotes):
		st.cursor = bucketNotes

	case strings.HasPrefix(line, markerEngagement):
		st.cursor = bucketEngagement

	default:
		// Free paragraphs accumulate only under notes and engagement;
		// everywhere else they are dropped.
		switch st.cursor {
		case bucketNotes:
			st.current.Notes = append(st.current.Notes, line)
		case bucketEngagement:
			st.current.Engagement = append(st.current.Engagement, line)
		}
	}
}

// handleListItem appends bullet text to the slide body. List items are
// only meaningful as body content; under any other cursor they are
// dropped.
func (p *MarkdownDeckParser) handleListItem(st *deckState, node *ast.ListItem, source []byte) {
	if st.current == nil || st.cursor != bucketContent {
		return
	}

	if item := p.sanitizer.Strip(listItemText(node, source)); item != "" {
		st.current.Content = append(st.current.Content, item)
	}
}

// handleCodeBlock stores fenced code blocks as visuals when the cursor is
// on visuals and the language tag is one of the accepted set, subject to
// the parse-time size guards.
func (p *MarkdownDeckParser) handleCodeBlock(st *deckState, node *ast.FencedCodeBlock, source []byte) {
	if st.current == nil || st.cursor != bucketVisuals {
		return
	}

	lang := entities.VisualLang(node.Language(source))
	switch lang {
	case entities.LangJSON, entities.LangMermaid, entities.LangPlantUML, entities.LangLaTeX:
	default:
		p.logger.Warn("unsupported code block language", slog.String("lang", string(lang)))
		return
	}

	code := p.sanitizer.Strip(rawBlock(node, source))

	if len(code) > maxVisualChars {
		p.logger.Warn("code block exceeds size ceiling",
			slog.String("lang", string(lang)), slog.Int("chars", len(code)))
		return
	}

	if lang == entities.LangMermaid && strings.Count(code, "\n")+1 > maxMermaidLines {
		p.logger.Warn("mermaid diagram too complex",
			slog.Int("lines", strings.Count(code, "\n")+1))
		return
	}

	st.current.Visuals = append(st.current.Visuals, entities.Visual{Code: code, Lang: lang})
}

// rawLines returns the node's source lines with line endings trimmed.
// Taking the raw source segment, rather than rendered inline text, keeps
// the literal bold markers available for prefix matching.
func rawLines(n ast.Node, source []byte) []string {
	lines := n.Lines()
	out := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, string(bytes.TrimRight(seg.Value(source), "\r\n")))
	}
	return out
}

// rawBlock joins a block node's source lines preserving interior
// newlines, without the trailing fence newline.
func rawBlock(n ast.Node, source []byte) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}

// listItemText extracts the text of a list item's first text block.
func listItemText(n ast.Node, source []byte) string {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if lines := c.Lines(); lines != nil && lines.Len() > 0 {
			return strings.TrimSpace(strings.Join(rawLines(c, source), " "))
		}
	}
	return ""
}

// insideListItem reports whether the node is nested in a list item.
func insideListItem(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.ListItem); ok {
			return true
		}
	}
	return false
}
