package entities

import "strings"

// SlideType classifies a slide for layout selection.
type SlideType string

const (
	TypeStandard   SlideType = "standard"
	TypeChart      SlideType = "chart"
	TypeDiagram    SlideType = "diagram"
	TypeComparison SlideType = "comparison"
)

// VisualLang identifies the source language of an embedded visual.
type VisualLang string

const (
	LangJSON     VisualLang = "json"
	LangMermaid  VisualLang = "mermaid"
	LangPlantUML VisualLang = "plantuml"
	LangLaTeX    VisualLang = "latex"
	LangText     VisualLang = "text"

	// LangPython never survives parsing; it exists so the validator can
	// enforce the no-executable-code boundary on decks built elsewhere.
	LangPython VisualLang = "python"
)

// Accepted reports whether the language is allowed in a rendered deck.
func (l VisualLang) Accepted() bool {
	switch l {
	case LangJSON, LangMermaid, LangPlantUML, LangLaTeX, LangText:
		return true
	}
	return false
}

// Visual is an embedded chart or diagram specification tagged with its
// source language.
type Visual struct {
	Code string     `json:"code"`
	Lang VisualLang `json:"lang"`
}

// Slide is the structured record of one presentation page. It is mutable
// during parsing and validation; the assembler treats it as read-only.
type Slide struct {
	Title      string    `json:"title"`
	Content    []string  `json:"content"`
	Visuals    []Visual  `json:"visuals"`
	Notes      []string  `json:"notes"`
	Engagement []string  `json:"engagement"`
	AltText    []string  `json:"alt_text"`
	Type       SlideType `json:"type"`
}

// NewSlide returns an empty slide with all sequences initialized, so the
// JSON form always carries arrays rather than nulls.
func NewSlide() Slide {
	return Slide{
		Content:    []string{},
		Visuals:    []Visual{},
		Notes:      []string{},
		Engagement: []string{},
		AltText:    []string{},
		Type:       TypeStandard,
	}
}

// EnsureShape guarantees the total slide shape the assembler relies on:
// every sequence non-nil and the type defaulted.
func (s *Slide) EnsureShape() {
	if s.Content == nil {
		s.Content = []string{}
	}
	if s.Visuals == nil {
		s.Visuals = []Visual{}
	}
	if s.Notes == nil {
		s.Notes = []string{}
	}
	if s.Engagement == nil {
		s.Engagement = []string{}
	}
	if s.AltText == nil {
		s.AltText = []string{}
	}
	if s.Type == "" {
		s.Type = TypeStandard
	}
}

// FirstAltText returns the first accessibility description, if any.
func (s *Slide) FirstAltText() (string, bool) {
	if len(s.AltText) == 0 {
		return "", false
	}
	return s.AltText[0], true
}

// Deck is an ordered sequence of slides produced from one markdown document.
type Deck struct {
	Slides []Slide `json:"slides"`
}

// Validate ensures the deck holds at least one slide. Empty decks are a
// hard failure for the whole request.
func (d *Deck) Validate() error {
	if len(d.Slides) == 0 {
		return &ParseError{Msg: "no slides found"}
	}
	return nil
}

// SafeFileName derives a filesystem-safe stem from a deck topic: spaces
// become underscores and anything outside [A-Za-z0-9._-] is replaced.
func SafeFileName(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "deck"
	}
	var b strings.Builder
	for _, r := range topic {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
