// Package builders provides fluent test-data builders for deck entities.
package builders

import (
	"strconv"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

// DeckBuilder helps build Deck entities for testing
type DeckBuilder struct {
	deck *entities.Deck
}

// NewDeckBuilder creates a new deck builder with no slides
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{deck: &entities.Deck{Slides: []entities.Slide{}}}
}

// WithSlide adds a single slide to the deck
func (b *DeckBuilder) WithSlide(slide entities.Slide) *DeckBuilder {
	b.deck.Slides = append(b.deck.Slides, slide)
	return b
}

// WithSlideCount adds the specified number of default slides
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	for i := 0; i < count; i++ {
		slide := NewSlideBuilder().
			WithTitle("Slide " + strconv.Itoa(i+1)).
			WithContent("Point A", "Point B").
			Build()
		b.deck.Slides = append(b.deck.Slides, slide)
	}
	return b
}

// Build creates the final Deck entity
func (b *DeckBuilder) Build() *entities.Deck {
	return &entities.Deck{Slides: append([]entities.Slide{}, b.deck.Slides...)}
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates a new slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	slide := entities.NewSlide()
	slide.Title = "Test Slide"
	return &SlideBuilder{slide: slide}
}

// WithTitle sets the slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	return b
}

// WithContent sets the slide bullet lines
func (b *SlideBuilder) WithContent(lines ...string) *SlideBuilder {
	b.slide.Content = append([]string{}, lines...)
	return b
}

// WithVisual adds a visual with the given language
func (b *SlideBuilder) WithVisual(lang entities.VisualLang, code string) *SlideBuilder {
	b.slide.Visuals = append(b.slide.Visuals, entities.Visual{Code: code, Lang: lang})
	return b
}

// WithNotes sets the slide speaker notes
func (b *SlideBuilder) WithNotes(notes ...string) *SlideBuilder {
	b.slide.Notes = append([]string{}, notes...)
	return b
}

// WithAltText adds an accessibility description
func (b *SlideBuilder) WithAltText(text string) *SlideBuilder {
	b.slide.AltText = append(b.slide.AltText, text)
	return b
}

// WithType sets the slide type
func (b *SlideBuilder) WithType(t entities.SlideType) *SlideBuilder {
	b.slide.Type = t
	return b
}

// Build creates the final Slide entity
func (b *SlideBuilder) Build() entities.Slide {
	slide := b.slide
	slide.Content = append([]string{}, b.slide.Content...)
	slide.Visuals = append([]entities.Visual{}, b.slide.Visuals...)
	slide.Notes = append([]string{}, b.slide.Notes...)
	slide.Engagement = append([]string{}, b.slide.Engagement...)
	slide.AltText = append([]string{}, b.slide.AltText...)
	return slide
}

// InputBuilder helps build SlideInput entities for testing
type InputBuilder struct {
	input entities.SlideInput
}

// NewInputBuilder creates an input builder with defaults applied
func NewInputBuilder() *InputBuilder {
	input := entities.NewSlideInput()
	input.ApplyDefaults()
	return &InputBuilder{input: input}
}

// WithTopic sets the deck topic
func (b *InputBuilder) WithTopic(topic string) *InputBuilder {
	b.input.Topic = topic
	return b
}

// WithAudience sets the target audience
func (b *InputBuilder) WithAudience(audience string) *InputBuilder {
	b.input.Audience = audience
	return b
}

// WithTemplate sets the template name
func (b *InputBuilder) WithTemplate(template string) *InputBuilder {
	b.input.Template = template
	return b
}

// Build creates the final SlideInput entity
func (b *InputBuilder) Build() entities.SlideInput {
	return b.input
}

// Common decks for testing

// MinimalDeck creates a one-slide deck for basic tests
func MinimalDeck() *entities.Deck {
	return NewDeckBuilder().WithSlideCount(1).Build()
}

// ChartDeck creates a deck whose second slide carries a Vega-Lite chart
func ChartDeck(spec string) *entities.Deck {
	return NewDeckBuilder().
		WithSlide(NewSlideBuilder().WithTitle("Overview").WithContent("Intro").Build()).
		WithSlide(NewSlideBuilder().
			WithTitle("Revenue").
			WithVisual(entities.LangJSON, spec).
			WithType(entities.TypeChart).
			Build()).
		Build()
}
