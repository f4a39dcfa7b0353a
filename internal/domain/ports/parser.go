package ports

import (
	"context"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

// DeckParser consumes markdown text following the deck authoring
// convention and produces an ordered sequence of slides.
type DeckParser interface {
	// Parse returns a deck with at least one slide, or a ParseError when
	// the document contains no slide headings.
	Parse(ctx context.Context, markdown string) (*entities.Deck, error)
}
