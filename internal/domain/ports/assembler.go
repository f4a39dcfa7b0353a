package ports

import (
	"context"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

// DeckAssembler maps a validated deck onto a presentation document.
// Failures on individual slides are contained by the implementation; a
// failure to save the document is fatal and propagates.
type DeckAssembler interface {
	Assemble(ctx context.Context, deck *entities.Deck, title, templateName, destDir string) (string, error)
}
