package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

const (
	// maxChartPoints caps embedded chart datasets; an oversized chart is
	// worse than no chart and is removed outright.
	maxChartPoints = 50

	// maxDiagramArrows is the complexity threshold above which a diagram
	// gets a splitting suggestion. Counting "->" and "-->>" substrings is
	// an approximate proxy for edge count, not a true graph measure: it
	// can overcount arrows inside quoted labels and undercount other
	// diagram syntaxes.
	maxDiagramArrows = 10
)

const complexDiagramNote = "Consider splitting complex diagram across multiple slides"

// DeckValidator post-processes a parsed deck: it guarantees the total
// slide shape, drops invalid or oversized visuals, and annotates slides
// whose diagrams are too complex. Diagrams degrade gracefully; charts do
// not.
type DeckValidator struct {
	logger *slog.Logger
}

// NewDeckValidator creates a deck validator.
func NewDeckValidator(logger *slog.Logger) *DeckValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckValidator{logger: logger}
}

// Validate repairs the deck in place. A failure on one slide is contained
// to that slide and recorded as an appended note; the rest of the deck is
// always processed.
func (v *DeckValidator) Validate(deck *entities.Deck) {
	for i := range deck.Slides {
		slide := &deck.Slides[i]
		slide.EnsureShape()

		if err := v.validateSlide(slide); err != nil {
			v.logger.Error("slide validation failed",
				slog.String("slide", slide.Title), slog.String("error", err.Error()))
			slide.Notes = append(slide.Notes, "Validation error: "+err.Error())
		}
	}
}

func (v *DeckValidator) validateSlide(slide *entities.Slide) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validating visuals: %v", r)
		}
	}()

	// Compute the removal set first, then remove back to front so the
	// indices of not-yet-processed visuals stay stable.
	var remove []int

	for i, visual := range slide.Visuals {
		switch {
		case visual.Lang == entities.LangJSON && containsVega(visual.Code):
			if !chartDataWithinLimit(visual.Code) {
				v.logger.Warn("removing invalid or oversized chart",
					slog.String("slide", slide.Title))
				remove = append(remove, i)
			}

		case visual.Lang == entities.LangMermaid || visual.Lang == entities.LangPlantUML:
			if arrowCount(visual.Code) > maxDiagramArrows {
				v.logger.Warn("diagram too complex",
					slog.String("slide", slide.Title), slog.String("lang", string(visual.Lang)))
				slide.Notes = append(slide.Notes, complexDiagramNote)
			}

		case visual.Lang == entities.LangPython:
			// Executable code is never an acceptable visual.
			v.logger.Warn("removing python code block",
				slog.String("slide", slide.Title))
			remove = append(remove, i)
		}
	}

	for j := len(remove) - 1; j >= 0; j-- {
		i := remove[j]
		slide.Visuals = append(slide.Visuals[:i], slide.Visuals[i+1:]...)
	}

	return nil
}

func containsVega(code string) bool {
	return strings.Contains(strings.ToLower(code), "vega")
}

// chartDataWithinLimit reports whether the chart spec parses as JSON,
// carries a data.values array, and stays within the dataset cap.
func chartDataWithinLimit(code string) bool {
	var spec map[string]any
	if err := json.Unmarshal([]byte(code), &spec); err != nil {
		return false
	}

	data, ok := spec["data"].(map[string]any)
	if !ok {
		return false
	}

	values, ok := data["values"].([]any)
	if !ok {
		return false
	}

	return len(values) <= maxChartPoints
}

// arrowCount approximates diagram complexity by counting transition
// arrows in the source.
func arrowCount(code string) int {
	return strings.Count(code, "->") + strings.Count(code, "-->>")
}
