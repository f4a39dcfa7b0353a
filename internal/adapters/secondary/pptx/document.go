// Package pptx builds PowerPoint (.pptx) documents from structured deck
// data. PPTX files are ZIP archives of OOXML parts; the writer emits the
// minimal part set (presentation, master, layouts, slides, theme, media)
// directly, with no dependency on an Office installation.
package pptx

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

// emuPerInch is the OOXML English Metric Unit density.
const emuPerInch = 914400

// Inches converts inches to EMU coordinates.
func Inches(in float64) int64 { return int64(in * emuPerInch) }

// Slide dimensions (10 x 7.5 inches, the classic 4:3 canvas).
const (
	slideWidthEMU  = 10 * emuPerInch
	slideHeightEMU = 7*emuPerInch + emuPerInch/2
)

// PlaceholderKind tags the role of a layout region.
type PlaceholderKind int

const (
	PlaceholderTitle PlaceholderKind = iota
	PlaceholderSubtitle
	PlaceholderBody
	PlaceholderLeft
	PlaceholderRight
)

// Placeholder is an addressable region a layout offers for content.
type Placeholder struct {
	Kind PlaceholderKind
	X    int64
	Y    int64
	W    int64
	H    int64
}

// Layout describes one slide layout of the presentation master.
type Layout struct {
	Name         string
	Placeholders []Placeholder
}

// TitlePlaceholder returns the layout's title region, if it has one.
func (l Layout) TitlePlaceholder() (Placeholder, bool) {
	return l.Placeholder(PlaceholderTitle)
}

// Placeholder returns the first region of the given kind.
func (l Layout) Placeholder(kind PlaceholderKind) (Placeholder, bool) {
	for _, ph := range l.Placeholders {
		if ph.Kind == kind {
			return ph, true
		}
	}
	return Placeholder{}, false
}

// FirstNonTitle returns the first region that is not the title.
func (l Layout) FirstNonTitle() (Placeholder, bool) {
	for _, ph := range l.Placeholders {
		if ph.Kind != PlaceholderTitle {
			return ph, true
		}
	}
	return Placeholder{}, false
}

// defaultLayouts mirrors the layout order of the stock PowerPoint
// master, so template layout indices (title 0, content 1, two-column 3,
// blank 6) resolve to the expected shapes.
func defaultLayouts() []Layout {
	title := Placeholder{Kind: PlaceholderTitle, X: Inches(0.5), Y: Inches(0.3), W: Inches(9), H: Inches(1.25)}
	body := Placeholder{Kind: PlaceholderBody, X: Inches(0.5), Y: Inches(1.75), W: Inches(9), H: Inches(4.9)}
	left := Placeholder{Kind: PlaceholderLeft, X: Inches(0.5), Y: Inches(1.75), W: Inches(4.4), H: Inches(4.9)}
	right := Placeholder{Kind: PlaceholderRight, X: Inches(5.1), Y: Inches(1.75), W: Inches(4.4), H: Inches(4.9)}

	return []Layout{
		{Name: "Title Slide", Placeholders: []Placeholder{
			{Kind: PlaceholderTitle, X: Inches(0.5), Y: Inches(2.3), W: Inches(9), H: Inches(1.5)},
			{Kind: PlaceholderSubtitle, X: Inches(0.5), Y: Inches(4.0), W: Inches(9), H: Inches(1.0)},
		}},
		{Name: "Title and Content", Placeholders: []Placeholder{title, body}},
		{Name: "Section Header", Placeholders: []Placeholder{
			{Kind: PlaceholderTitle, X: Inches(0.5), Y: Inches(2.3), W: Inches(9), H: Inches(1.5)},
		}},
		{Name: "Two Content", Placeholders: []Placeholder{title, left, right}},
		{Name: "Comparison", Placeholders: []Placeholder{title, left, right}},
		{Name: "Title Only", Placeholders: []Placeholder{title}},
		{Name: "Blank"},
	}
}

// TextStyle carries the font choices applied to a paragraph.
type TextStyle struct {
	Font  string
	Size  int
	Color entities.RGB
}

// Paragraph is one styled line of text inside a text box.
type Paragraph struct {
	Text  string
	Style TextStyle
}

// TextBox is a positioned text frame on a slide.
type TextBox struct {
	X, Y, W, H int64
	Paragraphs []Paragraph
}

// AddParagraph appends a styled paragraph to the box.
func (t *TextBox) AddParagraph(text string, style TextStyle) *TextBox {
	t.Paragraphs = append(t.Paragraphs, Paragraph{Text: text, Style: style})
	return t
}

// Picture is a positioned raster image on a slide. AltText becomes the
// image's accessibility description.
type Picture struct {
	X, Y, W, H int64
	AltText    string
	data       []byte
}

// Slide is one page of the document under construction.
type Slide struct {
	layout   Layout
	boxes    []*TextBox
	titleBox *TextBox
	pictures []*Picture
}

// Layout returns the layout the slide was created from.
func (s *Slide) Layout() Layout { return s.layout }

// AddTextBox places an empty text frame at the given EMU coordinates.
func (s *Slide) AddTextBox(x, y, w, h int64) *TextBox {
	box := &TextBox{X: x, Y: y, W: w, H: h}
	s.boxes = append(s.boxes, box)
	return box
}

// MarkTitle records which box holds the slide title, so body placement
// can avoid writing into it.
func (s *Slide) MarkTitle(box *TextBox) { s.titleBox = box }

// FirstNonTitleBox returns the first existing text frame that is not the
// title box, if any.
func (s *Slide) FirstNonTitleBox() *TextBox {
	for _, box := range s.boxes {
		if box != s.titleBox {
			return box
		}
	}
	return nil
}

// AddPicture reads an image file and places it at the given position.
// The height is derived from the image's aspect ratio; undecodable
// images fall back to a 4:3 box.
func (s *Slide) AddPicture(path string, x, y, w int64, altText string) error {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the request work dir
	if err != nil {
		return fmt.Errorf("reading image %s: %w", path, err)
	}

	h := w * 3 / 4
	if cfg, err := png.DecodeConfig(bytes.NewReader(data)); err == nil && cfg.Width > 0 {
		h = w * int64(cfg.Height) / int64(cfg.Width)
	}

	s.pictures = append(s.pictures, &Picture{X: x, Y: y, W: w, H: h, AltText: altText, data: data})
	return nil
}

// Presentation is a pptx document under construction.
type Presentation struct {
	title   string
	layouts []Layout
	slides  []*Slide
}

// NewPresentation creates an empty document with the default master
// layouts.
func NewPresentation(title string) *Presentation {
	return &Presentation{title: title, layouts: defaultLayouts()}
}

// Layouts returns the available slide layouts.
func (p *Presentation) Layouts() []Layout { return p.layouts }

// Slides returns the slides added so far.
func (p *Presentation) Slides() []*Slide { return p.slides }

// AddSlide appends a slide using the layout at the given index. The
// index is clamped to the available layouts.
func (p *Presentation) AddSlide(layoutIdx int) *Slide {
	if layoutIdx < 0 {
		layoutIdx = 0
	}
	if layoutIdx >= len(p.layouts) {
		layoutIdx = len(p.layouts) - 1
	}

	slide := &Slide{layout: p.layouts[layoutIdx]}
	p.slides = append(p.slides, slide)
	return slide
}
