package entities

// RGB is a color triple used for presentation text and fills.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// ColorRole names the roles a template assigns colors to.
type ColorRole string

const (
	ColorTitle      ColorRole = "title"
	ColorBody       ColorRole = "body"
	ColorBackground ColorRole = "background"
	ColorAccent     ColorRole = "accent"
)

// LayoutRole is a logical slide layout that a template maps to a concrete
// layout index in the presentation master.
type LayoutRole string

const (
	RoleTitleSlide   LayoutRole = "title_slide"
	RoleContentSlide LayoutRole = "content_slide"
	RoleTwoColumn    LayoutRole = "two_column"
	RoleBlank        LayoutRole = "blank"
)

// TemplateConfig is a named, immutable bundle of font, color and layout
// choices applied uniformly across a deck.
type TemplateConfig struct {
	Name          string
	FontFamily    string
	TitleFontSize int
	BodyFontSize  int
	Colors        map[ColorRole]RGB
	Layouts       map[LayoutRole]int
}

// Color returns the color for a role, falling back to black.
func (c TemplateConfig) Color(role ColorRole) RGB {
	if rgb, ok := c.Colors[role]; ok {
		return rgb
	}
	return RGB{}
}

// LayoutIndex resolves a logical layout role to a concrete index, clamped
// to the number of layouts actually available so a template expecting a
// richer master degrades to the last layout instead of failing the slide.
func (c TemplateConfig) LayoutIndex(role LayoutRole, available int) int {
	if available <= 0 {
		return 0
	}
	idx := c.Layouts[role]
	if idx < 0 {
		idx = 0
	}
	if idx >= available {
		idx = available - 1
	}
	return idx
}
