package pptx

import (
	"archive/zip"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/internal/adapters/secondary/templates"
	"github.com/slidesmith/slidesmith/internal/domain/entities"
	"github.com/slidesmith/slidesmith/internal/test/builders"
)

// mockRenderer is a testify mock for the ChartRenderer port.
type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(ctx context.Context, spec, destDir string) (string, error) {
	args := m.Called(ctx, spec, destDir)
	return args.String(0), args.Error(1)
}

func newTestAssembler(charts *mockRenderer) *Assembler {
	return NewAssembler(charts, templates.NewProvider(nil), nil)
}

func minimalConfig(t *testing.T) entities.TemplateConfig {
	t.Helper()
	return templates.NewProvider(nil).Config("minimal")
}

func TestLayoutRole(t *testing.T) {
	tests := []struct {
		name  string
		slide entities.Slide
		index int
		want  entities.LayoutRole
	}{
		{
			name:  "first slide is the title slide",
			slide: builders.NewSlideBuilder().WithContent("Point").Build(),
			index: 0,
			want:  entities.RoleTitleSlide,
		},
		{
			name:  "chart slide gets a blank canvas",
			slide: builders.NewSlideBuilder().WithType(entities.TypeChart).Build(),
			index: 2,
			want:  entities.RoleBlank,
		},
		{
			name:  "diagram slide gets a blank canvas",
			slide: builders.NewSlideBuilder().WithType(entities.TypeDiagram).Build(),
			index: 2,
			want:  entities.RoleBlank,
		},
		{
			name:  "comparison title gets two columns",
			slide: builders.NewSlideBuilder().WithTitle("Feature Comparison").WithContent("A", "B").Build(),
			index: 1,
			want:  entities.RoleTwoColumn,
		},
		{
			name:  "visuals without content get a blank canvas",
			slide: builders.NewSlideBuilder().WithVisual(entities.LangPlantUML, "@startuml").Build(),
			index: 1,
			want:  entities.RoleBlank,
		},
		{
			name:  "ordinary slide gets the content layout",
			slide: builders.NewSlideBuilder().WithContent("Point").Build(),
			index: 3,
			want:  entities.RoleContentSlide,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layoutRole(&tt.slide, tt.index))
		})
	}
}

func TestAssembleWritesFile(t *testing.T) {
	a := newTestAssembler(new(mockRenderer))
	dir := t.TempDir()

	deck := builders.NewDeckBuilder().WithSlideCount(3).Build()

	path, err := a.Assemble(context.Background(), deck, "Q3: Review/2026", "minimal", dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Q3__Review_2026.pptx"), path)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()

	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["ppt/slides/slide1.xml"])
	assert.True(t, names["ppt/slides/slide3.xml"])
}

func TestAssembleUnwritableDirectory(t *testing.T) {
	a := newTestAssembler(new(mockRenderer))

	_, err := a.Assemble(context.Background(), builders.MinimalDeck(), "Deck", "minimal",
		filepath.Join(t.TempDir(), "missing", "nested"))

	var persistErr *entities.PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "saving presentation", persistErr.Op)
}

func TestBuildSlideTitlePlacement(t *testing.T) {
	a := newTestAssembler(new(mockRenderer))
	cfg := minimalConfig(t)
	prs := NewPresentation("Deck")

	slide := builders.NewSlideBuilder().WithTitle("Opening").Build()
	require.NoError(t, a.buildSlide(context.Background(), prs, &slide, 0, cfg, t.TempDir()))

	require.Len(t, prs.Slides(), 1)
	built := prs.Slides()[0]
	require.NotNil(t, built.titleBox)
	require.Len(t, built.titleBox.Paragraphs, 1)
	assert.Equal(t, "Opening", built.titleBox.Paragraphs[0].Text)
	assert.Equal(t, cfg.TitleFontSize, built.titleBox.Paragraphs[0].Style.Size)
}

func TestBuildSlideBodyBullets(t *testing.T) {
	a := newTestAssembler(new(mockRenderer))
	prs := NewPresentation("Deck")

	slide := builders.NewSlideBuilder().WithContent("First", "Second").Build()
	require.NoError(t, a.buildSlide(context.Background(), prs, &slide, 1, minimalConfig(t), t.TempDir()))

	body := prs.Slides()[0].FirstNonTitleBox()
	require.NotNil(t, body)
	require.Len(t, body.Paragraphs, 2)
	assert.Equal(t, "• First", body.Paragraphs[0].Text)
	assert.Equal(t, "• Second", body.Paragraphs[1].Text)
}

func TestBuildSlideComparisonColumns(t *testing.T) {
	a := newTestAssembler(new(mockRenderer))
	prs := NewPresentation("Deck")

	slide := builders.NewSlideBuilder().
		WithTitle("Plan Comparison").
		WithType(entities.TypeComparison).
		WithContent("Us: fast", "Them: slow", "Us: cheap", "Them: pricey").
		Build()
	require.NoError(t, a.buildSlide(context.Background(), prs, &slide, 1, minimalConfig(t), t.TempDir()))

	built := prs.Slides()[0]
	require.Len(t, built.boxes, 3, "title plus two columns")

	left, right := built.boxes[1], built.boxes[2]
	require.Len(t, left.Paragraphs, 2)
	require.Len(t, right.Paragraphs, 2)
	assert.Equal(t, "• Us: fast", left.Paragraphs[0].Text)
	assert.Equal(t, "• Them: slow", right.Paragraphs[0].Text)
	assert.Equal(t, "• Us: cheap", left.Paragraphs[1].Text)
	assert.Equal(t, "• Them: pricey", right.Paragraphs[1].Text)
}

func TestBuildSlideChart(t *testing.T) {
	dir := t.TempDir()
	imgPath := writePNG(t, dir, 400, 300)

	charts := new(mockRenderer)
	charts.On("Render", mock.Anything, `{"mark": "bar"}`, dir).Return(imgPath, nil)

	a := newTestAssembler(charts)
	prs := NewPresentation("Deck")

	slide := builders.NewSlideBuilder().
		WithTitle("Revenue").
		WithType(entities.TypeChart).
		WithVisual(entities.LangJSON, `{"mark": "bar"}`).
		WithAltText("Bar chart of quarterly revenue").
		Build()
	require.NoError(t, a.buildSlide(context.Background(), prs, &slide, 1, minimalConfig(t), dir))

	built := prs.Slides()[0]
	require.Len(t, built.pictures, 1)
	assert.Equal(t, "Bar chart of quarterly revenue", built.pictures[0].AltText)
	assert.Equal(t, Inches(4), built.pictures[0].W)
	charts.AssertExpectations(t)
}

func TestBuildSlideChartRenderFailure(t *testing.T) {
	charts := new(mockRenderer)
	charts.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("render failed"))

	a := newTestAssembler(charts)
	prs := NewPresentation("Deck")

	slide := builders.NewSlideBuilder().
		WithType(entities.TypeChart).
		WithVisual(entities.LangJSON, `{}`).
		Build()

	// The visual is lost, not the slide.
	require.NoError(t, a.buildSlide(context.Background(), prs, &slide, 1, minimalConfig(t), t.TempDir()))
	require.Len(t, prs.Slides(), 1)
	assert.Empty(t, prs.Slides()[0].pictures)
}

func TestBuildSlideMermaidPreview(t *testing.T) {
	a := newTestAssembler(new(mockRenderer))
	prs := NewPresentation("Deck")

	code := "sequenceDiagram\n" + strings.Repeat("A->>B: ping\n", 12)
	slide := builders.NewSlideBuilder().
		WithType(entities.TypeDiagram).
		WithVisual(entities.LangMermaid, code).
		Build()
	require.NoError(t, a.buildSlide(context.Background(), prs, &slide, 1, minimalConfig(t), t.TempDir()))

	built := prs.Slides()[0]
	var preview *TextBox
	for _, box := range built.boxes {
		if len(box.Paragraphs) > 0 && box.Paragraphs[0].Text == "Mermaid Diagram:" {
			preview = box
		}
	}
	require.NotNil(t, preview)
	require.Len(t, preview.Paragraphs, 2)
	assert.Len(t, preview.Paragraphs[1].Text, 103, "preview truncated to 100 chars plus ellipsis")
	assert.True(t, strings.HasSuffix(preview.Paragraphs[1].Text, "..."))
}

func TestBuildSlideNonVegaJSONNotRendered(t *testing.T) {
	charts := new(mockRenderer)

	a := newTestAssembler(charts)
	prs := NewPresentation("Deck")

	slide := builders.NewSlideBuilder().
		WithTitle("Config Dump").
		WithVisual(entities.LangJSON, `{"plain": true}`).
		Build()
	require.NoError(t, a.buildSlide(context.Background(), prs, &slide, 1, minimalConfig(t), t.TempDir()))

	// Plain JSON has no chart renderer; the slide gets no image at all.
	built := prs.Slides()[0]
	assert.Empty(t, built.pictures)
	charts.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildSlidePlantUMLNotRendered(t *testing.T) {
	charts := new(mockRenderer)

	a := newTestAssembler(charts)
	prs := NewPresentation("Deck")

	slide := builders.NewSlideBuilder().
		WithVisual(entities.LangPlantUML, "@startuml\nA -> B\n@enduml").
		Build()
	require.NoError(t, a.buildSlide(context.Background(), prs, &slide, 1, minimalConfig(t), t.TempDir()))

	built := prs.Slides()[0]
	assert.Empty(t, built.pictures)
	charts.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
}

func TestBodyTargetSynthesizesFrame(t *testing.T) {
	a := newTestAssembler(new(mockRenderer))
	prs := NewPresentation("Deck")

	// The blank layout offers no placeholders at all.
	target := prs.AddSlide(6)
	body := a.bodyTarget(target)

	require.NotNil(t, body)
	assert.Equal(t, Inches(0.5), body.X)
	assert.Equal(t, Inches(1.75), body.Y)
}
