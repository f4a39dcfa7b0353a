package charts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
)

const (
	chartWidth  = 800
	chartHeight = 600

	placeholderWidth  = 400
	placeholderHeight = 300
)

// point is one extracted datum of a chart's data.values array.
type point struct {
	label string
	value float64
}

// VegaLiteRenderer rasterizes Vega-Lite bar specifications to PNG files.
// It never fails outright: when a spec cannot be rendered, a placeholder
// image is produced instead so visual placement always has a file.
type VegaLiteRenderer struct {
	logger *slog.Logger
}

// NewVegaLiteRenderer creates a chart renderer.
func NewVegaLiteRenderer(logger *slog.Logger) *VegaLiteRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &VegaLiteRenderer{logger: logger}
}

// Render draws the chart described by specJSON into workDir and returns
// the image path. Invalid specs yield a placeholder image.
func (r *VegaLiteRenderer) Render(ctx context.Context, specJSON, workDir string) (string, error) {
	path, err := r.renderChart(specJSON, workDir)
	if err != nil {
		r.logger.Warn("chart rendering failed, using placeholder",
			slog.String("error", err.Error()))
		return r.placeholder(workDir, "Chart could not be rendered")
	}
	return path, nil
}

func (r *VegaLiteRenderer) renderChart(specJSON, workDir string) (string, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return "", fmt.Errorf("parsing chart spec: %w", err)
	}

	if _, ok := spec["$schema"]; !ok {
		return "", errors.New("chart spec missing $schema")
	}

	points, err := extractPoints(spec)
	if err != nil {
		return "", err
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	drawBars(dc, points)

	path := filepath.Join(workDir, "chart_"+uuid.NewString()+".png")
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("saving chart image: %w", err)
	}
	return path, nil
}

// extractPoints pulls labeled numeric data out of the spec's data.values
// array, preferring the conventional category/value field names.
func extractPoints(spec map[string]any) ([]point, error) {
	data, ok := spec["data"].(map[string]any)
	if !ok {
		return nil, errors.New("chart spec missing data")
	}

	values, ok := data["values"].([]any)
	if !ok || len(values) == 0 {
		return nil, errors.New("chart spec missing data.values")
	}

	points := make([]point, 0, len(values))
	for i, raw := range values {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		p := point{label: fmt.Sprintf("#%d", i+1)}

		if s, ok := firstString(row, "category", "label", "x", "name"); ok {
			p.label = s
		}
		v, ok := firstNumber(row, "value", "y", "count", "amount")
		if !ok {
			continue
		}
		p.value = v

		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, errors.New("no plottable points in data.values")
	}
	return points, nil
}

func firstString(row map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := row[k].(string); ok {
			return s, true
		}
	}
	for _, v := range row {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

func firstNumber(row map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if f, ok := row[k].(float64); ok {
			return f, true
		}
	}
	for _, v := range row {
		if f, ok := v.(float64); ok {
			return f, true
		}
	}
	return 0, false
}

// drawBars renders a simple vertical bar chart with labels beneath each
// bar and the value above it.
func drawBars(dc *gg.Context, points []point) {
	const margin = 60.0

	maxValue := points[0].value
	for _, p := range points {
		if p.value > maxValue {
			maxValue = p.value
		}
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	plotW := float64(chartWidth) - 2*margin
	plotH := float64(chartHeight) - 2*margin
	slot := plotW / float64(len(points))
	barW := slot * 0.6

	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(2)
	dc.DrawLine(margin, float64(chartHeight)-margin, float64(chartWidth)-margin, float64(chartHeight)-margin)
	dc.Stroke()

	for i, p := range points {
		h := (p.value / maxValue) * plotH
		x := margin + float64(i)*slot + (slot-barW)/2
		y := float64(chartHeight) - margin - h

		dc.SetRGB(0, 0.47, 0.84)
		dc.DrawRectangle(x, y, barW, h)
		dc.Fill()

		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(p.label, x+barW/2, float64(chartHeight)-margin+16, 0.5, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%g", p.value), x+barW/2, y-10, 0.5, 0.5)
	}
}

// placeholder draws a neutral fallback image carrying the given text.
func (r *VegaLiteRenderer) placeholder(workDir, text string) (string, error) {
	dc := gg.NewContext(placeholderWidth, placeholderHeight)
	dc.SetRGB(0.83, 0.83, 0.83)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(text, placeholderWidth/2, placeholderHeight/2, 0.5, 0.5)

	path := filepath.Join(workDir, "placeholder_"+uuid.NewString()+".png")
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("saving placeholder image: %w", err)
	}
	return path, nil
}
