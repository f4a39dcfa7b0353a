package charts

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const barSpec = `{
  "$schema": "https://vega.github.io/schema/vega-lite/v5.json",
  "data": {"values": [{"category": "A", "value": 30}, {"category": "B", "value": 55}]},
  "mark": "bar"
}`

func decodePNG(t *testing.T, path string) (int, int) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestRenderChart(t *testing.T) {
	r := NewVegaLiteRenderer(nil)
	dir := t.TempDir()

	path, err := r.Render(context.Background(), barSpec, dir)
	require.NoError(t, err)
	require.FileExists(t, path)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "chart_"))

	w, h := decodePNG(t, path)
	assert.Equal(t, chartWidth, w)
	assert.Equal(t, chartHeight, h)
}

func TestRenderFallsBackToPlaceholder(t *testing.T) {
	r := NewVegaLiteRenderer(nil)

	tests := []struct {
		name string
		spec string
	}{
		{"invalid json", `{"$schema": `},
		{"missing schema", `{"data": {"values": [{"value": 1}]}}`},
		{"missing data", `{"$schema": "https://vega.github.io/schema/vega-lite/v5.json"}`},
		{"empty values", `{"$schema": "x", "data": {"values": []}}`},
		{"no numeric fields", `{"$schema": "x", "data": {"values": [{"category": "A"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			path, err := r.Render(context.Background(), tt.spec, dir)
			require.NoError(t, err)
			require.FileExists(t, path)

			assert.True(t, strings.HasPrefix(filepath.Base(path), "placeholder_"))

			w, h := decodePNG(t, path)
			assert.Equal(t, placeholderWidth, w)
			assert.Equal(t, placeholderHeight, h)
		})
	}
}

func TestExtractPoints(t *testing.T) {
	t.Run("prefers conventional field names", func(t *testing.T) {
		spec := map[string]any{
			"data": map[string]any{
				"values": []any{
					map[string]any{"category": "Q1", "value": float64(10), "other": "x"},
					map[string]any{"category": "Q2", "value": float64(20)},
				},
			},
		}

		points, err := extractPoints(spec)
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, "Q1", points[0].label)
		assert.Equal(t, 10.0, points[0].value)
	})

	t.Run("falls back to any string and number", func(t *testing.T) {
		spec := map[string]any{
			"data": map[string]any{
				"values": []any{
					map[string]any{"quarter": "Q1", "revenue": float64(42)},
				},
			},
		}

		points, err := extractPoints(spec)
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, "Q1", points[0].label)
		assert.Equal(t, 42.0, points[0].value)
	})

	t.Run("rows without numbers are skipped", func(t *testing.T) {
		spec := map[string]any{
			"data": map[string]any{
				"values": []any{
					map[string]any{"category": "A"},
					map[string]any{"category": "B", "value": float64(5)},
				},
			},
		}

		points, err := extractPoints(spec)
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, "B", points[0].label)
	})
}
