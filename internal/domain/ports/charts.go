package ports

import "context"

// ChartRenderer turns a chart specification (Vega-Lite JSON) into a
// raster image on disk. On rendering failure it still returns a usable
// placeholder image path, so visual placement always has a file to
// reference; an error is returned only when no file could be produced
// at all.
type ChartRenderer interface {
	Render(ctx context.Context, specJSON, workDir string) (string, error)
}
