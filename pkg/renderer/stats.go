package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	TotalTiles     int           // Number of tiles rendered
	Elapsed        time.Duration // Wall-clock render time
}

// merge folds the counts of a finished tile into the totals
func (rs *RenderStats) merge(tile RenderStats) {
	rs.TotalPixels += tile.TotalPixels
	rs.TotalSamples += tile.TotalSamples
	rs.TotalTiles += tile.TotalTiles
}

// finalize calculates derived statistics once every tile is merged
func (rs *RenderStats) finalize(elapsed time.Duration) {
	rs.Elapsed = elapsed
	if rs.TotalPixels > 0 {
		rs.AverageSamples = float64(rs.TotalSamples) / float64(rs.TotalPixels)
	}
}
