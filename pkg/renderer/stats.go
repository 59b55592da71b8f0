package renderer

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// RenderStats contains statistics about one render pass
type RenderStats struct {
	TotalPixels     int           // Pixels written
	TotalRays       int           // Primary and reflected rays traced
	OpaqueHits      int           // Rays whose nearest opaque hit was found
	TransparentHits int           // Rays that hit a transparent object
	ShadowRays      int           // Shadow queries cast
	Supersampling   int           // N, for N² rays per pixel
	Workers         int           // Goroutine limit used for the pass
	Duration        time.Duration // Wall time of the pass
}

// add merges the counters of other into s
func (s *RenderStats) add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalRays += other.TotalRays
	s.OpaqueHits += other.OpaqueHits
	s.TransparentHits += other.TransparentHits
	s.ShadowRays += other.ShadowRays
}

// String formats the stats for logs
func (s RenderStats) String() string {
	return fmt.Sprintf("%s pixels, %s rays (%s opaque hits, %s transparent hits, %s shadow rays) at %dx%d supersampling on %d workers in %v",
		humanize.Comma(int64(s.TotalPixels)),
		humanize.Comma(int64(s.TotalRays)),
		humanize.Comma(int64(s.OpaqueHits)),
		humanize.Comma(int64(s.TransparentHits)),
		humanize.Comma(int64(s.ShadowRays)),
		s.Supersampling, s.Supersampling,
		s.Workers,
		s.Duration.Round(time.Millisecond))
}
