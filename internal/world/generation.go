// Map generation: scattered sites, Voronoi tessellation with Lloyd
// relaxation, then the sector graph with noise-sampled heights.
package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/sectormap/internal/entropy"
	"github.com/talgya/sectormap/internal/geom"
)

// Fatal configuration errors; generation cannot continue past them.
var (
	ErrDegenerateSize = errors.New("degenerate map size")
	ErrTooFewSites    = errors.New("too few usable sites for tessellation")
)

// MinSites is the smallest number of usable cells a map can be built from.
const MinSites = 3

// MinSiteSpacing rejects sites closer than this to an accepted site, so
// no cell collapses to zero area.
const MinSiteSpacing = 0.05

// DefaultSiteAttempts bounds site rejection sampling.
const DefaultSiteAttempts = 1_000_000

// GenConfig holds tessellation parameters.
type GenConfig struct {
	Width           float64 // Map extent along x
	Height          float64 // Map extent along y
	SectorCount     int     // Target number of sites
	LloydIterations int     // Relaxation passes
	BoundaryMargin  float64 // Sites may fall this far outside the map
	HeightFrequency float64 // Noise coordinate scale
	HeightOctaves   int     // Noise layers; 1 samples a single octave
	SiteAttempts    int     // Rejection-sampling budget for sites
}

// DefaultGenConfig returns the tessellation settings of a full-size map.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:           500,
		Height:          500,
		SectorCount:     5000,
		LloydIterations: 1,
		BoundaryMargin:  10,
		HeightFrequency: 0.015,
		HeightOctaves:   1,
		SiteAttempts:    DefaultSiteAttempts,
	}
}

// SmallTestConfig returns a tiny map for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:           100,
		Height:          100,
		SectorCount:     50,
		LloydIterations: 1,
		BoundaryMargin:  5,
		HeightFrequency: 0.05,
		HeightOctaves:   1,
		SiteAttempts:    10_000,
	}
}

// Validate reports configurations that cannot produce a map.
func (c GenConfig) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) || math.IsInf(c.Width, 0) || math.IsInf(c.Height, 0) {
		return fmt.Errorf("%w: %gx%g", ErrDegenerateSize, c.Width, c.Height)
	}
	if c.BoundaryMargin < 0 {
		return fmt.Errorf("%w: negative boundary margin %g", ErrDegenerateSize, c.BoundaryMargin)
	}
	if c.SectorCount < MinSites {
		return fmt.Errorf("%w: sector count %d", ErrTooFewSites, c.SectorCount)
	}
	return nil
}

// Generate tessellates a new map. Every sector comes back with Cost 1 and
// no biome. The noise seed is the first value drawn from rs.
func Generate(cfg GenConfig, rs *entropy.Stream) (*Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	heightNoise := opensimplex.NewNormalized(rs.Int63())

	sites := sampleSites(cfg, rs)
	if len(sites) < cfg.SectorCount {
		slog.Warn("site budget exhausted",
			"requested", cfg.SectorCount,
			"placed", len(sites),
			"attempts", cfg.SiteAttempts,
		)
	}
	if len(sites) < MinSites {
		return nil, fmt.Errorf("%w: %d sites", ErrTooFewSites, len(sites))
	}

	m := NewMap(cfg.Width, cfg.Height)
	bounds := m.Bounds()

	d := buildDiagram(bounds, sites)
	for i := 0; i < cfg.LloydIterations; i++ {
		d = buildDiagram(bounds, d.centroids())
	}
	if len(d.cells) < MinSites {
		return nil, fmt.Errorf("%w: %d cells after clipping", ErrTooFewSites, len(d.cells))
	}

	adj := d.adjacency()
	m.Sectors = make([]*Sector, len(d.cells))
	for i, c := range d.cells {
		neighbors := make([]SectorID, len(adj[i]))
		for k, j := range adj[i] {
			neighbors[k] = SectorID(j)
		}
		m.Sectors[i] = &Sector{
			ID:        SectorID(i),
			Site:      c.point,
			Border:    c.cell.Verts,
			Centroid:  c.cell.Verts.Centroid(),
			Height:    sampleHeight(heightNoise, c.point, cfg),
			Cost:      1.0,
			Neighbors: neighbors,
		}
	}

	slog.Info("map tessellated",
		"sites", len(sites),
		"sectors", m.Len(),
		"lloyd_iterations", cfg.LloydIterations,
	)
	return m, nil
}

// sampleSites scatters up to cfg.SectorCount sites over the map expanded
// by the boundary margin, rejecting any site within MinSiteSpacing of an
// earlier one. Stops early when the attempt budget runs out.
func sampleSites(cfg GenConfig, rs *entropy.Stream) []geom.Point {
	padded := geom.R(0, 0, cfg.Width, cfg.Height).Inset(-cfg.BoundaryMargin)
	index := geom.NewGrid(padded, gridCellSize(padded, cfg.SectorCount))

	budget := cfg.SiteAttempts
	if budget <= 0 {
		budget = DefaultSiteAttempts
	}

	sites := make([]geom.Point, 0, cfg.SectorCount)
	for attempt := 0; attempt < budget && len(sites) < cfg.SectorCount; attempt++ {
		p := geom.Pt(
			rs.FloatRange(padded.Min.X, padded.Max.X),
			rs.FloatRange(padded.Min.Y, padded.Max.Y),
		)
		if index.AnyWithin(p, MinSiteSpacing) {
			continue
		}
		index.Insert(p)
		sites = append(sites, p)
	}
	return sites
}

func sampleHeight(noise opensimplex.Noise, site geom.Point, cfg GenConfig) float64 {
	octaves := cfg.HeightOctaves
	if octaves < 1 {
		octaves = 1
	}
	h := octaveNoise(noise, site.X, site.Y, octaves, cfg.HeightFrequency, 0.5)
	return math.Max(0, math.Min(1, h))
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
