// Command worldgen generates a sector map with cities, resource nodes and
// roads, and prints a report of the result.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/talgya/sectormap/internal/catalog"
	"github.com/talgya/sectormap/internal/config"
	"github.com/talgya/sectormap/internal/engine"
	"github.com/talgya/sectormap/internal/logging"
	"github.com/talgya/sectormap/internal/social"
	"github.com/talgya/sectormap/internal/world"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "worldgen:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := config.NewFlagSet("worldgen")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.Load(fs)
	if err != nil {
		return err
	}

	closer, err := logging.Setup(settings.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	slog.Info("generating world",
		"size", fmt.Sprintf("%gx%g", settings.Width, settings.Height),
		"sectors", settings.SectorCount,
		"cities", settings.CityCount,
	)
	atlas, err := engine.Generate(settings.Config)
	if err != nil {
		slog.Error("generation failed", "error", err)
		return err
	}

	db, err := catalog.Open()
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Load(atlas); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	return report(out, atlas, db)
}

// report prints the world summary from the catalog.
func report(out io.Writer, atlas *engine.Atlas, db *catalog.DB) error {
	sum := atlas.Summary()
	fmt.Fprintf(out, "World %s (seed %d)\n", sum.ID, sum.Seed)
	fmt.Fprintf(out, "  %s sectors, %s cities, %s resource nodes, %s roads\n",
		humanize.Comma(int64(sum.Sectors)),
		humanize.Comma(int64(sum.Cities)),
		humanize.Comma(int64(sum.Nodes)),
		humanize.Comma(int64(sum.Roads)),
	)
	fmt.Fprintf(out, "  population %s, road network %s units, %s random draws\n\n",
		humanize.Comma(int64(sum.TotalPopulation)),
		humanize.CommafWithDigits(sum.RoadLength, 1),
		humanize.Comma(int64(atlas.Draws)),
	)

	biomes, err := db.BiomeCounts()
	if err != nil {
		return fmt.Errorf("biome counts: %w", err)
	}
	fmt.Fprintln(out, "Biomes")
	total := atlas.Map.Width * atlas.Map.Height
	for _, b := range biomes {
		share := 100 * b.Area / total
		fmt.Fprintf(out, "  %-10s %6s sectors %5.1f%% %s\n",
			b.Biome, humanize.Comma(int64(b.Sectors)), share, strings.Repeat("#", int(share/2)))
	}

	cities, err := db.TopCities(len(atlas.Cities))
	if err != nil {
		return fmt.Errorf("top cities: %w", err)
	}
	fmt.Fprintln(out, "\nCities")
	for _, c := range cities {
		line := fmt.Sprintf("  %-14s pop %7s  %d nodes  %s road units",
			c.Name, humanize.Comma(c.Population), c.Nodes, humanize.CommafWithDigits(c.RoadLength, 1))
		if n, ok := social.Nearest(atlas.Relations, world.CityID(c.ID)); ok {
			line += fmt.Sprintf("  nearest %s (%s by road)",
				atlas.Cities[n.City].Name, humanize.CommafWithDigits(n.RoadDistance, 1))
		}
		fmt.Fprintln(out, line)
	}

	nodes, err := db.NodeCounts()
	if err != nil {
		return fmt.Errorf("node counts: %w", err)
	}
	fmt.Fprintln(out, "\nResource nodes")
	for _, n := range nodes {
		fmt.Fprintf(out, "  %-12s %-7s %5s  base value %s crowns\n",
			n.Type, n.Produces, humanize.Comma(int64(n.Count)), humanize.CommafWithDigits(n.Value, 1))
	}
	return nil
}
