// Package config loads generation and logging settings from defaults, an
// optional config file, WORLDGEN_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/talgya/sectormap/internal/engine"
	"github.com/talgya/sectormap/internal/logging"
	"github.com/talgya/sectormap/internal/world"
)

// EnvPrefix prefixes every environment override, e.g. WORLDGEN_CITY_COUNT.
const EnvPrefix = "WORLDGEN"

// Settings is everything the worldgen command needs.
type Settings struct {
	engine.Config `mapstructure:",squash"`
	Log           logging.Options `mapstructure:"log"`
}

// flag name → config key
var flagKeys = map[string]string{
	"seed":        "seed",
	"width":       "width",
	"height":      "height",
	"sectors":     "sector_count",
	"lloyd":       "lloyd_iterations",
	"biome-seeds": "biome_seed_count",
	"cities":      "city_count",
	"log-level":   "log.level",
	"log-file":    "log.file",
}

// NewFlagSet declares the worldgen command-line flags.
func NewFlagSet(name string) *pflag.FlagSet {
	def := engine.DefaultConfig()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (yaml, toml or json)")
	fs.Int64P("seed", "s", def.Seed, "random seed; 0 picks one")
	fs.Float64("width", def.Width, "map width")
	fs.Float64("height", def.Height, "map height")
	fs.IntP("sectors", "n", def.SectorCount, "number of sectors")
	fs.Int("lloyd", def.LloydIterations, "Lloyd relaxation passes")
	fs.Int("biome-seeds", def.BiomeSeedCount, "number of biome seed sectors")
	fs.Int("cities", def.CityCount, "number of cities")
	fs.String("log-level", logging.DefaultOptions().Level, "debug, info, warn or error")
	fs.String("log-file", "", "also write JSON logs to this file")
	return fs
}

// Load resolves settings. fs must come from NewFlagSet and already be
// parsed; it may be nil to skip flags and the config file.
func Load(fs *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	setDefaults(v, engine.DefaultConfig(), logging.DefaultOptions())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for flag, key := range flagKeys {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
		if path, _ := fs.GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Settings{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var s Settings
	err := v.Unmarshal(&s, viper.DecodeHook(DecodeHook()), func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
	})
	if err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// DecodeHook converts the string forms used in files, env and flags:
// "min-max" ranges, comma-separated lists and biome names.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		rangeHook,
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

var (
	intRangeType   = reflect.TypeOf(world.IntRange{})
	floatRangeType = reflect.TypeOf(world.FloatRange{})
)

func rangeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to {
	case intRangeType:
		return world.ParseIntRange(data.(string))
	case floatRangeType:
		return world.ParseFloatRange(data.(string))
	}
	return data, nil
}

func biomeNames(bs []world.Biome) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.String()
	}
	return out
}

func setDefaults(v *viper.Viper, c engine.Config, log logging.Options) {
	v.SetDefault("seed", c.Seed)
	v.SetDefault("width", c.Width)
	v.SetDefault("height", c.Height)
	v.SetDefault("sector_count", c.SectorCount)
	v.SetDefault("lloyd_iterations", c.LloydIterations)
	v.SetDefault("boundary_margin", c.BoundaryMargin)
	v.SetDefault("height_noise_frequency", c.HeightNoiseFrequency)
	v.SetDefault("height_octaves", c.HeightOctaves)
	v.SetDefault("site_attempts", c.SiteAttempts)

	v.SetDefault("biome_seed_count", c.BiomeSeedCount)
	v.SetDefault("biome_attempts", c.BiomeAttempts)
	v.SetDefault("biomes", biomeNames(c.Biomes))

	v.SetDefault("city_count", c.CityCount)
	v.SetDefault("city_min_spacing", c.CityMinSpacing)
	v.SetDefault("city_population_range", c.CityPopulationRange.String())
	v.SetDefault("city_boundary_margin", c.CityBoundaryMargin)
	v.SetDefault("city_biomes", biomeNames(c.CityBiomes))
	v.SetDefault("city_names", c.CityNames)
	v.SetDefault("city_attempts", c.CityAttempts)

	v.SetDefault("nodes_per_city_range", c.NodesPerCityRange.String())
	v.SetDefault("node_city_distance_range", c.NodeCityDistanceRange.String())
	v.SetDefault("node_min_spacing", c.NodeMinSpacing)
	v.SetDefault("node_boundary_margin", c.NodeBoundaryMargin)
	v.SetDefault("node_attempts", c.NodeAttempts)

	v.SetDefault("log.level", log.Level)
	v.SetDefault("log.file", log.File)
	v.SetDefault("log.max_size_mb", log.MaxSizeMB)
	v.SetDefault("log.max_backups", log.MaxBackups)
	v.SetDefault("log.max_age_days", log.MaxAgeDays)
	v.SetDefault("log.compress", log.Compress)
}
