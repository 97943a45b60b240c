package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/sectormap/internal/world"
)

func TestRunSmallWorld(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{
		"--seed", "1",
		"--width", "200", "--height", "200",
		"--sectors", "200",
		"--biome-seeds", "8",
		"--cities", "3",
		"--log-level", "warn",
	}, &out)
	require.NoError(t, err)

	report := out.String()
	assert.Contains(t, report, "(seed 1)")
	assert.Contains(t, report, " sectors, ")
	assert.Contains(t, report, "Biomes")
	assert.Contains(t, report, "Cities")
	assert.Contains(t, report, "Resource nodes")
	assert.NotContains(t, report, world.BiomeNone.String())
}

func TestRunRejectsBadConfig(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"--sectors", "2", "--log-level", "error"}, &out)
	assert.ErrorIs(t, err, world.ErrTooFewSites)
	assert.Empty(t, out.String())
}

func TestRunBadFlag(t *testing.T) {
	assert.Error(t, run([]string{"--no-such-flag"}, &bytes.Buffer{}))
}
