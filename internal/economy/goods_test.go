package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResources(t *testing.T) {
	names := map[string]bool{}
	for _, r := range Resources {
		assert.NotEqual(t, "Unknown", r.String())
		assert.Positive(t, r.BasePrice())
		names[r.String()] = true
	}
	assert.Len(t, names, len(Resources))
	assert.Zero(t, Resource(99).BasePrice())
}
