package task

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator_ProducesValidSortedIDs(t *testing.T) {
	gen := UUIDv7Generator{}

	var prev string
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate()

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())

		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true

		// UUIDv7 leads with a millisecond timestamp; within one process
		// the google/uuid implementation also monotonically sequences
		// same-millisecond IDs, so generation order is string order.
		if prev != "" {
			assert.Less(t, prev, id)
		}
		prev = id
	}
}

func TestFixedGenerator_ReturnsIDsInOrder(t *testing.T) {
	gen := NewFixedGenerator("task-1", "task-2", "task-3")

	assert.Equal(t, "task-1", gen.Generate())
	assert.Equal(t, "task-2", gen.Generate())
	assert.Equal(t, "task-3", gen.Generate())
}

func TestFixedGenerator_PanicsWhenExhausted(t *testing.T) {
	gen := NewFixedGenerator("task-1")
	gen.Generate()

	assert.Panics(t, func() { gen.Generate() })
}
