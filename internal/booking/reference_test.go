package booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReference(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		ref, err := NewReference()
		require.NoError(t, err)
		require.Len(t, ref, 10)
		assert.True(t, strings.HasPrefix(ref, "BT"))
		for _, r := range ref[2:] {
			assert.Contains(t, referenceAlphabet, string(r))
		}
	})

	t.Run("no collisions in a large sample", func(t *testing.T) {
		seen := make(map[string]bool, 10000)
		for i := 0; i < 10000; i++ {
			ref, err := NewReference()
			require.NoError(t, err)
			require.False(t, seen[ref], "duplicate reference %s", ref)
			seen[ref] = true
		}
	})
}
