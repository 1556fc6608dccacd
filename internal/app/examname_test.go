package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamNameState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_exam.txt")
	state := NewExamNameState(path)

	t.Run("missing file reads as empty", func(t *testing.T) {
		name, err := state.Get()
		require.NoError(t, err)
		assert.Equal(t, "", name)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, state.Set("WINTER 2024"))

		name, err := state.Get()
		require.NoError(t, err)
		assert.Equal(t, "WINTER 2024", name)
	})

	t.Run("set replaces the previous name", func(t *testing.T) {
		require.NoError(t, state.Set("SUMMER 2025"))

		name, err := state.Get()
		require.NoError(t, err)
		assert.Equal(t, "SUMMER 2025", name)
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		require.NoError(t, state.Set("  WINTER 2024  "))

		name, err := state.Get()
		require.NoError(t, err)
		assert.Equal(t, "WINTER 2024", name)
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
