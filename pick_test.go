package jkeep

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPick(t *testing.T) {
	src := Build(
		Entry{Key: "locations", Value: Array{"A", "B"}},
		Entry{Key: "title", Value: "Inception"},
		Entry{Key: "genre", Value: "Sci-Fi"},
	)

	t.Run("output order follows the keys argument, not the source", func(t *testing.T) {
		got := src.Pick("genre", "title")
		require.Equal(t, []string{"genre", "title"}, got.Keys())

		got = src.Pick("title", "genre", "locations")
		require.Equal(t, []string{"title", "genre", "locations"}, got.Keys())
	})

	t.Run("missing keys are skipped by default", func(t *testing.T) {
		got := src.Pick("title", "nonexistent")
		require.Equal(t, Document{{Key: "title", Value: "Inception"}}, got)
	})

	t.Run("no keys yields empty document", func(t *testing.T) {
		got := src.Pick()
		require.NotNil(t, got)
		require.Len(t, got, 0)
	})

	t.Run("repeated key keeps first position", func(t *testing.T) {
		got := src.Pick("title", "genre", "title")
		require.Equal(t, []string{"title", "genre"}, got.Keys())
	})

	t.Run("projection carries the source value unchanged", func(t *testing.T) {
		v, _ := src.Get("locations")
		got := src.Pick("locations")
		pv, _ := got.Get("locations")
		require.Equal(t, v, pv)
	})
}

func TestPickStrict(t *testing.T) {
	src := Build(
		Entry{Key: "title", Value: "Inception"},
		Entry{Key: "genre", Value: "Sci-Fi"},
	)

	t.Run("all keys present behaves like Pick", func(t *testing.T) {
		got, err := src.PickStrict("genre", "title")
		require.NoError(t, err)
		require.Equal(t, []string{"genre", "title"}, got.Keys())
	})

	t.Run("missing key fails with FieldNotFoundError", func(t *testing.T) {
		_, err := src.PickStrict("title", "nonexistent")
		var ferr *FieldNotFoundError
		require.ErrorAs(t, err, &ferr)
		require.Equal(t, "nonexistent", ferr.Key)
	})
}
