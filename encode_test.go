package jkeep

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	t.Run("round trip keeps key order exactly", func(t *testing.T) {
		input := `{"title":"Inception","genre":"Sci-Fi","locations":["A","B"]}`
		doc, err := Parse([]byte(input))
		require.NoError(t, err)

		out, err := Marshal(doc)
		require.NoError(t, err)
		require.Equal(t, input, string(out))
	})

	t.Run("round trip keeps nested order", func(t *testing.T) {
		input := `{"outer":{"z":1,"a":{"y":true,"b":null}},"arr":[{"n":2,"m":3}]}`
		doc, err := Parse([]byte(input))
		require.NoError(t, err)

		out, err := Marshal(doc)
		require.NoError(t, err)
		require.Equal(t, input, string(out))
	})

	t.Run("marshal is idempotent", func(t *testing.T) {
		doc, err := Parse([]byte(`{"b":{"d":1,"c":2},"a":[3,4]}`))
		require.NoError(t, err)

		first, err := Marshal(doc)
		require.NoError(t, err)

		reparsed, err := Parse(first)
		require.NoError(t, err)
		second, err := Marshal(reparsed)
		require.NoError(t, err)
		require.Equal(t, string(first), string(second))
	})

	t.Run("numbers are canonicalized", func(t *testing.T) {
		doc, err := Parse([]byte(`{"a":1e2,"b":1.50,"c":42}`))
		require.NoError(t, err)

		out, err := Marshal(doc)
		require.NoError(t, err)
		require.Equal(t, `{"a":100,"b":1.5,"c":42}`, string(out))
	})

	t.Run("built documents marshal in declared order", func(t *testing.T) {
		doc := Build(
			Entry{Key: "z", Value: "last-alphabetically-first-here"},
			Entry{Key: "a", Value: Array{1, 2}},
			Entry{Key: "m", Value: Build(Entry{Key: "inner", Value: true})},
		)
		out, err := Marshal(doc)
		require.NoError(t, err)
		require.Equal(t,
			`{"z":"last-alphabetically-first-here","a":[1,2],"m":{"inner":true}}`,
			string(out))
	})

	t.Run("empty document marshals to empty object", func(t *testing.T) {
		out, err := Marshal(Document{})
		require.NoError(t, err)
		require.Equal(t, `{}`, string(out))
	})

	t.Run("string renders the same text", func(t *testing.T) {
		doc := Build(Entry{Key: "b", Value: 1}, Entry{Key: "a", Value: 2})
		require.Equal(t, `{"b":1,"a":2}`, doc.String())
	})
}

func TestMarshalers(t *testing.T) {
	t.Run("document inside a larger value stays ordered", func(t *testing.T) {
		type wrapper struct {
			Name string   `json:"name"`
			Meta Document `json:"meta"`
		}
		w := wrapper{
			Name: "demo",
			Meta: Build(Entry{Key: "z", Value: 1}, Entry{Key: "a", Value: 2}),
		}
		out, err := json.Marshal(w, json.WithMarshalers(Marshalers()))
		require.NoError(t, err)
		require.Equal(t, `{"name":"demo","meta":{"z":1,"a":2}}`, string(out))
	})

	t.Run("array values marshal through the bundle", func(t *testing.T) {
		a := Array{Build(Entry{Key: "b", Value: 1}, Entry{Key: "a", Value: 2}), "x"}
		out, err := json.Marshal(a, json.WithMarshalers(Marshalers()))
		require.NoError(t, err)
		require.Equal(t, `[{"b":1,"a":2},"x"]`, string(out))
	})
}
