package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRows(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "No results.", Rows(nil))
	})

	t.Run("renders header and row count", func(t *testing.T) {
		out := Rows([]map[string]interface{}{
			{"name": "Q4 Launch", "impressions": float64(120000)},
			{"name": "Spring Promo", "impressions": float64(84500)},
		})

		assert.Contains(t, out, "impressions")
		assert.Contains(t, out, "name")
		assert.Contains(t, out, "Q4 Launch")
		assert.Contains(t, out, "120000")
		assert.Contains(t, out, "2 row(s)")
	})

	t.Run("columns are alphabetical", func(t *testing.T) {
		out := Rows([]map[string]interface{}{{"b": "2", "a": "1"}})
		header := strings.SplitN(out, "\n", 2)[0]
		assert.Less(t, strings.Index(header, "a"), strings.Index(header, "b"))
	})

	t.Run("missing cells render as dash", func(t *testing.T) {
		out := Rows([]map[string]interface{}{
			{"a": "1", "b": "2"},
			{"a": "3"},
		})
		assert.Contains(t, out, "-")
	})
}

func TestRecord(t *testing.T) {
	out := Record(map[string]interface{}{
		"name":   "Acme Brand",
		"budget": 1500.5,
	})

	assert.Equal(t, "budget: 1500.50\nname: Acme Brand", out)
}

func TestValue(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, "No results.", Value(nil))
	})

	t.Run("decoded JSON array", func(t *testing.T) {
		out := Value([]interface{}{
			map[string]interface{}{"id": "c1"},
		})
		assert.Contains(t, out, "c1")
		assert.Contains(t, out, "1 row(s)")
	})

	t.Run("scalar", func(t *testing.T) {
		assert.Equal(t, "42", Value(42))
	})
}
