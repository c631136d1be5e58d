package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleBool(t *testing.T) {
	t.Run("Should accept the mixed true representations", func(t *testing.T) {
		assert.True(t, ParseFlexibleBool(true, false))
		assert.True(t, ParseFlexibleBool("true", false))
		assert.True(t, ParseFlexibleBool("TRUE", false))
		assert.True(t, ParseFlexibleBool("True", false))
		assert.True(t, ParseFlexibleBool(1, false))
		assert.True(t, ParseFlexibleBool(int64(1), false))
		assert.True(t, ParseFlexibleBool(float64(1), false))
		assert.True(t, ParseFlexibleBool("1", false))
	})
	t.Run("Should treat everything else as false", func(t *testing.T) {
		assert.False(t, ParseFlexibleBool("yes", true))
		assert.False(t, ParseFlexibleBool("false", true))
		assert.False(t, ParseFlexibleBool(0, true))
		assert.False(t, ParseFlexibleBool(2, true))
		assert.False(t, ParseFlexibleBool([]string{"true"}, true))
	})
	t.Run("Should use the stated default when the cell is absent", func(t *testing.T) {
		assert.True(t, ParseFlexibleBool(nil, true))
		assert.False(t, ParseFlexibleBool(nil, false))
		assert.True(t, ParseFlexibleBool("", true))
		assert.True(t, ParseFlexibleBool("   ", true))
		assert.False(t, ParseFlexibleBool("", false))
	})
}

func TestParseDecimal(t *testing.T) {
	t.Run("Should parse numeric and string cells", func(t *testing.T) {
		assert.True(t, ParseDecimal(150).Equal(decimal.NewFromInt(150)))
		assert.True(t, ParseDecimal("150").Equal(decimal.NewFromInt(150)))
		assert.True(t, ParseDecimal(12.5).Equal(decimal.RequireFromString("12.5")))
		assert.True(t, ParseDecimal("-75").Equal(decimal.NewFromInt(-75)))
	})
	t.Run("Should strip currency noise", func(t *testing.T) {
		assert.True(t, ParseDecimal("$1,234.50").Equal(decimal.RequireFromString("1234.50")))
	})
	t.Run("Should default to zero on malformed cells", func(t *testing.T) {
		assert.True(t, ParseDecimal("n/a").IsZero())
		assert.True(t, ParseDecimal(nil).IsZero())
		assert.True(t, ParseDecimal("").IsZero())
		assert.True(t, ParseDecimal([]int{1}).IsZero())
	})
}

func TestParseSortRank(t *testing.T) {
	t.Run("Should coerce numeric forms", func(t *testing.T) {
		assert.Equal(t, 3, ParseSortRank(3))
		assert.Equal(t, 3, ParseSortRank(3.0))
		assert.Equal(t, 3, ParseSortRank("3"))
		assert.Equal(t, 3, ParseSortRank("3.7"))
	})
	t.Run("Should default to zero", func(t *testing.T) {
		assert.Equal(t, 0, ParseSortRank(nil))
		assert.Equal(t, 0, ParseSortRank("first"))
	})
}

func TestRow(t *testing.T) {
	t.Run("Should address cells positionally", func(t *testing.T) {
		row := NewRow("MB-150", "Tone Ring", 150)
		assert.Equal(t, "Tone Ring", row.String(1))
		assert.Nil(t, row.Cell(9))
		assert.Equal(t, "", row.String(-1))
	})
	t.Run("Should prefer the header index when present", func(t *testing.T) {
		row := Row{
			Cells:  []any{"MB-150", "Brass", 150},
			Header: HeaderIndex([]string{"Model", "Option", "Price"}),
		}
		assert.Equal(t, "Brass", row.StringByHeader("option", 0))
		assert.Equal(t, "150", row.StringByHeader("PRICE", 0))
	})
	t.Run("Should fall back to position for unknown labels", func(t *testing.T) {
		row := Row{
			Cells:  []any{"MB-150", "Brass"},
			Header: HeaderIndex([]string{"Model", "Option"}),
		}
		assert.Equal(t, "MB-150", row.StringByHeader("sku", 0))
	})
	t.Run("Should keep first occurrence for duplicate header labels", func(t *testing.T) {
		idx := HeaderIndex([]string{"Name", "name", ""})
		assert.Equal(t, 0, idx["name"])
		_, hasBlank := idx[""]
		assert.False(t, hasBlank)
	})
}
