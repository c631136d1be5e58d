package catalog

import (
	"strings"

	"github.com/fretforge/fretforge/engine/canon"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Price Type
// -----------------------------------------------------------------------------

// PriceType describes how an option's delta is applied to the base price.
type PriceType string

const (
	// PriceAdd is a flat signed addition to the total.
	PriceAdd PriceType = "add"
	// PricePct is a percentage of the ORIGINAL base price, never compounded.
	PricePct PriceType = "pct"
	// PriceAbs behaves like add; kept distinct because the sheets carry it.
	PriceAbs PriceType = "abs"
)

func (p PriceType) String() string {
	return string(p)
}

// ParsePriceType coerces a raw cell into a recognized price type. The sheets
// spell these several ways; anything unrecognized falls back to add.
func ParsePriceType(s string) PriceType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pct", "percent", "percentage", "%":
		return PricePct
	case "abs", "absolute":
		return PriceAbs
	default:
		return PriceAdd
	}
}

// -----------------------------------------------------------------------------
// Option
// -----------------------------------------------------------------------------

// Dependency gates an option on another group holding a specific value.
type Dependency struct {
	// GroupKey is the canonical key of the group this option depends on.
	GroupKey string
	// Value is the required chosen-option display value.
	Value string
}

// Matches reports whether the given selected option name satisfies the
// dependency. Both sides go through the same canonicalization.
func (d Dependency) Matches(selected string) bool {
	return canon.Equal(d.Value, selected)
}

// Option is one configurable choice inside a group. Immutable after
// normalization.
type Option struct {
	Name      string
	GroupKey  string
	Delta     decimal.Decimal
	PriceType PriceType
	IsDefault bool
	Sort      int
	Visible   bool
	DependsOn *Dependency
}

// HasDependency reports whether this option is gated by another group.
func (o *Option) HasDependency() bool {
	return o.DependsOn != nil && o.DependsOn.GroupKey != ""
}

// -----------------------------------------------------------------------------
// Product
// -----------------------------------------------------------------------------

// Product is one sellable model. Immutable for the page view's lifetime.
type Product struct {
	Model      string
	Title      string
	Series     string
	BasePrice  decimal.Decimal
	SalePrice  decimal.Decimal
	SaleLabel  string
	SaleActive bool
}

// OnSale reports whether the parallel sale total applies.
func (p *Product) OnSale() bool {
	return p.SaleActive && p.SalePrice.IsPositive()
}

// SpecRow is one label/value line of the product spec table. No pricing
// impact.
type SpecRow struct {
	Label string
	Value string
	Sort  int
}

// -----------------------------------------------------------------------------
// Catalog
// -----------------------------------------------------------------------------

// Catalog is the typed in-memory view of one product's rows, rebuilt fully
// on each data load.
type Catalog struct {
	Product *Product
	// Groups maps canonical group key to the group's options, sorted by
	// rank ascending with input order breaking ties.
	Groups map[string][]Option
	// GroupNames maps canonical key to the first-seen raw spelling.
	GroupNames map[string]string
	// GroupOrder preserves first-seen group order for deterministic
	// rendering.
	GroupOrder []string
	Specs      []SpecRow
}

// Options returns the ordered option list for a canonical group key.
func (c *Catalog) Options(groupKey string) []Option {
	return c.Groups[groupKey]
}

// DisplayName returns the first-seen raw spelling for a canonical key,
// falling back to the key itself.
func (c *Catalog) DisplayName(groupKey string) string {
	if name, ok := c.GroupNames[groupKey]; ok {
		return name
	}
	return groupKey
}

// FindOption looks up an option by exact display name within a group.
func (c *Catalog) FindOption(groupKey, name string) (*Option, bool) {
	opts := c.Groups[groupKey]
	for i := range opts {
		if opts[i].Name == name {
			return &opts[i], true
		}
	}
	return nil, false
}
