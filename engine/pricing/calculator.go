// Package pricing computes running totals for a settled selection. Money is
// decimal throughout; floats never touch a price.
package pricing

import (
	"github.com/fretforge/fretforge/engine/catalog"
	"github.com/fretforge/fretforge/engine/resolver"
	"github.com/shopspring/decimal"
)

// Quote is the displayable pricing outcome for one selection.
type Quote struct {
	Total decimal.Decimal
	// SaleTotal carries the parallel sale-base total when OnSale is true.
	SaleTotal decimal.Decimal
	SaleLabel string
	OnSale    bool
}

// Total applies every selected option's delta to the given base price.
// Percentage deltas always reference the ORIGINAL base, never the running
// total, so two pct options never compound. Selection entries that no
// longer match an option by exact name are skipped silently; the selection
// may reference a now-hidden option transiently between updates.
func Total(base decimal.Decimal, sel *resolver.Selection, cat *catalog.Catalog) decimal.Decimal {
	total := base
	for _, pair := range sel.Pairs() {
		opt, ok := cat.FindOption(pair.GroupKey, pair.Option)
		if !ok {
			continue
		}
		switch opt.PriceType {
		case catalog.PricePct:
			total = total.Add(base.Mul(opt.Delta).Div(decimal.NewFromInt(100)))
		default:
			// add and abs are both flat additions.
			total = total.Add(opt.Delta)
		}
	}
	return total
}

// Compute builds the quote for a product: the regular total and, when the
// product is on sale, the same deltas applied a second time to the sale
// base. Pure duplication of one algorithm over two bases.
func Compute(product *catalog.Product, sel *resolver.Selection, cat *catalog.Catalog) Quote {
	q := Quote{Total: Total(product.BasePrice, sel, cat)}
	if product.OnSale() {
		q.OnSale = true
		q.SaleLabel = product.SaleLabel
		q.SaleTotal = Total(product.SalePrice, sel, cat)
	}
	return q
}
