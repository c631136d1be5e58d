package configurator

import (
	"github.com/fretforge/fretforge/engine/catalog"
	"github.com/fretforge/fretforge/engine/pricing"
	"github.com/fretforge/fretforge/engine/resolver"
)

// OptionView is one renderable choice inside a group.
type OptionView struct {
	Name      string `json:"name"`
	Delta     string `json:"delta"`
	PriceType string `json:"price_type"`
	Default   bool   `json:"default"`
}

// GroupView is one choice widget: the group's display name and the options
// currently legal to offer.
type GroupView struct {
	Key       string       `json:"key"`
	Name      string       `json:"name"`
	Dependent bool         `json:"dependent"`
	Options   []OptionView `json:"options"`
}

// SpecView is one label/value row of the product spec table.
type SpecView struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuoteView carries the displayable prices.
type QuoteView struct {
	Total     string `json:"total"`
	SaleTotal string `json:"sale_total,omitempty"`
	SaleLabel string `json:"sale_label,omitempty"`
	OnSale    bool   `json:"on_sale"`
}

// View is everything the presentation layer needs to render one settled
// configuration.
type View struct {
	Model     string            `json:"model"`
	Title     string            `json:"title"`
	Series    string            `json:"series,omitempty"`
	BasePrice string            `json:"base_price"`
	Specs     []SpecView        `json:"specs,omitempty"`
	Groups    []GroupView       `json:"groups"`
	Selection map[string]string `json:"selection"`
	Quote     QuoteView         `json:"quote"`
}

func buildView(cat *catalog.Catalog, eng *resolver.Engine) *View {
	q := pricing.Compute(cat.Product, eng.Selection(), cat)
	v := &View{
		Model:     cat.Product.Model,
		Title:     cat.Product.Title,
		Series:    cat.Product.Series,
		BasePrice: cat.Product.BasePrice.StringFixed(2),
		Selection: eng.Selection().Snapshot(),
		Quote: QuoteView{
			Total:  q.Total.StringFixed(2),
			OnSale: q.OnSale,
		},
	}
	if q.OnSale {
		v.Quote.SaleTotal = q.SaleTotal.StringFixed(2)
		v.Quote.SaleLabel = q.SaleLabel
	}
	for _, s := range cat.Specs {
		v.Specs = append(v.Specs, SpecView{Label: s.Label, Value: s.Value})
	}
	for _, key := range cat.GroupOrder {
		opts := eng.VisibleOptions(key)
		if len(opts) == 0 {
			// Inert or fully gated groups stay off the page.
			continue
		}
		g := GroupView{
			Key:       key,
			Name:      cat.DisplayName(key),
			Dependent: eng.IsDependent(key),
		}
		for _, o := range opts {
			g.Options = append(g.Options, OptionView{
				Name:      o.Name,
				Delta:     o.Delta.StringFixed(2),
				PriceType: o.PriceType.String(),
				Default:   o.IsDefault,
			})
		}
		v.Groups = append(v.Groups, g)
	}
	return v
}
