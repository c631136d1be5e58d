package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fretforge/fretforge/engine/canon"
	"github.com/fretforge/fretforge/engine/core"
)

// ErrProductNotFound signals that the requested model key has no product
// row. Fatal for the page view; callers must render an unavailable state and
// never substitute another product.
var ErrProductNotFound = errors.New("product not found")

// Column positions for the three sheet shapes. Header-addressed lookup takes
// precedence when the rows carry a header index; these are the fallbacks.
const (
	prodColModel = iota
	prodColTitle
	prodColSeries
	prodColBasePrice
	prodColSalePrice
	prodColSaleLabel
	prodColSaleActive
)

const (
	optColModel = iota
	optColGroup
	optColName
	optColPrice
	optColPriceType
	optColDefault
	optColSort
	optColVisible
	optColDependsGroup
	optColDependsValue
)

const (
	specColModel = iota
	specColLabel
	specColValue
	specColSort
)

// Build converts the raw rows for one model into a typed catalog. Rows for
// other models are ignored, so callers may pass unfiltered sheets. Malformed
// cells are resolved by defaulting and never abort the load; only a missing
// product row is fatal.
func Build(modelKey string, productRows, optionRows, specRows []core.Row) (*Catalog, error) {
	product, err := findProduct(modelKey, productRows)
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		Product:    product,
		Groups:     make(map[string][]Option),
		GroupNames: make(map[string]string),
	}
	modelCanon := canon.Key(modelKey)
	for _, row := range optionRows {
		if canon.Key(row.StringByHeader("model", optColModel)) != modelCanon {
			continue
		}
		appendOption(c, row)
	}
	for key := range c.Groups {
		opts := c.Groups[key]
		sort.SliceStable(opts, func(i, j int) bool { return opts[i].Sort < opts[j].Sort })
		c.Groups[key] = opts
	}
	c.Specs = buildSpecs(modelCanon, specRows)
	return c, nil
}

func findProduct(modelKey string, rows []core.Row) (*Product, error) {
	want := canon.Key(modelKey)
	for _, row := range rows {
		model := row.StringByHeader("model", prodColModel)
		if canon.Key(model) != want {
			continue
		}
		return &Product{
			Model:      model,
			Title:      row.StringByHeader("title", prodColTitle),
			Series:     row.StringByHeader("series", prodColSeries),
			BasePrice:  core.ParseDecimal(row.CellByHeader("base_price", prodColBasePrice)),
			SalePrice:  core.ParseDecimal(row.CellByHeader("sale_price", prodColSalePrice)),
			SaleLabel:  row.StringByHeader("sale_label", prodColSaleLabel),
			SaleActive: core.ParseFlexibleBool(row.CellByHeader("sale_active", prodColSaleActive), false),
		}, nil
	}
	return nil, fmt.Errorf("model %q: %w", modelKey, ErrProductNotFound)
}

func appendOption(c *Catalog, row core.Row) {
	groupName := row.StringByHeader("group", optColGroup)
	optionName := row.StringByHeader("option", optColName)
	groupKey := canon.Key(groupName)
	if groupKey == "" || optionName == "" {
		return
	}
	opt := Option{
		Name:      optionName,
		GroupKey:  groupKey,
		Delta:     core.ParseDecimal(row.CellByHeader("price", optColPrice)),
		PriceType: ParsePriceType(row.StringByHeader("price_type", optColPriceType)),
		IsDefault: core.ParseFlexibleBool(row.CellByHeader("default", optColDefault), false),
		Sort:      core.ParseSortRank(row.CellByHeader("sort", optColSort)),
		// A blank visibility cell means visible. One policy everywhere.
		Visible: core.ParseFlexibleBool(row.CellByHeader("visible", optColVisible), true),
	}
	if depGroup := canon.Key(row.StringByHeader("depends_on_group", optColDependsGroup)); depGroup != "" {
		opt.DependsOn = &Dependency{
			GroupKey: depGroup,
			Value:    row.StringByHeader("depends_on_value", optColDependsValue),
		}
	}
	if _, seen := c.GroupNames[groupKey]; !seen {
		c.GroupNames[groupKey] = groupName
		c.GroupOrder = append(c.GroupOrder, groupKey)
	}
	c.Groups[groupKey] = append(c.Groups[groupKey], opt)
}

func buildSpecs(modelCanon string, rows []core.Row) []SpecRow {
	var specs []SpecRow
	for _, row := range rows {
		if canon.Key(row.StringByHeader("model", specColModel)) != modelCanon {
			continue
		}
		label := row.StringByHeader("label", specColLabel)
		if label == "" {
			continue
		}
		specs = append(specs, SpecRow{
			Label: label,
			Value: row.StringByHeader("value", specColValue),
			Sort:  core.ParseSortRank(row.CellByHeader("sort", specColSort)),
		})
	}
	sort.SliceStable(specs, func(i, j int) bool { return specs[i].Sort < specs[j].Sort })
	return specs
}
