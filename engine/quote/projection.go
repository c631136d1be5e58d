// Package quote turns a settled configuration into the flattened summary a
// downstream notification channel sends out.
package quote

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/fretforge/fretforge/engine/catalog"
	"github.com/fretforge/fretforge/engine/pricing"
	"github.com/fretforge/fretforge/engine/resolver"
	"github.com/google/uuid"
)

// Line is one chosen option, projected with the group's display name.
type Line struct {
	Group  string `json:"group"`
	Option string `json:"option"`
}

// Summary is the notification payload for one quote request. A pure read of
// the selection plus the group display-name mapping; no new resolution
// logic.
type Summary struct {
	QuoteID   string `json:"quote_id"`
	Model     string `json:"model"`
	Title     string `json:"title"`
	Series    string `json:"series,omitempty"`
	Lines     []Line `json:"selections"`
	Total     string `json:"total"`
	SaleTotal string `json:"sale_total,omitempty"`
	SaleLabel string `json:"sale_label,omitempty"`
	OnSale    bool   `json:"on_sale"`
}

// Project flattens the selection in insertion order against the catalog's
// display names and attaches the computed prices.
func Project(cat *catalog.Catalog, sel *resolver.Selection, q pricing.Quote) Summary {
	s := Summary{
		QuoteID: uuid.NewString(),
		Model:   cat.Product.Model,
		Title:   cat.Product.Title,
		Series:  cat.Product.Series,
		Total:   q.Total.StringFixed(2),
		OnSale:  q.OnSale,
	}
	if q.OnSale {
		s.SaleTotal = q.SaleTotal.StringFixed(2)
		s.SaleLabel = q.SaleLabel
	}
	for _, pair := range sel.Pairs() {
		s.Lines = append(s.Lines, Line{
			Group:  cat.DisplayName(pair.GroupKey),
			Option: pair.Option,
		})
	}
	return s
}

const summaryTemplate = `Quote {{ .QuoteID }}
{{ .Title }}{{ if .Series }} ({{ .Series }} series){{ end }}, model {{ .Model }}
{{ range .Lines }}
  {{ .Group | trim }}: {{ .Option | trim }}
{{- end }}

Total: ${{ .Total }}
{{- if .OnSale }}
{{ .SaleLabel | default "Sale" }}: ${{ .SaleTotal }}
{{- end }}
`

// Render produces the plain-text body for the outbound notification.
func (s Summary) Render() (string, error) {
	tmpl, err := template.New("summary").Funcs(sprig.FuncMap()).Parse(summaryTemplate)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, s); err != nil {
		return "", err
	}
	return b.String(), nil
}
