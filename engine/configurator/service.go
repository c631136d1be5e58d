// Package configurator wires the row source, catalog normalizer, resolution
// engine and pricing calculator into the operations the HTTP API and CLI
// expose.
package configurator

import (
	"context"
	"fmt"

	"github.com/fretforge/fretforge/engine/catalog"
	"github.com/fretforge/fretforge/engine/pricing"
	"github.com/fretforge/fretforge/engine/quote"
	"github.com/fretforge/fretforge/engine/resolver"
	"github.com/fretforge/fretforge/engine/sheet"
	"github.com/fretforge/fretforge/pkg/config"
	"github.com/fretforge/fretforge/pkg/logger"
)

// Choice is one user selection applied in request order.
type Choice struct {
	Group  string `json:"group"  binding:"required"`
	Option string `json:"option" binding:"required"`
}

// Service loads catalogs and runs settlement passes. One service handles
// many models; each request gets its own engine instance, so no state is
// shared across page views.
type Service struct {
	source   sheet.Source
	tabs     config.SheetsConfig
	notifier *quote.Notifier
}

func NewService(source sheet.Source, tabs config.SheetsConfig, notifier *quote.Notifier) *Service {
	return &Service{source: source, tabs: tabs, notifier: notifier}
}

// LoadCatalog fetches the three tabs and normalizes them for one model.
func (s *Service) LoadCatalog(ctx context.Context, model string) (*catalog.Catalog, error) {
	products, err := s.source.Rows(ctx, s.tabs.ProductsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	options, err := s.source.Rows(ctx, s.tabs.OptionsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	specs, err := s.source.Rows(ctx, s.tabs.SpecsTab)
	if err != nil {
		// Spec rows are presentational; a missing tab does not block the
		// page the way a missing product does.
		logger.FromContext(ctx).Warn("failed to load specs", "error", err)
		specs = nil
	}
	return catalog.Build(model, products, options, specs)
}

// View loads a model and settles its default configuration.
func (s *Service) View(ctx context.Context, model string) (*View, error) {
	cat, err := s.LoadCatalog(ctx, model)
	if err != nil {
		return nil, err
	}
	eng := resolver.New(cat)
	return buildView(cat, eng), nil
}

// Configure applies the given choices in order onto fresh defaults and
// settles after each, exactly as a user clicking through the page would.
func (s *Service) Configure(ctx context.Context, model string, choices []Choice) (*View, error) {
	cat, err := s.LoadCatalog(ctx, model)
	if err != nil {
		return nil, err
	}
	eng := resolver.New(cat)
	for _, c := range choices {
		eng.Select(c.Group, c.Option)
	}
	return buildView(cat, eng), nil
}

// QuoteRequest settles the choices, projects the notification summary and
// dispatches it. Notification failure is logged but never fails the quote;
// the caller still gets the projection.
func (s *Service) QuoteRequest(ctx context.Context, model string, choices []Choice) (quote.Summary, error) {
	cat, err := s.LoadCatalog(ctx, model)
	if err != nil {
		return quote.Summary{}, err
	}
	eng := resolver.New(cat)
	for _, c := range choices {
		eng.Select(c.Group, c.Option)
	}
	q := pricing.Compute(cat.Product, eng.Selection(), cat)
	summary := quote.Project(cat, eng.Selection(), q)
	if s.notifier != nil {
		if err := s.notifier.Dispatch(ctx, summary); err != nil {
			logger.FromContext(ctx).Error("quote notification failed", "quote_id", summary.QuoteID, "error", err)
		}
	}
	return summary, nil
}
