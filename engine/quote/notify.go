package quote

import (
	"context"
	"fmt"

	"github.com/fretforge/fretforge/pkg/config"
	"github.com/fretforge/fretforge/pkg/logger"
	"github.com/go-resty/resty/v2"
)

// Notifier posts rendered quote summaries to the configured outbound
// webhook (the bridge into the shop's email integration). Dispatch is
// best-effort: failures are reported to the caller but must never fail the
// page.
type Notifier struct {
	http *resty.Client
	cfg  config.NotifyConfig
}

func NewNotifier(cfg config.NotifyConfig) *Notifier {
	return &Notifier{
		http: resty.New().SetTimeout(cfg.Timeout),
		cfg:  cfg,
	}
}

// Enabled reports whether a webhook target is configured.
func (n *Notifier) Enabled() bool {
	return n.cfg.WebhookURL != ""
}

type notifyPayload struct {
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
	From    string  `json:"from,omitempty"`
	To      string  `json:"to,omitempty"`
	Summary Summary `json:"summary"`
}

// Dispatch renders the summary and posts it. A no-op when no webhook is
// configured.
func (n *Notifier) Dispatch(ctx context.Context, s Summary) error {
	if !n.Enabled() {
		logger.FromContext(ctx).Debug("quote notification skipped, no webhook configured", "quote_id", s.QuoteID)
		return nil
	}
	body, err := s.Render()
	if err != nil {
		return fmt.Errorf("failed to render quote summary: %w", err)
	}
	resp, err := n.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(notifyPayload{
			Subject: fmt.Sprintf("Quote request: %s (%s)", s.Title, s.Model),
			Body:    body,
			From:    n.cfg.From,
			To:      n.cfg.Recipient,
			Summary: s,
		}).
		Post(n.cfg.WebhookURL)
	if err != nil {
		return fmt.Errorf("failed to dispatch quote notification: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("quote notification rejected with status %d", resp.StatusCode())
	}
	logger.FromContext(ctx).Info("quote notification dispatched", "quote_id", s.QuoteID, "status", resp.StatusCode())
	return nil
}
