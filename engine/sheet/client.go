package sheet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fretforge/fretforge/engine/core"
	"github.com/fretforge/fretforge/pkg/config"
	"github.com/fretforge/fretforge/pkg/logger"
	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"github.com/tidwall/gjson"
)

// ErrTabUnavailable signals that the endpoint answered but carried no usable
// table for the requested tab.
var ErrTabUnavailable = errors.New("sheet tab unavailable")

const retryBaseDelay = 250 * time.Millisecond

// Client fetches rows from a Google Visualization ("gviz") JSON endpoint.
// The response arrives wrapped in a JSONP setResponse(...) call; the client
// strips the wrapper and reads the table with gjson.
type Client struct {
	http *resty.Client
	cfg  config.SheetsConfig
}

func NewClient(cfg config.SheetsConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: httpClient, cfg: cfg}
}

// Rows fetches and parses one tab, retrying transient failures with capped
// exponential backoff.
func (c *Client) Rows(ctx context.Context, tab string) ([]core.Row, error) {
	log := logger.FromContext(ctx)
	var rows []core.Row
	backoff := retry.WithMaxRetries(uint64(c.cfg.MaxRetries), retry.NewExponential(retryBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"tqx":   "out:json",
				"sheet": tab,
			}).
			Get(c.endpoint())
		if err != nil {
			log.Warn("sheet fetch failed", "tab", tab, "error", err)
			return retry.RetryableError(err)
		}
		if resp.StatusCode() >= 500 {
			log.Warn("sheet endpoint errored", "tab", tab, "status", resp.StatusCode())
			return retry.RetryableError(fmt.Errorf("sheet endpoint returned %d", resp.StatusCode()))
		}
		if resp.StatusCode() >= 400 {
			return fmt.Errorf("sheet endpoint returned %d for tab %q", resp.StatusCode(), tab)
		}
		rows, err = parseGviz(resp.String())
		if err != nil {
			return fmt.Errorf("tab %q: %w", tab, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("sheet rows loaded", "tab", tab, "rows", len(rows))
	return rows, nil
}

func (c *Client) endpoint() string {
	if c.cfg.DocumentID != "" {
		return "/" + c.cfg.DocumentID + "/gviz/tq"
	}
	return "/gviz/tq"
}

// parseGviz unwraps the JSONP envelope and converts the gviz table into
// rows. Column labels become the header index; cell values keep their JSON
// types so coercion stays at the normalization boundary.
func parseGviz(body string) ([]core.Row, error) {
	start := strings.Index(body, "(")
	end := strings.LastIndex(body, ")")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("malformed gviz envelope: %w", ErrTabUnavailable)
	}
	payload := body[start+1 : end]
	if !gjson.Valid(payload) {
		return nil, fmt.Errorf("invalid gviz payload: %w", ErrTabUnavailable)
	}
	doc := gjson.Parse(payload)
	if status := doc.Get("status").String(); status == "error" {
		return nil, fmt.Errorf("gviz status error: %w", ErrTabUnavailable)
	}
	table := doc.Get("table")
	if !table.Exists() {
		return nil, fmt.Errorf("gviz response has no table: %w", ErrTabUnavailable)
	}
	var labels []string
	table.Get("cols").ForEach(func(_, col gjson.Result) bool {
		labels = append(labels, col.Get("label").String())
		return true
	})
	header := core.HeaderIndex(labels)
	var rows []core.Row
	table.Get("rows").ForEach(func(_, row gjson.Result) bool {
		var cells []any
		row.Get("c").ForEach(func(_, cell gjson.Result) bool {
			cells = append(cells, cell.Get("v").Value())
			return true
		})
		rows = append(rows, core.Row{Cells: cells, Header: header})
		return true
	})
	return rows, nil
}
