// Package catalog fetches item snapshots from the external card API and
// normalizes them into the stored product shape.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/listing-tracker/internal/models"
	"golang.org/x/time/rate"
)

// TitlePlaceholder substitutes a missing product name in the source payload.
const TitlePlaceholder = "unknown"

var (
	// ErrFetch covers transport failures and non-2xx responses from the
	// catalog source. Retrying is the caller's decision.
	ErrFetch = errors.New("catalog request failed")

	// ErrValidation covers responses that cannot be normalized into a
	// product record.
	ErrValidation = errors.New("catalog response validation failed")
)

// Client queries the card endpoint for one artikul at a time. It has no
// state beyond the HTTP client and an outbound rate limiter; fetches have
// no side effects.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	// RPS/Burst bound the request rate towards the source; zero RPS
	// disables limiting.
	RPS   float64
	Burst int
}

func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("catalog base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid catalog base URL: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	var limiter *rate.Limiter
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		limiter: limiter,
	}, nil
}

// cardPayload mirrors the subset of the card response the tracker reads:
// a nested list of product entries, of which only the first is relevant.
type cardPayload struct {
	Data struct {
		Products []productEntry `json:"products"`
	} `json:"data"`
}

type productEntry struct {
	Name          string     `json:"name"`
	SalePriceU    minorUnits `json:"salePriceU"`
	Rating        float64    `json:"rating"`
	TotalQuantity int        `json:"totalQuantity"`
}

// minorUnits is a price in hundredths. The source emits it as a JSON
// number, a quoted number, or null.
type minorUnits int64

func (m *minorUnits) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*m = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*m = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("salePriceU %q is not an integer: %w", s, err)
	}
	*m = minorUnits(n)
	return nil
}

// Fetch retrieves the current snapshot for artikul. An empty product list
// in the response yields a fully defaulted record rather than an error;
// the source answers that way for unknown items.
func (c *Client) Fetch(ctx context.Context, artikul string) (models.Product, error) {
	if strings.TrimSpace(artikul) == "" {
		return models.Product{}, fmt.Errorf("%w: empty artikul", ErrValidation)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return models.Product{}, fmt.Errorf("%w: %v", ErrFetch, err)
		}
	}

	u := c.baseURL + "/cards/v1/detail?appType=1&curr=rub&dest=-1257786&spp=30&nm=" + url.QueryEscape(artikul)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return models.Product{}, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	var payload cardPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.Product{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var entry productEntry
	if len(payload.Data.Products) > 0 {
		entry = payload.Data.Products[0]
	}
	return normalize(artikul, entry), nil
}

func normalize(artikul string, e productEntry) models.Product {
	title := strings.TrimSpace(e.Name)
	if title == "" {
		title = TitlePlaceholder
	}
	return models.Product{
		Artikul:       artikul,
		Title:         title,
		Price:         float64(e.SalePriceU) / 100,
		Rating:        e.Rating,
		TotalQuantity: e.TotalQuantity,
	}
}
