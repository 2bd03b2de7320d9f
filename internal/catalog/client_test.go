package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestFetchNormalizesEntry(t *testing.T) {
	c := newTestClient(t, jsonHandler(`{"data":{"products":[
		{"name":"Widget","salePriceU":15990,"rating":4.5,"totalQuantity":10}
	]}}`))

	p, err := c.Fetch(context.Background(), "12345")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.Artikul != "12345" {
		t.Errorf("expected artikul 12345, got %q", p.Artikul)
	}
	if p.Title != "Widget" {
		t.Errorf("expected title Widget, got %q", p.Title)
	}
	if p.Price != 159.9 {
		t.Errorf("expected price 159.9, got %v", p.Price)
	}
	if p.Rating != 4.5 {
		t.Errorf("expected rating 4.5, got %v", p.Rating)
	}
	if p.TotalQuantity != 10 {
		t.Errorf("expected quantity 10, got %d", p.TotalQuantity)
	}
}

func TestFetchPriceVariants(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		price float64
	}{
		{
			name:  "quoted minor units",
			body:  `{"data":{"products":[{"name":"Widget","salePriceU":"9999"}]}}`,
			price: 99.99,
		},
		{
			name:  "null price",
			body:  `{"data":{"products":[{"name":"Widget","salePriceU":null}]}}`,
			price: 0,
		},
		{
			name:  "absent price",
			body:  `{"data":{"products":[{"name":"Widget"}]}}`,
			price: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, jsonHandler(tt.body))
			p, err := c.Fetch(context.Background(), "1")
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if p.Price != tt.price {
				t.Errorf("expected price %v, got %v", tt.price, p.Price)
			}
		})
	}
}

func TestFetchAppliesDefaults(t *testing.T) {
	c := newTestClient(t, jsonHandler(`{"data":{"products":[{"salePriceU":500}]}}`))

	p, err := c.Fetch(context.Background(), "7")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.Title != TitlePlaceholder {
		t.Errorf("expected placeholder title, got %q", p.Title)
	}
	if p.Rating != 0 {
		t.Errorf("expected rating 0, got %v", p.Rating)
	}
	if p.TotalQuantity != 0 {
		t.Errorf("expected quantity 0, got %d", p.TotalQuantity)
	}
}

func TestFetchEmptyProductListYieldsDefaultedRecord(t *testing.T) {
	c := newTestClient(t, jsonHandler(`{"data":{"products":[]}}`))

	p, err := c.Fetch(context.Background(), "404404")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.Artikul != "404404" || p.Title != TitlePlaceholder || p.Price != 0 {
		t.Errorf("expected defaulted record, got %+v", p)
	}
}

func TestFetchTransportFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Fetch(context.Background(), "1")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestFetchMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>try later</html>`},
		{"non-numeric price", `{"data":{"products":[{"salePriceU":"abc"}]}}`},
		{"wrong rating type", `{"data":{"products":[{"rating":"high"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, jsonHandler(tt.body))
			_, err := c.Fetch(context.Background(), "1")
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestFetchRejectsEmptyArtikul(t *testing.T) {
	c := newTestClient(t, jsonHandler(`{}`))

	_, err := c.Fetch(context.Background(), "  ")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
