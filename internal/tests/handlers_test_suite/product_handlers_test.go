package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/rogerio-castellano/listing-tracker/internal/http"
	handler "github.com/rogerio-castellano/listing-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/listing-tracker/internal/models"
)

func TestSubscribeHandler_CreatedThenAlreadyExists(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/subscribe/12345", nil))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var resp handler.SubscribeResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Status != "created" || resp.Artikul != "12345" {
		t.Errorf("unexpected response %+v", resp)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/subscribe/12345", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK on repeat subscribe, got %d", w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Status != "already_exists" {
		t.Errorf("expected already_exists, got %q", resp.Status)
	}

	subs, _ := subscriptionRepo.GetAll()
	if len(subs) != 1 {
		t.Errorf("expected exactly one subscription, got %v", subs)
	}
}

func TestSubscribeHandler_InvalidArtikul(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter(nil)

	for _, artikul := range []string{"%20", "abc", "12a45"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/subscribe/"+artikul, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("artikul %q: expected 400, got %d", artikul, w.Code)
		}
	}
}

func TestSubscribeHandler_RequiresAuth(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/subscribe/12345", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestCreateProductHandler_FetchesAndStores(t *testing.T) {
	t.Cleanup(clearAll)
	catalogSrv.setPayload("12345",
		`{"data":{"products":[{"name":"Widget","salePriceU":"9999","rating":4.5,"totalQuantity":10}]}}`)
	r := api.NewRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/products", []byte(`{"artikul":"12345"}`)))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.ProductResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Product.Title != "Widget" || resp.Product.Price != 99.99 {
		t.Errorf("unexpected product %+v", resp.Product)
	}

	stored, err := recordRepo.GetByArtikul("12345")
	if err != nil {
		t.Fatalf("expected stored record: %v", err)
	}
	if stored.Title != "Widget" || stored.Price != 99.99 || stored.Rating != 4.5 || stored.TotalQuantity != 10 {
		t.Errorf("unexpected stored record %+v", stored)
	}
}

func TestCreateProductHandler_SourceDown(t *testing.T) {
	t.Cleanup(clearAll)
	catalogSrv.setStatus("500500", http.StatusInternalServerError)
	r := api.NewRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/products", []byte(`{"artikul":"500500"}`)))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestCreateProductHandler_MalformedPayloadFromSource(t *testing.T) {
	t.Cleanup(clearAll)
	catalogSrv.setPayload("666", `{"data":{"products":[{"salePriceU":"not-a-number"}]}}`)
	r := api.NewRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/products", []byte(`{"artikul":"666"}`)))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestCreateProductHandler_InvalidInput(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter(nil)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"missing artikul", `{}`},
		{"blank artikul", `{"artikul":"  "}`},
		{"non-numeric artikul", `{"artikul":"widget"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/products", []byte(tt.body)))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestGetProductHandler(t *testing.T) {
	t.Cleanup(clearAll)
	recordRepo.Upsert("12345", models.Product{Title: "Widget", Price: 99.99, Rating: 4.5, TotalQuantity: 10})
	r := api.NewRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/12345", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var p models.Product
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if p.Artikul != "12345" || p.Title != "Widget" {
		t.Errorf("unexpected product %+v", p)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/99999", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown artikul, got %d", w.Code)
	}
}
