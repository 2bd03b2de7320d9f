package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/listing-tracker/internal/catalog"
	"github.com/rogerio-castellano/listing-tracker/internal/repo"
)

// SubscribeHandler adds an artikul to the subscription set. Subscribing an
// already-tracked artikul is a distinct, successful outcome.
func SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	artikul := strings.TrimSpace(chi.URLParam(r, "artikul"))
	if !validArtikul(artikul) {
		http.Error(w, "invalid artikul", http.StatusBadRequest)
		return
	}

	created, err := subscriptionRepo.Subscribe(artikul)
	if err != nil {
		http.Error(w, "could not subscribe", http.StatusInternalServerError)
		return
	}

	if created {
		writeJSON(w, http.StatusCreated, SubscribeResult{Status: "created", Artikul: artikul})
		return
	}
	writeJSON(w, http.StatusOK, SubscribeResult{Status: "already_exists", Artikul: artikul})
}

// CreateProductHandler performs a synchronous fetch-and-save for a single
// artikul, independent of the subscription set.
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	artikul := strings.TrimSpace(req.Artikul)
	if !validArtikul(artikul) {
		http.Error(w, "invalid artikul", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	product, err := fetcher.Fetch(ctx, artikul)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrValidation):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, catalog.ErrFetch):
			http.Error(w, err.Error(), http.StatusBadGateway)
		default:
			http.Error(w, "could not fetch product", http.StatusInternalServerError)
		}
		return
	}

	stored, err := recordRepo.Upsert(artikul, product)
	if err != nil {
		http.Error(w, "could not save product", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, ProductResult{Message: "product saved", Product: stored})
}

// GetProductHandler returns the stored snapshot for an artikul; this is
// the read path the chat front end consumes.
func GetProductHandler(w http.ResponseWriter, r *http.Request) {
	artikul := chi.URLParam(r, "artikul")
	if !validArtikul(artikul) {
		http.Error(w, "invalid artikul", http.StatusBadRequest)
		return
	}

	product, err := recordRepo.GetByArtikul(artikul)
	if err != nil {
		if errors.Is(err, repo.ErrRecordNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, product)
}
