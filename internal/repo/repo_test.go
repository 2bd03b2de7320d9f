package repo

import (
	"errors"
	"testing"

	"github.com/rogerio-castellano/listing-tracker/internal/models"
)

func TestSubscribeIsIdempotent(t *testing.T) {
	r := NewInMemorySubscriptionRepository()

	created, err := r.Subscribe("12345")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if !created {
		t.Error("expected first subscribe to report created")
	}

	created, err = r.Subscribe("12345")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if created {
		t.Error("expected second subscribe to report already subscribed")
	}

	all, err := r.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 || all[0] != "12345" {
		t.Errorf("expected exactly one subscription for 12345, got %v", all)
	}
}

func TestGetAllPreservesInsertionOrder(t *testing.T) {
	r := NewInMemorySubscriptionRepository()
	for _, a := range []string{"3", "1", "2"} {
		if _, err := r.Subscribe(a); err != nil {
			t.Fatalf("Subscribe %s: %v", a, err)
		}
	}

	all, _ := r.GetAll()
	want := []string{"3", "1", "2"}
	for i, a := range want {
		if all[i] != a {
			t.Fatalf("expected order %v, got %v", want, all)
		}
	}
}

func TestGetAllEmptyIsValid(t *testing.T) {
	r := NewInMemorySubscriptionRepository()
	all, err := r.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty list, got %v", all)
	}
}

func TestUpsertOverwritesAllFields(t *testing.T) {
	r := NewInMemoryRecordRepository()

	first := models.Product{Title: "Widget", Price: 159.9, Rating: 4.5, TotalQuantity: 10}
	if _, err := r.Upsert("12345", first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	second := models.Product{Title: "Widget v2", Price: 99.99, Rating: 0, TotalQuantity: 0}
	stored, err := r.Upsert("12345", second)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := r.GetByArtikul("12345")
	if err != nil {
		t.Fatalf("GetByArtikul: %v", err)
	}
	if got != stored {
		t.Errorf("stored record %+v differs from upsert result %+v", got, stored)
	}
	if got.Title != "Widget v2" || got.Price != 99.99 || got.Rating != 0 || got.TotalQuantity != 0 {
		t.Errorf("expected full overwrite, got %+v", got)
	}
	if got.ID != 1 {
		t.Errorf("expected upsert to keep the original row, got id %d", got.ID)
	}
}

func TestGetByArtikulNotFound(t *testing.T) {
	r := NewInMemoryRecordRepository()
	_, err := r.GetByArtikul("nope")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
