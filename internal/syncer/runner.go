// Package syncer drives the periodic refresh of subscribed artikuls:
// a Runner performs one fetch-and-upsert pass, a Scheduler decides when
// passes happen.
package syncer

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/listing-tracker/internal/models"
	"github.com/rogerio-castellano/listing-tracker/internal/repo"
)

// Fetcher retrieves the current snapshot for one artikul.
type Fetcher interface {
	Fetch(ctx context.Context, artikul string) (models.Product, error)
}

// ItemResult records the outcome for one artikul within a cycle.
type ItemResult struct {
	Artikul string `json:"artikul"`
	Status  string `json:"status"` // "ok" or "failed"
	Reason  string `json:"reason,omitempty"`
}

// CycleReport summarizes one pass over the subscription set. Error is set
// only when the subscription listing itself failed; per-item failures stay
// in Results and never fail the cycle.
type CycleReport struct {
	ID         string        `json:"id"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Processed  int           `json:"processed"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	Results    []ItemResult  `json:"results,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// Runner executes sync cycles over the stored subscription set.
type Runner struct {
	subs    repo.SubscriptionRepository
	records repo.RecordRepository
	fetcher Fetcher
	timeout time.Duration
}

func NewRunner(subs repo.SubscriptionRepository, records repo.RecordRepository, fetcher Fetcher, itemTimeout time.Duration) *Runner {
	if itemTimeout <= 0 {
		itemTimeout = 15 * time.Second
	}
	return &Runner{subs: subs, records: records, fetcher: fetcher, timeout: itemTimeout}
}

// RunCycle takes a fresh snapshot of the subscription list and performs
// fetch+upsert for each artikul. A failing item is recorded and skipped;
// the remaining items still run.
func (r *Runner) RunCycle(ctx context.Context) (report CycleReport) {
	report = CycleReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
	}()

	artikuls, err := r.subs.GetAll()
	if err != nil {
		report.Error = err.Error()
		log.Printf("sync %s: could not list subscriptions: %v", report.ID, err)
		return report
	}

	for _, artikul := range artikuls {
		report.Processed++
		if err := r.refreshItem(ctx, artikul); err != nil {
			report.Failed++
			report.Results = append(report.Results, ItemResult{Artikul: artikul, Status: "failed", Reason: err.Error()})
			log.Printf("sync %s: artikul %s: %v", report.ID, artikul, err)
			continue
		}
		report.Succeeded++
		report.Results = append(report.Results, ItemResult{Artikul: artikul, Status: "ok"})
	}

	log.Printf("sync %s: processed=%d succeeded=%d failed=%d", report.ID, report.Processed, report.Succeeded, report.Failed)
	return report
}

func (r *Runner) refreshItem(ctx context.Context, artikul string) error {
	itemCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	p, err := r.fetcher.Fetch(itemCtx, artikul)
	if err != nil {
		return err
	}
	_, err = r.records.Upsert(artikul, p)
	return err
}
