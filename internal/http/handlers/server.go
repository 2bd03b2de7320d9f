package handlers

import (
	"context"
	"time"

	"github.com/rogerio-castellano/listing-tracker/internal/models"
	"github.com/rogerio-castellano/listing-tracker/internal/repo"
	"github.com/rogerio-castellano/listing-tracker/internal/syncer"
)

// ProductFetcher is the ad-hoc fetch path into the catalog source.
type ProductFetcher interface {
	Fetch(ctx context.Context, artikul string) (models.Product, error)
}

// SyncTrigger starts a cycle unless one is already in flight.
type SyncTrigger interface {
	TriggerNow() bool
}

// ReportSource serves recent cycle reports.
type ReportSource interface {
	RecentReports(n int) ([]syncer.CycleReport, error)
}

var (
	recordRepo       repo.RecordRepository
	subscriptionRepo repo.SubscriptionRepository
	userRepo         repo.UserRepository
	fetcher          ProductFetcher
	syncTrigger      SyncTrigger
	reportSource     ReportSource
	fetchTimeout     = 15 * time.Second
)

func SetRecordRepo(r repo.RecordRepository) {
	recordRepo = r
}

func SetSubscriptionRepo(r repo.SubscriptionRepository) {
	subscriptionRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetFetcher(f ProductFetcher) {
	fetcher = f
}

func SetSyncTrigger(t SyncTrigger) {
	syncTrigger = t
}

func SetReportSource(s ReportSource) {
	reportSource = s
}

func SetFetchTimeout(d time.Duration) {
	if d > 0 {
		fetchTimeout = d
	}
}
