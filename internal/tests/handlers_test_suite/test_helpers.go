package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/listing-tracker/internal/catalog"
	api "github.com/rogerio-castellano/listing-tracker/internal/http"
	handler "github.com/rogerio-castellano/listing-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/listing-tracker/internal/models"
	"github.com/rogerio-castellano/listing-tracker/internal/repo"
	"github.com/rogerio-castellano/listing-tracker/internal/syncer"
)

var (
	token            string
	recordRepo       *repo.InMemoryRecordRepository
	subscriptionRepo *repo.InMemorySubscriptionRepository
	catalogSrv       *fakeCatalog
	scheduler        *syncer.Scheduler
	runner           *syncer.Runner
	reportSink       *memoryReports
)

// fakeCatalog serves card payloads keyed by artikul and can hold responses
// open to simulate a slow source.
type fakeCatalog struct {
	mu       sync.Mutex
	payloads map[string]string
	statuses map[string]int
	block    chan struct{}
	srv      *httptest.Server
}

func newFakeCatalog() *fakeCatalog {
	f := &fakeCatalog{
		payloads: map[string]string{},
		statuses: map[string]int{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		block := f.block
		artikul := r.URL.Query().Get("nm")
		status, hasStatus := f.statuses[artikul]
		body, ok := f.payloads[artikul]
		f.mu.Unlock()

		if block != nil {
			<-block
		}
		if hasStatus {
			w.WriteHeader(status)
			return
		}
		if !ok {
			body = `{"data":{"products":[]}}`
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	return f
}

func (f *fakeCatalog) setPayload(artikul, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads[artikul] = body
}

func (f *fakeCatalog) setStatus(artikul string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[artikul] = status
}

func (f *fakeCatalog) setBlock(ch chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.block = ch
}

func (f *fakeCatalog) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = map[string]string{}
	f.statuses = map[string]int{}
	f.block = nil
}

type memoryReports struct {
	mu      sync.Mutex
	reports []syncer.CycleReport
}

func (m *memoryReports) LogCycleReport(report syncer.CycleReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, report)
}

func (m *memoryReports) RecentReports(n int) ([]syncer.CycleReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]syncer.CycleReport, 0, n)
	for i := len(m.reports) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.reports[i])
	}
	return out, nil
}

func (m *memoryReports) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reports)
}

func init() {
	recordRepo = repo.NewInMemoryRecordRepository()
	subscriptionRepo = repo.NewInMemorySubscriptionRepository()
	catalogSrv = newFakeCatalog()
	reportSink = &memoryReports{}

	handler.SetRecordRepo(recordRepo)
	handler.SetSubscriptionRepo(subscriptionRepo)
	handler.SetReportSource(reportSink)

	client, err := catalog.NewClient(catalog.Options{BaseURL: catalogSrv.srv.URL})
	if err != nil {
		panic(fmt.Sprintf("error creating catalog client: %v", err))
	}
	handler.SetFetcher(client)

	runner = syncer.NewRunner(subscriptionRepo, recordRepo, client, 0)
	scheduler = syncer.NewScheduler(runner, reportSink)
	handler.SetSyncTrigger(scheduler)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{Username: "admin", PasswordHash: string(hash)})

	token, err = generateToken("admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func generateToken(username, password string) (string, error) {
	r := api.NewRouter(nil)
	body, _ := json.Marshal(handler.CredentialsRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", w.Code)
	}
	var result handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

func clearAll() {
	recordRepo.Clear()
	subscriptionRepo.Clear()
	catalogSrv.reset()
}

func authedRequest(method, path string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
