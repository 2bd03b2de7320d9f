package handlers

import (
	"net/http"
	"strconv"
)

// TriggerSyncHandler starts an immediate cycle. When a cycle is already in
// flight the trigger is coalesced and the handler answers 409.
func TriggerSyncHandler(w http.ResponseWriter, r *http.Request) {
	if syncTrigger.TriggerNow() {
		writeJSON(w, http.StatusAccepted, SyncTriggerResult{Status: "started"})
		return
	}
	writeJSON(w, http.StatusConflict, SyncTriggerResult{Status: "busy"})
}

// SyncReportsHandler lists recent cycle reports, newest first.
func SyncReportsHandler(w http.ResponseWriter, r *http.Request) {
	if reportSource == nil {
		http.Error(w, "report log not configured", http.StatusNotFound)
		return
	}

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	reports, err := reportSource.RecentReports(limit)
	if err != nil {
		http.Error(w, "could not fetch reports", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
