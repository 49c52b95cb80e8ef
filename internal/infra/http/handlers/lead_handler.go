package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-csr/internal/infra/export"
	"github.com/xavierca1/ligue-csr/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-csr/internal/usecase"
)

type LeadHandler struct {
	CreateUC       *usecase.CreateLeadUseCase
	GetUC          *usecase.GetLeadUseCase
	ListUC         *usecase.ListLeadsUseCase
	UpdateStatusUC *usecase.UpdateLeadStatusUseCase
	UpdateNotesUC  *usecase.UpdateLeadNotesUseCase
	CompleteUC     *usecase.MarkFollowUpCompleteUseCase
	DeleteUC       *usecase.DeleteLeadUseCase
	rateLimiter    *RateLimiter
}

func NewLeadHandler(
	createUC *usecase.CreateLeadUseCase,
	getUC *usecase.GetLeadUseCase,
	listUC *usecase.ListLeadsUseCase,
	updateStatusUC *usecase.UpdateLeadStatusUseCase,
	updateNotesUC *usecase.UpdateLeadNotesUseCase,
	completeUC *usecase.MarkFollowUpCompleteUseCase,
	deleteUC *usecase.DeleteLeadUseCase,
	createLimit int,
) *LeadHandler {
	return &LeadHandler{
		CreateUC:       createUC,
		GetUC:          getUC,
		ListUC:         listUC,
		UpdateStatusUC: updateStatusUC,
		UpdateNotesUC:  updateNotesUC,
		CompleteUC:     completeUC,
		DeleteUC:       deleteUC,
		rateLimiter:    NewRateLimiter(createLimit, time.Minute),
	}
}

// RunLimiter prunes the create rate limiter until ctx is done.
func (h *LeadHandler) RunLimiter(ctx context.Context) {
	h.rateLimiter.Run(ctx, 10*time.Minute)
}

// Create handles POST /leads.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeMessage(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	input.Actor = actorFromRequest(r)

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeErrorResponse(w, err, "create")
		return
	}

	middleware.RecordLeadCreated(string(output.Status))
	writeJSON(w, http.StatusCreated, output)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.ListUC.Execute(r.Context(), listInput(r))
	if err != nil {
		writeErrorResponse(w, err, "list")
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// ExportCSV handles GET /leads/export.csv with the same filters as List.
func (h *LeadHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	leads, err := h.ListUC.Execute(r.Context(), listInput(r))
	if err != nil {
		writeErrorResponse(w, err, "list")
		return
	}

	filename := "leads_" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	export.WriteLeadsCSV(w, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	output, err := h.GetUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, err, "list")
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	input.LeadID = chi.URLParam(r, "id")

	status, err := h.UpdateStatusUC.Execute(r.Context(), input)
	if err != nil {
		writeErrorResponse(w, err, "update")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "status": status})
}

func (h *LeadHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateNotesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	input.LeadID = chi.URLParam(r, "id")

	if err := h.UpdateNotesUC.Execute(r.Context(), input); err != nil {
		writeErrorResponse(w, err, "update")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CompleteFollowUp handles POST /leads/{id}/follow-ups/{index}/complete.
func (h *LeadHandler) CompleteFollowUp(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Code: usecase.CodeInvalidFollowUpIndex, Message: "follow-up index must be a number"})
		return
	}

	input := usecase.MarkFollowUpCompleteInput{LeadID: chi.URLParam(r, "id"), Index: index}
	if err := h.CompleteUC.Execute(r.Context(), input); err != nil {
		writeErrorResponse(w, err, "update")
		return
	}

	middleware.RecordFollowUpCompleted()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.DeleteUC.Execute(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErrorResponse(w, err, "delete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func listInput(r *http.Request) usecase.ListLeadsInput {
	q := r.URL.Query()
	return usecase.ListLeadsInput{
		SearchTerm: q.Get("search"),
		Status:     q.Get("status"),
		Window:     q.Get("window"),
	}
}

// getClientIP keys on the first X-Forwarded-For hop, then X-Real-IP, then the
// socket peer host.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimiter is a fixed window counter per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

// Run drops idle visitors every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.prune(now)
		}
	}
}

func (rl *RateLimiter) prune(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastReset) > rl.window*2 {
			delete(rl.visitors, ip)
		}
	}
}
