package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-csr/internal/usecase"
)

type DashboardHandler struct {
	DashboardUC *usecase.DashboardUseCase
}

func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{DashboardUC: uc}
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	output, err := h.DashboardUC.Execute(r.Context())
	if err != nil {
		writeErrorResponse(w, err, "list")
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// Pending handles GET /dashboard/pending.
func (h *DashboardHandler) Pending(w http.ResponseWriter, r *http.Request) {
	output, err := h.DashboardUC.Execute(r.Context())
	if err != nil {
		writeErrorResponse(w, err, "list")
		return
	}
	writeJSON(w, http.StatusOK, output.Pending)
}
