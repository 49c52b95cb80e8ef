package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-csr/internal/infra/export"
	"github.com/xavierca1/ligue-csr/internal/usecase"
)

type ReportHandler struct {
	ReportUC *usecase.MonthlyReportUseCase
}

func NewReportHandler(uc *usecase.MonthlyReportUseCase) *ReportHandler {
	return &ReportHandler{ReportUC: uc}
}

func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	report, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) MonthlyCSV(w http.ResponseWriter, r *http.Request) {
	report, ok := h.load(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.ReportFilename(report.Period, "csv")+`"`)
	w.WriteHeader(http.StatusOK)
	export.WriteLeadsCSV(w, report.Leads)
}

func (h *ReportHandler) MonthlyText(w http.ResponseWriter, r *http.Request) {
	report, ok := h.load(w, r)
	if !ok {
		return
	}

	text, err := export.MonthlyReportText(report)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.ReportFilename(report.Period, "txt")+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

func (h *ReportHandler) load(w http.ResponseWriter, r *http.Request) (*usecase.MonthlyReportOutput, bool) {
	report, err := h.ReportUC.Execute(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		writeErrorResponse(w, err, "list")
		return nil, false
	}
	return report, true
}
