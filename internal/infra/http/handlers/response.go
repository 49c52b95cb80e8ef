package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-csr/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-csr/internal/usecase"
)

type ErrorResponse struct {
	Success bool                      `json:"success"`
	Code    string                    `json:"code,omitempty"`
	Message string                    `json:"message"`
	Fields  []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// writeErrorResponse maps use case errors onto HTTP statuses. op labels the
// persistence error metric.
func writeErrorResponse(w http.ResponseWriter, err error, op string) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		if de.Code == usecase.CodeLeadNotFound {
			status = http.StatusNotFound
		}
		writeJSON(w, status, ErrorResponse{Code: de.Code, Message: de.Message, Fields: de.Fields})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		if te.Code == usecase.CodePersistence {
			middleware.RecordPersistenceError(op)
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Code: te.Code, Message: te.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
}

// actorFromRequest reads the identity set by the auth proxy in front of the API.
func actorFromRequest(r *http.Request) usecase.Actor {
	return usecase.Actor{
		UserID: r.Header.Get("X-User-ID"),
		Email:  r.Header.Get("X-User-Email"),
	}
}
