package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/w-h-a/expensebot/internal/service/assistant"
)

type queryRequest struct {
	Query   string `json:"query"`
	Context string `json:"context,omitempty"`
}

type queryResponse struct {
	Success        bool                      `json:"success"`
	Answer         string                    `json:"answer"`
	MatchedRecords []assistant.MatchedRecord `json:"matchedRecords,omitempty"`
	TotalAmount    *float64                  `json:"totalAmount,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type handlers struct {
	service *assistant.Service
}

func (h *handlers) query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if len(strings.TrimSpace(req.Query)) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	answer, err := h.service.Ask(r.Context(), req.Query, req.Context)
	if err != nil {
		if errors.Is(err, assistant.ErrFlagged) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query rejected by content moderation"})
			return
		}

		slog.ErrorContext(r.Context(), "failed to answer query", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Success:        answer.Success,
		Answer:         answer.Text,
		MatchedRecords: answer.MatchedRecords,
		TotalAmount:    answer.TotalAmount,
	})
}

func (h *handlers) queryOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.SearchOptions())
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Router(service *assistant.Service) *mux.Router {
	if service == nil {
		panic("a service is required")
	}

	h := &handlers{service: service}

	router := mux.NewRouter()
	router.HandleFunc("/api/query", h.query).Methods(http.MethodPost)
	router.HandleFunc("/api/query/options", h.queryOptions).Methods(http.MethodGet)
	router.HandleFunc("/health", h.health).Methods(http.MethodGet)

	return router
}
