// Package http
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vitals/internal/domain"
	"vitals/internal/logger"
)

type Response struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type SampleHandler struct {
	repo domain.SampleRepository
	log  logger.Logger

	now func() time.Time
}

func NewSampleHandler(repo domain.SampleRepository, log logger.Logger) *SampleHandler {
	return &SampleHandler{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (h *SampleHandler) Latest(w http.ResponseWriter, r *http.Request) {
	sample, err := h.repo.Latest(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoSamples) {
			writeJSON(w, http.StatusNotFound, &Response{
				Message: "no samples recorded yet",
			})
			return
		}

		h.log.Error("http: latest sample query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, &Response{
			Message: "failed to get latest sample",
		})
		return
	}

	writeJSON(w, http.StatusOK, &Response{Data: sample})
}

func (h *SampleHandler) Range(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &Response{
			Message: "start must be an RFC3339 timestamp",
		})
		return
	}

	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &Response{
			Message: "end must be an RFC3339 timestamp",
		})
		return
	}

	samples, err := h.repo.QueryRange(r.Context(), start, end)
	if err != nil {
		h.log.Error("http: range query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, &Response{
			Message: "failed to query samples",
		})
		return
	}

	writeJSON(w, http.StatusOK, &Response{Data: samples})
}

func (h *SampleHandler) Window(w http.ResponseWriter, r *http.Request) {
	window, err := domain.ParseWindow(r.PathValue("window"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &Response{
			Message: "window must be one of: hour, day, week, all",
		})
		return
	}

	samples, err := h.repo.QueryWindow(r.Context(), window, h.now())
	if err != nil {
		h.log.Error("http: window query failed", "error", err, "window", window)
		writeJSON(w, http.StatusInternalServerError, &Response{
			Message: "failed to query samples",
		})
		return
	}

	writeJSON(w, http.StatusOK, &Response{Data: samples})
}

func writeJSON(w http.ResponseWriter, status int, body *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
