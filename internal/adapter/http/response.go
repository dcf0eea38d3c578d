package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"addy/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type idResponse struct {
	ID uint64 `json:"id"`
}

var errBadID = errors.New("invalid id")

// statusFor maps a registry error kind to an HTTP status.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidArgument:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidState, domain.KindDuplicate:
		return http.StatusConflict
	case domain.KindThrottleExceeded, domain.KindCooldown:
		return http.StatusTooManyRequests
	case domain.KindCapacityExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		msg = "internal error"
	}
	h.writeJSON(w, status, errorResponse{Error: msg, Code: string(kind)})
}

func (h *Handler) writeBadRequest(w http.ResponseWriter, msg string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Code: string(domain.KindInvalidArgument)})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func pathID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errBadID
	}
	return id, nil
}
