package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"appointment-booking-api/internal/schedule"
	"appointment-booking-api/internal/store"
)

type Handler struct {
	store       *store.Store
	secret      string
	log         *slog.Logger
	adminEmails map[string]bool
}

// New builds the handler set. adminEmails lists accounts that sign up with
// the admin role; everyone else gets the user role.
func New(st *store.Store, secret string, adminEmails []string, logger *slog.Logger) *Handler {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		if e != "" {
			admins[e] = true
		}
	}
	return &Handler{store: st, secret: secret, log: logger, adminEmails: admins}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func writeKind(w http.ResponseWriter, kind schedule.Kind, msg string) {
	writeJSON(w, statusFor(kind), errorBody{Message: msg, Code: string(kind)})
}

// writeError maps a failure from the scheduling core or the store onto the
// HTTP contract. Validation failures keep their message; infrastructure
// failures answer with a generic one so no internal detail leaks.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		writeKind(w, schedule.KindTimeout, "Request timed out.")
		return
	}

	var se *schedule.Error
	if errors.As(err, &se) {
		writeKind(w, se.Kind, se.Message)
		return
	}

	h.log.Error("internal error", "path", r.URL.Path, "err", err)
	writeKind(w, schedule.KindInternal, "Internal server error")
}

func statusFor(kind schedule.Kind) int {
	switch kind {
	case schedule.KindMissingField, schedule.KindInvalidRange,
		schedule.KindOverlap, schedule.KindAlreadyBooked:
		return http.StatusBadRequest
	case schedule.KindNotFound:
		return http.StatusNotFound
	case schedule.KindPartialBooking:
		return http.StatusConflict
	case schedule.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return schedule.Errf(schedule.KindMissingField, "Invalid JSON body.")
	}
	return nil
}
