package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/taskquest/internal/apperr"
	"github.com/dukerupert/taskquest/internal/auth"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthorized:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidState:
		return http.StatusConflict
	case apperr.KindInsufficientBalance, apperr.KindOutOfStock:
		return http.StatusUnprocessableEntity
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error", "kind"}. Unclassified errors are
// logged and reported with a generic message.
func writeError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logger.Error(op, "error", err)
	}
	writeJSON(w, statusFor(kind), map[string]string{
		"error": apperr.Message(err),
		"kind":  string(kind),
	})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
		"kind":  string(apperr.KindInvalidInput),
	})
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// actor returns the authenticated member for r. The zero value fails every
// workspace check in the service.
func actor(r *http.Request) auth.AuthContext {
	ac, _ := auth.FromContext(r.Context())
	return ac
}
