package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/taskquest/internal/auth"
	"github.com/dukerupert/taskquest/internal/store"
)

// RequireAPIKey authenticates "Authorization: Bearer <memberID>.<secret>"
// and populates AuthContext. Any failure is a 401.
func RequireAPIKey(members *store.MemberStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				unauthorized(w)
				return
			}
			memberID, secret, ok := auth.ParseAPIKey(strings.TrimSpace(token))
			if !ok {
				unauthorized(w)
				return
			}

			hash, err := members.GetAPIKeyHash(r.Context(), memberID)
			if err != nil {
				logger.Error("load api key", "member_id", memberID, "error", err)
				unauthorized(w)
				return
			}
			if !auth.CheckAPIKey(hash, secret) {
				unauthorized(w)
				return
			}

			member, err := members.GetByID(r.Context(), memberID)
			if err != nil || member == nil {
				unauthorized(w)
				return
			}

			ac := auth.AuthContext{
				MemberID:    member.ID,
				WorkspaceID: member.WorkspaceID,
				Role:        member.Role,
			}
			next.ServeHTTP(w, r.WithContext(auth.WithAuth(r.Context(), ac)))
		})
	}
}

// RequireManager rejects callers without the manager role.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsManager(r.Context()) {
			writeError(w, http.StatusForbidden, "managers only", "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="taskquest"`)
	writeError(w, http.StatusUnauthorized, "invalid or missing API key", "unauthorized")
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg, "kind": kind})
}
