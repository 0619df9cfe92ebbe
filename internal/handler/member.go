package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/taskquest/internal/incentive"
	"github.com/dukerupert/taskquest/internal/model"
)

type MemberHandler struct {
	svc    *incentive.Service
	logger *slog.Logger
}

func NewMemberHandler(svc *incentive.Service, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{svc: svc, logger: logger}
}

func (h *MemberHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.Leaderboard(r.Context(), actor(r))
	if err != nil {
		writeError(w, h.logger, "list members", err)
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		badRequest(w, "invalid id")
		return
	}

	st, err := h.svc.GetMemberStats(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, h.logger, "get member stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *MemberHandler) Badges(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		badRequest(w, "invalid id")
		return
	}

	badges, err := h.svc.MemberBadges(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, h.logger, "list member badges", err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

func (h *MemberHandler) PurchaseBadge(w http.ResponseWriter, r *http.Request) {
	badgeID := r.PathValue("id")
	if badgeID == "" {
		badRequest(w, "invalid badge id")
		return
	}

	m, err := h.svc.PurchaseBadge(r.Context(), actor(r), badgeID)
	if err != nil {
		writeError(w, h.logger, "purchase badge", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MemberHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Catalog().Definitions())
}
