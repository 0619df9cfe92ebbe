package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dukerupert/taskquest/internal/incentive"
	"github.com/dukerupert/taskquest/internal/model"
)

type RedemptionHandler struct {
	svc    *incentive.Service
	logger *slog.Logger
}

func NewRedemptionHandler(svc *incentive.Service, logger *slog.Logger) *RedemptionHandler {
	return &RedemptionHandler{svc: svc, logger: logger}
}

func (h *RedemptionHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListStoreItems(r.Context(), actor(r))
	if err != nil {
		writeError(w, h.logger, "list store items", err)
		return
	}
	if items == nil {
		items = []model.StoreItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type redeemRequest struct {
	Notes string `json:"notes"`
}

func (h *RedemptionHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseIDParam(r)
	if err != nil {
		badRequest(w, "invalid id")
		return
	}

	// The body is optional.
	var req redeemRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid JSON")
		return
	}

	created, err := h.svc.CreateRedemption(r.Context(), actor(r), itemID, req.Notes)
	if err != nil {
		writeError(w, h.logger, "create redemption", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type reviewRequest struct {
	Status     model.RedemptionStatus `json:"status"`
	AdminNotes string                 `json:"admin_notes"`
}

func (h *RedemptionHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		badRequest(w, "invalid id")
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	reviewed, err := h.svc.ReviewRedemption(r.Context(), actor(r), id, req.Status, req.AdminNotes)
	if err != nil {
		writeError(w, h.logger, "review redemption", err)
		return
	}
	writeJSON(w, http.StatusOK, reviewed)
}

func (h *RedemptionHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.RedemptionStatus(r.URL.Query().Get("status"))

	list, err := h.svc.ListRedemptions(r.Context(), actor(r), status)
	if err != nil {
		writeError(w, h.logger, "list redemptions", err)
		return
	}
	if list == nil {
		list = []model.RedemptionRequest{}
	}
	writeJSON(w, http.StatusOK, list)
}
