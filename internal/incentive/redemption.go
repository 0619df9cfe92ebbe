package incentive

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dukerupert/taskquest/internal/apperr"
	"github.com/dukerupert/taskquest/internal/auth"
	"github.com/dukerupert/taskquest/internal/model"
	"github.com/dukerupert/taskquest/internal/store"
	"github.com/dukerupert/taskquest/internal/websocket"
)

func (s *Service) ListStoreItems(ctx context.Context, actor auth.AuthContext) ([]model.StoreItem, error) {
	return store.NewStoreItemStore(s.db).ListActive(ctx, actor.WorkspaceID)
}

// CreateRedemption spends the item's cost from the actor's balance, takes
// one unit of stock and records a pending request, all in one transaction.
// If any step fails nothing is changed.
func (s *Service) CreateRedemption(ctx context.Context, actor auth.AuthContext, itemID int64, notes string) (*model.RedemptionRequest, error) {
	var req *model.RedemptionRequest
	err := store.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		items := store.NewStoreItemStore(tx)
		ledger := store.NewLedger(tx)

		item, err := items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperr.NotFound("store item %d not found", itemID)
		}
		if item.WorkspaceID != actor.WorkspaceID {
			return apperr.Unauthorized("store item %d belongs to another workspace", itemID)
		}
		if !item.Active {
			return apperr.InvalidState("%q is not available", item.Name)
		}
		if !item.InStock() {
			return apperr.OutOfStock(item.Name)
		}

		balance, err := ledger.Balance(ctx, actor.MemberID)
		if err != nil {
			return err
		}
		if balance < item.PointsCost {
			return apperr.InsufficientBalance(balance, item.PointsCost)
		}
		ok, err := ledger.Spend(ctx, actor.MemberID, item.PointsCost)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.InsufficientBalance(balance, item.PointsCost)
		}

		ok, err = items.TakeStock(ctx, item.ID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.OutOfStock(item.Name)
		}

		req, err = store.NewRedemptionStore(tx).Insert(ctx, actor.WorkspaceID, actor.MemberID, item.ID,
			item.PointsCost, strings.TrimSpace(notes))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("redemption created", "request_id", req.ID, "member_id", req.MemberID, "points", req.PointsSpent)
	s.hub.BroadcastTo(actor.WorkspaceID, websocket.NewMessage("redemption", "created", req.ID, map[string]any{
		"member_id": req.MemberID,
	}))
	s.hub.BroadcastTo(actor.WorkspaceID, websocket.NewMessage("points", "changed", req.MemberID, map[string]any{
		"delta": -req.PointsSpent,
	}))
	return req, nil
}

// ReviewRedemption moves a pending request to approved, rejected or
// fulfilled. Rejection refunds the captured points and restores one unit of
// finite stock in the same transaction as the status change.
func (s *Service) ReviewRedemption(ctx context.Context, actor auth.AuthContext, requestID int64, status model.RedemptionStatus, adminNotes string) (*model.RedemptionRequest, error) {
	if !actor.IsManager() {
		return nil, apperr.Unauthorized("only managers can review redemptions")
	}
	if !status.Valid() || status == model.RedemptionPending {
		return nil, apperr.InvalidInput("cannot review to status %q", status)
	}

	var req *model.RedemptionRequest
	err := store.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		redemptions := store.NewRedemptionStore(tx)

		current, err := redemptions.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperr.NotFound("redemption %d not found", requestID)
		}
		if current.WorkspaceID != actor.WorkspaceID {
			return apperr.Unauthorized("redemption %d belongs to another workspace", requestID)
		}
		if current.Status != model.RedemptionPending {
			return apperr.InvalidState("redemption %d is already %s", requestID, current.Status)
		}

		ok, err := redemptions.Review(ctx, requestID, status, actor.MemberID, strings.TrimSpace(adminNotes), s.clock())
		if err != nil {
			return err
		}
		if !ok {
			return apperr.InvalidState("redemption %d was reviewed concurrently", requestID)
		}

		if status == model.RedemptionRejected {
			if err := store.NewLedger(tx).Award(ctx, current.MemberID, current.PointsSpent); err != nil {
				return err
			}
			if err := store.NewStoreItemStore(tx).RestoreStock(ctx, current.StoreItemID); err != nil {
				return err
			}
		}

		req, err = redemptions.GetByID(ctx, requestID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("redemption reviewed", "request_id", req.ID, "status", req.Status, "reviewer_id", actor.MemberID)
	s.hub.BroadcastTo(actor.WorkspaceID, websocket.NewMessage("redemption", string(req.Status), req.ID, map[string]any{
		"member_id": req.MemberID,
	}))
	if req.Status == model.RedemptionRejected {
		s.hub.BroadcastTo(actor.WorkspaceID, websocket.NewMessage("points", "changed", req.MemberID, map[string]any{
			"delta": req.PointsSpent,
		}))
	}
	return req, nil
}

// ListRedemptions returns the workspace's requests for managers and the
// actor's own requests otherwise. An empty status matches all.
func (s *Service) ListRedemptions(ctx context.Context, actor auth.AuthContext, status model.RedemptionStatus) ([]model.RedemptionRequest, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.InvalidInput("unknown redemption status %q", status)
	}
	f := store.ListFilter{Status: status}
	if !actor.IsManager() {
		f.MemberID = actor.MemberID
	}
	return store.NewRedemptionStore(s.db).List(ctx, actor.WorkspaceID, f)
}
