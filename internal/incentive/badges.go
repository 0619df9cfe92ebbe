package incentive

import (
	"context"
	"database/sql"
	"slices"

	"github.com/dukerupert/taskquest/internal/apperr"
	"github.com/dukerupert/taskquest/internal/auth"
	"github.com/dukerupert/taskquest/internal/badge"
	"github.com/dukerupert/taskquest/internal/model"
	"github.com/dukerupert/taskquest/internal/store"
	"github.com/dukerupert/taskquest/internal/websocket"
)

// PurchaseBadge buys a purchasable badge for the actor. The price is spent
// and the badge recorded in one transaction.
func (s *Service) PurchaseBadge(ctx context.Context, actor auth.AuthContext, badgeID string) (*model.Member, error) {
	def, ok := s.catalog.Get(badgeID)
	if !ok {
		return nil, apperr.NotFound("badge %q not found", badgeID)
	}
	if def.Type != badge.TypePurchasable {
		return nil, apperr.InvalidState("badge %q cannot be purchased", badgeID)
	}

	var member *model.Member
	err := store.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		badges := store.NewBadgeStore(tx)
		ledger := store.NewLedger(tx)

		earned, err := badges.Earned(ctx, actor.MemberID)
		if err != nil {
			return err
		}
		if slices.Contains(earned, badgeID) {
			return apperr.InvalidState("badge %q already owned", badgeID)
		}

		ok, err := ledger.Spend(ctx, actor.MemberID, def.Price)
		if err != nil {
			return err
		}
		if !ok {
			balance, err := ledger.Balance(ctx, actor.MemberID)
			if err != nil {
				return err
			}
			return apperr.InsufficientBalance(balance, def.Price)
		}

		added, err := badges.Grant(ctx, actor.MemberID, []string{badgeID}, s.clock())
		if err != nil {
			return err
		}
		if len(added) == 0 {
			return apperr.InvalidState("badge %q already owned", badgeID)
		}

		member, err = store.NewMemberStore(tx).GetByID(ctx, actor.MemberID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("badge purchased", "member_id", actor.MemberID, "badge_id", badgeID, "price", def.Price)
	s.hub.BroadcastTo(actor.WorkspaceID, websocket.NewMessage("badge", "purchased", actor.MemberID, map[string]any{
		"badge_id": badgeID,
	}))
	return member, nil
}
