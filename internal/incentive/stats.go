package incentive

import (
	"context"

	"github.com/dukerupert/taskquest/internal/apperr"
	"github.com/dukerupert/taskquest/internal/auth"
	"github.com/dukerupert/taskquest/internal/badge"
	"github.com/dukerupert/taskquest/internal/model"
	"github.com/dukerupert/taskquest/internal/stats"
	"github.com/dukerupert/taskquest/internal/store"
)

// MemberStats is the read-only projection behind badge progress displays.
type MemberStats struct {
	MemberID    int64 `json:"member_id"`
	Points      int   `json:"points"`
	PointsSpent int   `json:"points_spent"`
	stats.Snapshot
	EarnedBadgeIDs []string `json:"earned_badge_ids"`
}

// BadgeProgress is one catalog badge as seen by one member.
type BadgeProgress struct {
	badge.Definition
	RequirementKind badge.RequirementKind `json:"requirement_kind,omitempty"`
	Threshold       int                   `json:"threshold,omitempty"`
	Earned          bool                  `json:"earned"`
	Progress        float64               `json:"progress"`
}

func (s *Service) GetMemberStats(ctx context.Context, actor auth.AuthContext, memberID int64) (*MemberStats, error) {
	m, err := s.visibleMember(ctx, actor, memberID)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}
	spent, err := store.NewRedemptionStore(s.db).SpentBy(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return &MemberStats{
		MemberID:       m.ID,
		Points:         m.Points,
		PointsSpent:    spent,
		Snapshot:       snap,
		EarnedBadgeIDs: m.EarnedBadgeIDs,
	}, nil
}

// MemberBadges lists the whole catalog with the member's earned flag and
// progress toward each earnable badge.
func (s *Service) MemberBadges(ctx context.Context, actor auth.AuthContext, memberID int64) ([]BadgeProgress, error) {
	m, err := s.visibleMember(ctx, actor, memberID)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}

	earned := make(map[string]bool, len(m.EarnedBadgeIDs))
	for _, id := range m.EarnedBadgeIDs {
		earned[id] = true
	}

	defs := s.catalog.Definitions()
	out := make([]BadgeProgress, 0, len(defs))
	for _, d := range defs {
		bp := BadgeProgress{Definition: d, Earned: earned[d.ID]}
		if d.Requirement != nil {
			bp.RequirementKind = d.Requirement.Kind()
			bp.Threshold = d.Requirement.Threshold()
			bp.Progress = badge.Progress(d.Requirement, snap)
		}
		if bp.Earned {
			bp.Progress = 1
		}
		out = append(out, bp)
	}
	return out, nil
}

func (s *Service) visibleMember(ctx context.Context, actor auth.AuthContext, memberID int64) (*model.Member, error) {
	m, err := store.NewMemberStore(s.db).GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.NotFound("member %d not found", memberID)
	}
	if m.WorkspaceID != actor.WorkspaceID {
		return nil, apperr.Unauthorized("member %d belongs to another workspace", memberID)
	}
	return m, nil
}

// Leaderboard lists the actor's workspace members by balance, highest first.
func (s *Service) Leaderboard(ctx context.Context, actor auth.AuthContext) ([]model.Member, error) {
	return store.NewMemberStore(s.db).ListByWorkspace(ctx, actor.WorkspaceID)
}
