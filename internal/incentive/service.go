// Package incentive turns task lifecycle changes into point and badge side
// effects and runs the store redemption flow. It is the only writer of member
// balances and earned badges.
package incentive

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/dukerupert/taskquest/internal/badge"
	"github.com/dukerupert/taskquest/internal/model"
	"github.com/dukerupert/taskquest/internal/stats"
	"github.com/dukerupert/taskquest/internal/store"
	"github.com/dukerupert/taskquest/internal/task"
	"github.com/dukerupert/taskquest/internal/websocket"
)

// Notifier delivers best-effort notifications. Failures are logged by the
// caller and never change the outcome of the operation that triggered them.
type Notifier interface {
	TaskAssigned(ctx context.Context, to model.Member, t model.Task) error
}

// Broadcaster fans realtime events out to a workspace's connected clients.
type Broadcaster interface {
	BroadcastTo(workspaceID int64, msg websocket.Message)
}

type nopNotifier struct{}

func (nopNotifier) TaskAssigned(context.Context, model.Member, model.Task) error { return nil }

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastTo(int64, websocket.Message) {}

type Service struct {
	db       *sql.DB
	catalog  *badge.Catalog
	notifier Notifier
	hub      Broadcaster
	window   time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithBroadcaster(b Broadcaster) Option {
	return func(s *Service) {
		s.hub = b
	}
}

// WithStreakWindow sets how far back completion history is read when
// computing streaks.
func WithStreakWindow(d time.Duration) Option {
	return func(s *Service) {
		s.window = d
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(db *sql.DB, catalog *badge.Catalog, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		db:       db,
		catalog:  catalog,
		notifier: nopNotifier{},
		hub:      nopBroadcaster{},
		window:   stats.DefaultWindow,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	// A window shorter than the longest streak badge would make it unearnable.
	minWindow := time.Duration(catalog.StreakHorizon()+1) * 24 * time.Hour
	if s.window < minWindow {
		s.logger.Warn("streak window shorter than catalog horizon, widening",
			"window", s.window, "min", minWindow)
		s.window = minWindow
	}
	return s
}

// Catalog returns the badge catalog the service evaluates against.
func (s *Service) Catalog() *badge.Catalog {
	return s.catalog
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// snapshot recomputes a member's statistics from their completed tasks.
func (s *Service) snapshot(ctx context.Context, q store.Querier, memberID int64) (stats.Snapshot, error) {
	now := s.clock()
	ss := store.NewStatsStore(q)

	byDifficulty, err := ss.CompletedByDifficulty(ctx, memberID)
	if err != nil {
		return stats.Snapshot{}, err
	}
	recent, err := ss.CompletionsSince(ctx, memberID, stats.Day(now).Add(-s.window))
	if err != nil {
		return stats.Snapshot{}, err
	}
	return stats.Build(byDifficulty, recent, now), nil
}

// applyEvents moves points for each event in order. It runs after the task
// rows are committed, so failures are logged and skipped rather than
// returned. It reports how many events moved points.
func (s *Service) applyEvents(ctx context.Context, workspaceID int64, events []task.Event) int {
	ledger := store.NewLedger(s.db)
	applied := 0
	for _, ev := range events {
		amount := task.PointsFor(ev.Difficulty)
		if !ev.Difficulty.Valid() {
			s.logger.Warn("unknown difficulty, moving zero points",
				"task_id", ev.TaskID, "member_id", ev.MemberID,
				"difficulty", ev.Difficulty, "action", ev.Action)
			continue
		}

		var err error
		delta := amount
		switch ev.Action {
		case task.ActionAward:
			err = ledger.Award(ctx, ev.MemberID, amount)
		case task.ActionRemove:
			err = ledger.Remove(ctx, ev.MemberID, amount)
			delta = -amount
		default:
			continue
		}
		if err != nil {
			s.logger.Error("apply points",
				"task_id", ev.TaskID, "member_id", ev.MemberID,
				"action", ev.Action, "error", err)
			continue
		}
		applied++

		s.logger.Debug("points moved", "task_id", ev.TaskID, "member_id", ev.MemberID, "delta", delta)
		s.hub.BroadcastTo(workspaceID, websocket.NewMessage("points", "changed", ev.MemberID, map[string]any{
			"task_id": ev.TaskID,
			"delta":   delta,
		}))
	}
	return applied
}

// awardBadges re-evaluates the catalog for each member and records any
// newly earned badges. Errors are logged per member.
func (s *Service) awardBadges(ctx context.Context, workspaceID int64, memberIDs []int64) {
	badges := store.NewBadgeStore(s.db)
	for _, memberID := range memberIDs {
		snap, err := s.snapshot(ctx, s.db, memberID)
		if err != nil {
			s.logger.Error("compute stats", "member_id", memberID, "error", err)
			continue
		}
		earned, err := badges.Earned(ctx, memberID)
		if err != nil {
			s.logger.Error("load earned badges", "member_id", memberID, "error", err)
			continue
		}

		newly := s.catalog.Evaluate(snap, earned)
		if len(newly) == 0 {
			continue
		}
		added, err := badges.Grant(ctx, memberID, newly, s.clock())
		if err != nil {
			s.logger.Error("grant badges", "member_id", memberID, "error", err)
		}
		for _, id := range added {
			s.logger.Info("badge earned", "member_id", memberID, "badge_id", id)
			s.hub.BroadcastTo(workspaceID, websocket.NewMessage("badge", "earned", memberID, map[string]any{
				"badge_id": id,
			}))
		}
	}
}

// settle applies events and then re-evaluates badges for every member the
// events touched, in first-touched order.
func (s *Service) settle(ctx context.Context, workspaceID int64, events []task.Event) int {
	if len(events) == 0 {
		return 0
	}
	applied := s.applyEvents(ctx, workspaceID, events)

	seen := make(map[int64]struct{})
	var members []int64
	for _, ev := range events {
		if _, ok := seen[ev.MemberID]; ok {
			continue
		}
		seen[ev.MemberID] = struct{}{}
		members = append(members, ev.MemberID)
	}
	s.awardBadges(ctx, workspaceID, members)
	return applied
}
