// Package stats holds the per-member statistics that badge rules are
// evaluated against, and the streak calculation derived from completion
// history.
package stats

import (
	"sort"
	"time"

	"github.com/dukerupert/taskquest/internal/model"
	"github.com/dukerupert/taskquest/internal/task"
)

// DefaultWindow bounds how far back completion history is read for streaks.
// It must stay comfortably larger than any streak badge threshold.
const DefaultWindow = 30 * 24 * time.Hour

// Snapshot is a member's aggregate statistics at one point in time.
type Snapshot struct {
	TotalCompleted        int                      `json:"total_completed"`
	TotalPoints           int                      `json:"total_points"`
	CompletedByDifficulty map[model.Difficulty]int `json:"completed_by_difficulty"`
	CompletedToday        int                      `json:"completed_today"`
	Streak                int                      `json:"streak"`
	CollaborativeCount    int                      `json:"collaborative_count"`
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CompletionDays normalizes completion timestamps to distinct UTC days,
// most recent first.
func CompletionDays(completions []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(completions))
	days := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		d := Day(c)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// Streak counts consecutive completion days ending today. days must be
// distinct UTC days sorted most recent first, as CompletionDays returns.
// A member whose latest completion is not today has no streak.
func Streak(days []time.Time, now time.Time) int {
	today := Day(now)
	expected := today
	streak := 0
	for _, d := range days {
		if d.After(today) {
			continue
		}
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// CountOnDay returns how many completions fall on the same UTC day as now.
func CountOnDay(completions []time.Time, now time.Time) int {
	today := Day(now)
	n := 0
	for _, c := range completions {
		if Day(c).Equal(today) {
			n++
		}
	}
	return n
}

// Build assembles a Snapshot from per-difficulty completion counts and the
// completion timestamps inside the lookback window. Collaborative
// completions are counted as all completions until tasks carry more than
// one assignee.
func Build(byDifficulty map[model.Difficulty]int, recent []time.Time, now time.Time) Snapshot {
	s := Snapshot{CompletedByDifficulty: make(map[model.Difficulty]int, len(byDifficulty))}
	for d, n := range byDifficulty {
		s.CompletedByDifficulty[d] = n
		s.TotalCompleted += n
		s.TotalPoints += n * task.PointsFor(d)
	}
	s.CompletedToday = CountOnDay(recent, now)
	s.Streak = Streak(CompletionDays(recent), now)
	s.CollaborativeCount = s.TotalCompleted
	return s
}
