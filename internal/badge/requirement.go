package badge

import (
	"github.com/dukerupert/taskquest/internal/model"
	"github.com/dukerupert/taskquest/internal/stats"
)

// RequirementKind names one of the closed set of earning rules.
type RequirementKind string

const (
	KindTasksCompleted RequirementKind = "tasks_completed"
	KindPoints         RequirementKind = "points"
	KindDifficulty     RequirementKind = "difficulty"
	KindSpeed          RequirementKind = "speed"
	KindStreak         RequirementKind = "streak"
	KindCollaboration  RequirementKind = "collaboration"
)

// Requirement is the earning rule of an earnable badge. The interface is
// sealed: only the types in this file implement it, so every rule must say
// how it reads a snapshot.
type Requirement interface {
	Kind() RequirementKind
	Threshold() int
	Actual(s stats.Snapshot) int
	sealed()
}

// TasksCompleted is met after Count completed tasks.
type TasksCompleted struct{ Count int }

// Points is met once Total points have been earned from completions.
type Points struct{ Total int }

// DifficultyCount is met after Count completions at one difficulty tier.
type DifficultyCount struct {
	Difficulty model.Difficulty
	Count      int
}

// Speed is met after PerDay completions within the current UTC day.
type Speed struct{ PerDay int }

// Streak is met after Days consecutive days with a completion.
type Streak struct{ Days int }

// Collaboration is met after Count collaborative completions.
type Collaboration struct{ Count int }

func (TasksCompleted) Kind() RequirementKind { return KindTasksCompleted }
func (Points) Kind() RequirementKind { return KindPoints }
func (DifficultyCount) Kind() RequirementKind { return KindDifficulty }
func (Speed) Kind() RequirementKind { return KindSpeed }
func (Streak) Kind() RequirementKind { return KindStreak }
func (Collaboration) Kind() RequirementKind { return KindCollaboration }

func (r TasksCompleted) Threshold() int { return r.Count }
func (r Points) Threshold() int { return r.Total }
func (r DifficultyCount) Threshold() int { return r.Count }
func (r Speed) Threshold() int { return r.PerDay }
func (r Streak) Threshold() int { return r.Days }
func (r Collaboration) Threshold() int { return r.Count }

func (TasksCompleted) Actual(s stats.Snapshot) int { return s.TotalCompleted }
func (Points) Actual(s stats.Snapshot) int { return s.TotalPoints }
func (r DifficultyCount) Actual(s stats.Snapshot) int {
	return s.CompletedByDifficulty[r.Difficulty]
}
func (Speed) Actual(s stats.Snapshot) int { return s.CompletedToday }
func (Streak) Actual(s stats.Snapshot) int { return s.Streak }
func (Collaboration) Actual(s stats.Snapshot) int { return s.CollaborativeCount }

func (TasksCompleted) sealed()  {}
func (Points) sealed()          {}
func (DifficultyCount) sealed() {}
func (Speed) sealed()           {}
func (Streak) sealed()          {}
func (Collaboration) sealed()   {}

// Met reports whether s satisfies r.
func Met(r Requirement, s stats.Snapshot) bool {
	return r.Actual(s) >= r.Threshold()
}

// Progress returns how far s is toward r, clamped to [0, 1]. It is a display
// helper only.
func Progress(r Requirement, s stats.Snapshot) float64 {
	threshold := r.Threshold()
	if threshold <= 0 {
		return 1
	}
	p := float64(r.Actual(s)) / float64(threshold)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
