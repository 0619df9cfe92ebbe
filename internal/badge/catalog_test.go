package badge

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/taskquest/internal/apperr"
	"github.com/dukerupert/taskquest/internal/model"
	"github.com/dukerupert/taskquest/internal/stats"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Definition{
		{ID: "first", Type: TypeEarnable, Requirement: TasksCompleted{Count: 1}},
		{ID: "pts", Type: TypeEarnable, Requirement: Points{Total: 50}},
		{ID: "hard", Type: TypeEarnable, Requirement: DifficultyCount{Difficulty: model.DifficultyHard, Count: 2}},
		{ID: "speedy", Type: TypeEarnable, Requirement: Speed{PerDay: 3}},
		{ID: "streaky", Type: TypeEarnable, Requirement: Streak{Days: 3}},
		{ID: "team", Type: TypeEarnable, Requirement: Collaboration{Count: 4}},
		{ID: "shop", Type: TypePurchasable, Price: 100},
	})
	require.NoError(t, err)
	return c
}

func TestEvaluateEachKind(t *testing.T) {
	c := testCatalog(t)

	s := stats.Snapshot{
		TotalCompleted:        4,
		TotalPoints:           60,
		CompletedByDifficulty: map[model.Difficulty]int{model.DifficultyHard: 2},
		CompletedToday:        3,
		Streak:                3,
		CollaborativeCount:    4,
	}
	got := c.Evaluate(s, nil)
	assert.Equal(t, []string{"first", "pts", "hard", "speedy", "streaky", "team"}, got)
}

func TestEvaluateBelowThresholds(t *testing.T) {
	c := testCatalog(t)

	s := stats.Snapshot{
		TotalCompleted:        1,
		TotalPoints:           10,
		CompletedByDifficulty: map[model.Difficulty]int{model.DifficultyEasy: 1},
		CompletedToday:        1,
		Streak:                1,
		CollaborativeCount:    1,
	}
	assert.Equal(t, []string{"first"}, c.Evaluate(s, nil))
}

func TestEvaluateIsIdempotent(t *testing.T) {
	c := testCatalog(t)
	s := stats.Snapshot{TotalCompleted: 1, TotalPoints: 50}

	earned := []string{"first"}
	first := c.Evaluate(s, earned)
	second := c.Evaluate(s, earned)

	assert.Equal(t, []string{"pts"}, first)
	assert.Equal(t, first, second)
	assert.NotContains(t, first, "first")
}

func TestEvaluateSkipsPurchasable(t *testing.T) {
	c := testCatalog(t)
	s := stats.Snapshot{TotalPoints: 10_000}
	assert.NotContains(t, c.Evaluate(s, nil), "shop")
}

func TestProgress(t *testing.T) {
	s := stats.Snapshot{TotalCompleted: 5, Streak: 0}
	assert.InDelta(t, 0.5, Progress(TasksCompleted{Count: 10}, s), 1e-9)
	assert.InDelta(t, 1.0, Progress(TasksCompleted{Count: 2}, s), 1e-9)
	assert.InDelta(t, 0.0, Progress(Streak{Days: 7}, s), 1e-9)
}

func TestNewCatalogRejectsInvalid(t *testing.T) {
	cases := map[string][]Definition{
		"duplicate id":                 {{ID: "a", Type: TypeEarnable, Requirement: Streak{Days: 1}}, {ID: "a", Type: TypeEarnable, Requirement: Streak{Days: 2}}},
		"missing requirement":          {{ID: "a", Type: TypeEarnable}},
		"unpriced purchasable":         {{ID: "a", Type: TypePurchasable}},
		"purchasable with requirement": {{ID: "a", Type: TypePurchasable, Price: 10, Requirement: Points{Total: 50}}},
		"unknown type":                 {{ID: "a", Type: "legendary"}},
		"zero threshold":               {{ID: "a", Type: TypeEarnable, Requirement: Points{Total: 0}}},
	}
	for name, defs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalog(defs)
			assert.Error(t, err)
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	d, ok := c.Get("streak_7")
	require.True(t, ok)
	assert.Equal(t, KindStreak, d.Requirement.Kind())
	assert.Less(t, c.StreakHorizon(), 30, "streak window must exceed every streak badge")

	kinds := map[RequirementKind]bool{}
	for _, d := range c.Definitions() {
		if d.Requirement != nil {
			kinds[d.Requirement.Kind()] = true
		}
	}
	assert.Len(t, kinds, 6)
}

func TestParseCatalog(t *testing.T) {
	doc := `
badges:
  - id: hard_1
    name: Brave
    type: earnable
    requirement: {kind: difficulty, difficulty: HARD, threshold: 1}
  - id: star
    name: Star
    type: purchasable
    price: 25
`
	c, err := ParseCatalog(strings.NewReader(doc))
	require.NoError(t, err)

	d, ok := c.Get("hard_1")
	require.True(t, ok)
	assert.Equal(t, DifficultyCount{Difficulty: model.DifficultyHard, Count: 1}, d.Requirement)

	star, ok := c.Get("star")
	require.True(t, ok)
	assert.Equal(t, 25, star.Price)
}

func TestParseCatalogUnknownKind(t *testing.T) {
	doc := `
badges:
  - id: odd
    type: earnable
    requirement: {kind: karma, threshold: 3}
`
	_, err := ParseCatalog(strings.NewReader(doc))
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
}

func TestParseCatalogPurchasableWithRequirement(t *testing.T) {
	doc := `
badges:
  - id: star
    type: purchasable
    price: 25
    requirement: {kind: points, threshold: 100}
`
	_, err := ParseCatalog(strings.NewReader(doc))
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
}

func TestWriteYAMLRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultCatalog().WriteYAML(&buf))
	assert.Contains(t, buf.String(), "kind: difficulty")

	c, err := ParseCatalog(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog().Definitions(), c.Definitions())
}
