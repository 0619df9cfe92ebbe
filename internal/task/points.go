package task

import "github.com/dukerupert/taskquest/internal/model"

var difficultyPoints = map[model.Difficulty]int{
	model.DifficultyEasy:   10,
	model.DifficultyMedium: 20,
	model.DifficultyHard:   30,
}

// PointsFor returns the points a completed task of difficulty d is worth.
// Unknown difficulties are worth nothing; callers should log them.
func PointsFor(d model.Difficulty) int {
	return difficultyPoints[d]
}
