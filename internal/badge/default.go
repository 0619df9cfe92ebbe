package badge

import "github.com/dukerupert/taskquest/internal/model"

var defaultDefinitions = []Definition{
	{ID: "first_task", Name: "First Steps", Description: "Complete your first task", Icon: "footprints", Type: TypeEarnable, Requirement: TasksCompleted{Count: 1}},
	{ID: "task_10", Name: "Getting Things Done", Description: "Complete 10 tasks", Icon: "check-check", Type: TypeEarnable, Requirement: TasksCompleted{Count: 10}},
	{ID: "task_50", Name: "Workhorse", Description: "Complete 50 tasks", Icon: "medal", Type: TypeEarnable, Requirement: TasksCompleted{Count: 50}},
	{ID: "task_100", Name: "Centurion", Description: "Complete 100 tasks", Icon: "trophy", Type: TypeEarnable, Requirement: TasksCompleted{Count: 100}},
	{ID: "points_100", Name: "Point Collector", Description: "Earn 100 points", Icon: "coins", Type: TypeEarnable, Requirement: Points{Total: 100}},
	{ID: "points_500", Name: "Point Hoarder", Description: "Earn 500 points", Icon: "gem", Type: TypeEarnable, Requirement: Points{Total: 500}},
	{ID: "points_1000", Name: "Point Tycoon", Description: "Earn 1000 points", Icon: "crown", Type: TypeEarnable, Requirement: Points{Total: 1000}},
	{ID: "easy_10", Name: "Warm Up", Description: "Complete 10 easy tasks", Icon: "feather", Type: TypeEarnable, Requirement: DifficultyCount{Difficulty: model.DifficultyEasy, Count: 10}},
	{ID: "medium_10", Name: "Steady Hands", Description: "Complete 10 medium tasks", Icon: "hammer", Type: TypeEarnable, Requirement: DifficultyCount{Difficulty: model.DifficultyMedium, Count: 10}},
	{ID: "hard_5", Name: "Challenge Accepted", Description: "Complete 5 hard tasks", Icon: "mountain", Type: TypeEarnable, Requirement: DifficultyCount{Difficulty: model.DifficultyHard, Count: 5}},
	{ID: "hard_25", Name: "Heavy Lifter", Description: "Complete 25 hard tasks", Icon: "dumbbell", Type: TypeEarnable, Requirement: DifficultyCount{Difficulty: model.DifficultyHard, Count: 25}},
	{ID: "speed_5", Name: "Speed Demon", Description: "Complete 5 tasks in one day", Icon: "zap", Type: TypeEarnable, Requirement: Speed{PerDay: 5}},
	{ID: "streak_3", Name: "On a Roll", Description: "Complete tasks 3 days in a row", Icon: "flame", Type: TypeEarnable, Requirement: Streak{Days: 3}},
	{ID: "streak_7", Name: "Week Warrior", Description: "Complete tasks 7 days in a row", Icon: "calendar-check", Type: TypeEarnable, Requirement: Streak{Days: 7}},
	{ID: "streak_14", Name: "Unstoppable", Description: "Complete tasks 14 days in a row", Icon: "rocket", Type: TypeEarnable, Requirement: Streak{Days: 14}},
	{ID: "team_player", Name: "Team Player", Description: "Complete 20 team tasks", Icon: "users", Type: TypeEarnable, Requirement: Collaboration{Count: 20}},
	{ID: "golden_star", Name: "Golden Star", Description: "A shiny star for your profile", Icon: "star", Type: TypePurchasable, Price: 200},
	{ID: "night_owl", Name: "Night Owl", Description: "For those who ship after dark", Icon: "moon", Type: TypePurchasable, Price: 150},
	{ID: "unicorn", Name: "Unicorn", Description: "Rare and magnificent", Icon: "sparkles", Type: TypePurchasable, Price: 500},
}

// DefaultCatalog returns the compiled-in badge catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultDefinitions)
	if err != nil {
		panic("badge: invalid default catalog: " + err.Error())
	}
	return c
}
