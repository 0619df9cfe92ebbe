package task

import (
	"testing"

	"github.com/dukerupert/taskquest/internal/model"
)

func ptr(v int64) *int64 { return &v }

func TestPointsFor(t *testing.T) {
	tests := []struct {
		difficulty model.Difficulty
		want       int
	}{
		{model.DifficultyEasy, 10},
		{model.DifficultyMedium, 20},
		{model.DifficultyHard, 30},
		{"LEGENDARY", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := PointsFor(tt.difficulty); got != tt.want {
			t.Errorf("PointsFor(%q) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		old, new    model.TaskStatus
		hasAssignee bool
		want        Action
	}{
		{"enter done", model.StatusInReview, model.StatusDone, true, ActionAward},
		{"enter done from new", model.StatusNew, model.StatusDone, true, ActionAward},
		{"leave done", model.StatusDone, model.StatusToDo, true, ActionRemove},
		{"done to done", model.StatusDone, model.StatusDone, true, ActionNone},
		{"not done either side", model.StatusToDo, model.StatusInProgress, true, ActionNone},
		{"enter done unassigned", model.StatusToDo, model.StatusDone, false, ActionNone},
		{"leave done unassigned", model.StatusDone, model.StatusToDo, false, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.old, tt.new, tt.hasAssignee); got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTransitionCreditsNewAssigneeOnAward(t *testing.T) {
	prev := State{Status: model.StatusInProgress, AssigneeID: ptr(1), Difficulty: model.DifficultyHard}
	next := State{Status: model.StatusDone, AssigneeID: ptr(2), Difficulty: model.DifficultyHard}

	ev, ok := Transition(9, prev, next)
	if !ok {
		t.Fatal("expected an event")
	}
	if ev.Action != ActionAward || ev.MemberID != 2 || ev.TaskID != 9 {
		t.Errorf("event = %+v, want award to member 2 for task 9", ev)
	}
}

func TestTransitionDebitsPreviousAssigneeOnRemove(t *testing.T) {
	prev := State{Status: model.StatusDone, AssigneeID: ptr(1), Difficulty: model.DifficultyEasy}
	next := State{Status: model.StatusToDo, AssigneeID: ptr(2), Difficulty: model.DifficultyEasy}

	ev, ok := Transition(9, prev, next)
	if !ok {
		t.Fatal("expected an event")
	}
	if ev.Action != ActionRemove || ev.MemberID != 1 {
		t.Errorf("event = %+v, want remove from member 1", ev)
	}
}

func TestTransitionUnassignedAward(t *testing.T) {
	prev := State{Status: model.StatusToDo}
	next := State{Status: model.StatusDone}
	if _, ok := Transition(1, prev, next); ok {
		t.Error("unassigned completion should not produce an event")
	}
}
