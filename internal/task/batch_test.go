package task

import (
	"testing"

	"github.com/dukerupert/taskquest/internal/model"
)

func countActions(events []Event, taskID int64) (awards, removes int) {
	for _, e := range events {
		if e.TaskID != taskID {
			continue
		}
		switch e.Action {
		case ActionAward:
			awards++
		case ActionRemove:
			removes++
		}
	}
	return awards, removes
}

// netByMember sums the points each member gains or loses over events.
func netByMember(events []Event) map[int64]int {
	net := make(map[int64]int)
	for _, e := range events {
		switch e.Action {
		case ActionAward:
			net[e.MemberID] += PointsFor(e.Difficulty)
		case ActionRemove:
			net[e.MemberID] -= PointsFor(e.Difficulty)
		}
	}
	return net
}

func TestPlanBatchSameTaskTwice(t *testing.T) {
	prior := map[int64]State{
		1: {Status: model.StatusToDo, AssigneeID: ptr(7), Difficulty: model.DifficultyMedium},
	}
	entries := []BatchEntry{
		{TaskID: 1, Status: model.StatusDone},
		{TaskID: 1, Status: model.StatusInReview},
	}

	events := PlanBatch(prior, entries)
	awards, removes := countActions(events, 1)
	if awards != 1 || removes != 1 {
		t.Fatalf("awards=%d removes=%d, want 1 and 1", awards, removes)
	}
	if events[0].Action != ActionAward || events[1].Action != ActionRemove {
		t.Errorf("events out of request order: %+v", events)
	}
}

func TestPlanBatchRepeatedToggleCollapses(t *testing.T) {
	prior := map[int64]State{
		1: {Status: model.StatusToDo, AssigneeID: ptr(7), Difficulty: model.DifficultyEasy},
	}
	entries := []BatchEntry{
		{TaskID: 1, Status: model.StatusDone},
		{TaskID: 1, Status: model.StatusToDo},
		{TaskID: 1, Status: model.StatusDone},
	}

	events := PlanBatch(prior, entries)
	if len(events) != 1 || events[0].Action != ActionAward {
		t.Fatalf("events = %+v, want a single award", events)
	}
}

func TestPlanBatchUsesPreBatchStatus(t *testing.T) {
	prior := map[int64]State{
		1: {Status: model.StatusDone, AssigneeID: ptr(7), Difficulty: model.DifficultyHard},
		2: {Status: model.StatusDone, AssigneeID: ptr(8), Difficulty: model.DifficultyHard},
	}
	entries := []BatchEntry{
		{TaskID: 1, Status: model.StatusDone, Position: 3},
		{TaskID: 2, Status: model.StatusInProgress, Position: 0},
	}

	events := PlanBatch(prior, entries)
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].TaskID != 2 || events[0].Action != ActionRemove || events[0].MemberID != 8 {
		t.Errorf("event = %+v, want remove from member 8 on task 2", events[0])
	}
}

func TestPlanBatchAssigneeInEntry(t *testing.T) {
	prior := map[int64]State{
		1: {Status: model.StatusInProgress, Difficulty: model.DifficultyEasy},
	}
	entries := []BatchEntry{{TaskID: 1, Status: model.StatusDone, AssigneeID: ptr(3)}}

	events := PlanBatch(prior, entries)
	if len(events) != 1 || events[0].MemberID != 3 {
		t.Fatalf("events = %+v, want award to member 3", events)
	}
}

func TestPlanBatchUnknownTaskIgnored(t *testing.T) {
	events := PlanBatch(map[int64]State{}, []BatchEntry{{TaskID: 42, Status: model.StatusDone}})
	if len(events) != 0 {
		t.Errorf("events = %+v, want none", events)
	}
}

func TestPlanBatchReassignedMidBatch(t *testing.T) {
	prior := map[int64]State{
		9: {Status: model.StatusDone, AssigneeID: ptr(1), Difficulty: model.DifficultyEasy},
	}
	entries := []BatchEntry{
		{TaskID: 9, Status: model.StatusToDo},
		{TaskID: 9, Status: model.StatusDone, AssigneeID: ptr(2)},
		{TaskID: 9, Status: model.StatusToDo},
	}

	net := netByMember(PlanBatch(prior, entries))
	if net[1] != -10 {
		t.Errorf("member 1 net = %d, want -10", net[1])
	}
	if net[2] != 0 {
		t.Errorf("member 2 net = %d, want 0", net[2])
	}
}

func TestPlanBatchTwoMembersEachCancelOut(t *testing.T) {
	prior := map[int64]State{
		9: {Status: model.StatusToDo, AssigneeID: ptr(1), Difficulty: model.DifficultyEasy},
	}
	entries := []BatchEntry{
		{TaskID: 9, Status: model.StatusDone},
		{TaskID: 9, Status: model.StatusToDo, AssigneeID: ptr(2)},
		{TaskID: 9, Status: model.StatusDone},
		{TaskID: 9, Status: model.StatusToDo},
	}

	events := PlanBatch(prior, entries)
	net := netByMember(events)
	if net[1] != 0 || net[2] != 0 {
		t.Errorf("net = %v, want 0 for both members", net)
	}
	for _, m := range []int64{1, 2} {
		var awards, removes int
		for _, e := range events {
			if e.MemberID != m {
				continue
			}
			if e.Action == ActionAward {
				awards++
			} else {
				removes++
			}
		}
		if awards > 1 || removes > 1 {
			t.Errorf("member %d: awards=%d removes=%d, want at most one of each", m, awards, removes)
		}
	}
}
