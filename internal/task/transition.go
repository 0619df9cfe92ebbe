package task

import "github.com/dukerupert/taskquest/internal/model"

// Action is the incentive consequence of a status change.
type Action int

const (
	ActionNone Action = iota
	ActionAward
	ActionRemove
)

func (a Action) String() string {
	switch a {
	case ActionAward:
		return "award"
	case ActionRemove:
		return "remove"
	default:
		return "none"
	}
}

// Classify maps a status change to an Action. oldStatus must be the persisted
// status before the change, never one already mutated by the same operation.
func Classify(oldStatus, newStatus model.TaskStatus, hasAssignee bool) Action {
	if !hasAssignee {
		return ActionNone
	}
	switch {
	case newStatus == model.StatusDone && oldStatus != model.StatusDone:
		return ActionAward
	case oldStatus == model.StatusDone && newStatus != model.StatusDone:
		return ActionRemove
	default:
		return ActionNone
	}
}

// Event is a point movement owed to one member because of one task.
type Event struct {
	TaskID     int64
	MemberID   int64
	Action     Action
	Difficulty model.Difficulty
}

// State is the part of a task the incentive engine cares about.
type State struct {
	Status     model.TaskStatus
	AssigneeID *int64
	Difficulty model.Difficulty
}

// Transition classifies moving a task from prev to next. Awards go to the
// member assigned after the change at the new difficulty; removals come from
// the member assigned before it, at the old difficulty, since that is what
// was credited on entry.
func Transition(taskID int64, prev, next State) (Event, bool) {
	member, difficulty := prev.AssigneeID, prev.Difficulty
	if next.Status == model.StatusDone {
		member, difficulty = next.AssigneeID, next.Difficulty
	}

	action := Classify(prev.Status, next.Status, member != nil)
	if action == ActionNone {
		return Event{}, false
	}
	return Event{
		TaskID:     taskID,
		MemberID:   *member,
		Action:     action,
		Difficulty: difficulty,
	}, true
}
