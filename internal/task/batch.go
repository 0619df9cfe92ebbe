package task

import "github.com/dukerupert/taskquest/internal/model"

// BatchEntry is one row of a bulk board update. A nil AssigneeID leaves the
// assignee unchanged.
type BatchEntry struct {
	TaskID     int64            `json:"task_id"`
	Status     model.TaskStatus `json:"status"`
	Position   int              `json:"position"`
	AssigneeID *int64           `json:"assignee_id,omitempty"`
}

// PlanBatch walks entries in request order, starting every task from its
// pre-batch persisted state in prior, and returns the point events the batch
// owes. Events are collapsed per task and member: each member contributes at
// most one award and at most one removal for a task, in request order, and
// every member's net equals what the uncollapsed walk would have moved for
// them. Entries whose task is missing from prior are ignored.
//
// Callers must reject reassigning a task that stays DONE, so that every
// removal within the batch comes from the member the matching award went to.
func PlanBatch(prior map[int64]State, entries []BatchEntry) []Event {
	running := make(map[int64]State, len(prior))
	for id, st := range prior {
		running[id] = st
	}

	type owed struct{ taskID, memberID int64 }
	perMember := make(map[owed][]Event)
	var order []owed
	for _, e := range entries {
		prev, ok := running[e.TaskID]
		if !ok {
			continue
		}
		next := prev
		next.Status = e.Status
		if e.AssigneeID != nil {
			next.AssigneeID = e.AssigneeID
		}
		running[e.TaskID] = next

		ev, ok := Transition(e.TaskID, prev, next)
		if !ok {
			continue
		}
		key := owed{ev.TaskID, ev.MemberID}
		if _, seen := perMember[key]; !seen {
			order = append(order, key)
		}
		perMember[key] = append(perMember[key], ev)
	}

	var events []Event
	for _, key := range order {
		evs := perMember[key]
		first, last := evs[0], evs[len(evs)-1]
		if first.Action == last.Action {
			// Intermediate award/remove pairs cancel out.
			events = append(events, last)
			continue
		}
		events = append(events, first, last)
	}
	return events
}
