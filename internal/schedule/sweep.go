package schedule

import (
	"time"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

// SweepReport summarizes one expiry sweep: which slots were reclaimed and
// which tasks were staged for the user's keep-or-discard decision.
type SweepReport struct {
	RemovedSlotIDs []model.SlotID `json:"removedSlotIds"`
	StagedTaskIDs  []model.TaskID `json:"stagedTaskIds"`
}

func (r SweepReport) Changed() bool {
	return len(r.RemovedSlotIDs) > 0
}

// Sweep reclaims every slot whose time window has passed as of now. Tasks
// assigned to a reclaimed slot are detached and moved to the
// pending-cleanup lifecycle; the slots themselves are removed. A sweep that
// finds nothing passed leaves the state untouched. Safe to run repeatedly:
// it only ever looks at slots still in the registry.
func (e *Engine) Sweep(st *State, now time.Time) SweepReport {
	var report SweepReport
	if len(st.Slots) == 0 {
		return report
	}

	passed := make(map[model.SlotID]bool)
	for _, slot := range st.Slots {
		if slotPassed(slot, now) {
			passed[slot.ID] = true
			report.RemovedSlotIDs = append(report.RemovedSlotIDs, slot.ID)
		}
	}
	if len(passed) == 0 {
		return report
	}

	for i := range st.Tasks {
		t := &st.Tasks[i]
		if t.AssignedSlotID == "" || !passed[t.AssignedSlotID] {
			continue
		}
		t.AssignedSlotID = ""
		t.Lifecycle = model.LifecyclePendingCleanup
		report.StagedTaskIDs = append(report.StagedTaskIDs, t.ID)
	}

	kept := st.Slots[:0]
	for _, slot := range st.Slots {
		if !passed[slot.ID] {
			kept = append(kept, slot)
		}
	}
	st.Slots = kept
	return report
}

// slotPassed reports whether the slot's end time on the current week's
// occurrence of its weekday is at or before now. The check never looks past
// the current week: a slot counts as passed only until the next weekly
// recurrence of its weekday rolls the window forward.
func slotPassed(slot model.Slot, now time.Time) bool {
	dayIdx := model.DayIndex(slot.Day)
	if dayIdx < 0 {
		return false
	}
	endMin, ok := ParseClock(slot.End)
	if !ok {
		return false
	}

	dayDelta := dayIdx - int(now.Weekday())
	end := time.Date(now.Year(), now.Month(), now.Day()+dayDelta, endMin/60, endMin%60, 0, 0, now.Location())
	return !end.After(now)
}
