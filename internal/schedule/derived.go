package schedule

// Totals are the derived hour figures the client shows next to the
// schedule. Postponed tasks are reported in their own bucket; they still
// count toward HourDifference because they still occupy their slots.
type Totals struct {
	SlotHours           float64 `json:"slotHours"`
	TaskHours           float64 `json:"taskHours"`
	AssignedTaskHours   float64 `json:"assignedTaskHours"`
	UnassignedTaskHours float64 `json:"unassignedTaskHours"`
	PostponedTaskHours  float64 `json:"postponedTaskHours"`
	HourDifference      float64 `json:"hourDifference"`
	HasAssignedTasks    bool    `json:"hasAssignedTasks"`
}

// ComputeTotals sums hours over the slot registry and the schedulable
// tasks. No-time and pending-cleanup tasks are excluded throughout.
func (s *State) ComputeTotals() Totals {
	var t Totals
	for _, slot := range s.Slots {
		t.SlotHours += slot.Hours
	}

	for _, task := range s.Tasks {
		if !task.Schedulable() {
			continue
		}
		if task.Postponed {
			t.PostponedTaskHours += task.Duration
		} else {
			t.TaskHours += task.Duration
			if task.Assigned() {
				t.AssignedTaskHours += task.Duration
			} else {
				t.UnassignedTaskHours += task.Duration
			}
		}
		if task.Assigned() {
			t.HasAssignedTasks = true
		}
	}

	t.SlotHours = RoundHours(t.SlotHours)
	t.TaskHours = RoundHours(t.TaskHours)
	t.AssignedTaskHours = RoundHours(t.AssignedTaskHours)
	t.UnassignedTaskHours = RoundHours(t.UnassignedTaskHours)
	t.PostponedTaskHours = RoundHours(t.PostponedTaskHours)
	t.HourDifference = RoundHours(t.SlotHours - t.TaskHours - t.PostponedTaskHours)
	return t
}
