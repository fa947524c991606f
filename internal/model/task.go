package model

type TaskID string

// TaskKind separates schedulable tasks from "no time" tasks, which have no
// duration requirement and never occupy a slot.
type TaskKind string

const (
	TaskKindNormal TaskKind = "normal"
	TaskKindNoTime TaskKind = "no-time"
)

// TaskLifecycle tracks whether a task is live or staged for user
// confirmation after its slot was reclaimed by the expiry sweep.
type TaskLifecycle string

const (
	LifecycleActive         TaskLifecycle = "active"
	LifecyclePendingCleanup TaskLifecycle = "pending-cleanup"
)

// Task is a unit of work with a required duration, optionally assigned to
// one slot. AssignedSlotID is empty while the task sits in the unassigned
// pool.
type Task struct {
	ID             TaskID        `json:"id"`
	Name           string        `json:"name"`
	Duration       float64       `json:"duration"`
	AssignedSlotID SlotID        `json:"assignedSlotId,omitempty"`
	Postponed      bool          `json:"postponed,omitempty"`
	Kind           TaskKind      `json:"kind"`
	Lifecycle      TaskLifecycle `json:"lifecycle"`
}

func (t Task) Assigned() bool {
	return t.AssignedSlotID != ""
}

func (t Task) NoTime() bool {
	return t.Kind == TaskKindNoTime
}

func (t Task) PendingCleanup() bool {
	return t.Lifecycle == LifecyclePendingCleanup
}

// Schedulable reports whether the task participates in slot assignment and
// hour totals: a normal task that is not staged for cleanup.
func (t Task) Schedulable() bool {
	return t.Kind == TaskKindNormal && t.Lifecycle == LifecycleActive
}
