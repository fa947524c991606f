package schedule

import (
	"strings"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

// Normalize collapses tasks that are indistinguishable to the user and to
// capacity accounting: same trimmed lowercased name, same status (postponed
// / assigned to the same slot / unassigned), same kind and lifecycle. The
// first occurrence keeps its identity and absorbs the durations of the
// rest. Running it twice changes nothing.
func Normalize(st *State) {
	if len(st.Tasks) == 0 {
		return
	}

	out := make([]model.Task, 0, len(st.Tasks))
	index := make(map[string]int, len(st.Tasks))

	for _, t := range st.Tasks {
		trimmed := strings.TrimSpace(t.Name)
		name := trimmed
		if name == "" {
			name = t.Name
		}
		key := strings.ToLower(name) + "::" + statusKey(t) + "::" + string(t.Kind) + "::" + string(t.Lifecycle)

		t.Name = name
		if i, ok := index[key]; ok {
			out[i].Duration = RoundHours(out[i].Duration + t.Duration)
			continue
		}
		index[key] = len(out)
		out = append(out, t)
	}

	st.Tasks = out
}

func statusKey(t model.Task) string {
	if t.Postponed {
		return "postponed"
	}
	if t.AssignedSlotID != "" {
		return "assigned:" + string(t.AssignedSlotID)
	}
	return "unassigned"
}
