package schedule

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

// fileDoc is the on-disk shape. NoTimeTasks carries the legacy flat list of
// no-time task names so documents written by older clients keep loading.
type fileDoc struct {
	Slots       []model.Slot `json:"slots"`
	Tasks       []model.Task `json:"tasks"`
	NoTimeTasks []string     `json:"noTimeTasks"`
}

// FileStore keeps the schedule in a single JSON file. The cached state is
// authoritative; a failed write leaves it in place and surfaces the error
// to the caller for logging.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	state  *State
	legacy []string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	s := &FileStore{
		path:  filepath.Join(dataDir, "schedule.json"),
		state: NewState(),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var doc fileDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	st := &State{Slots: doc.Slots, Tasks: doc.Tasks}
	if st.Slots == nil {
		st.Slots = []model.Slot{}
	}
	if st.Tasks == nil {
		st.Tasks = []model.Task{}
	}
	st.sanitize()
	s.state = st
	s.legacy = doc.NoTimeTasks
	return nil
}

func (s *FileStore) Load() (*State, []string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), append([]string{}, s.legacy...), nil
}

func (s *FileStore) Save(st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = st.Clone()
	s.legacy = nil

	doc := fileDoc{
		Slots:       s.state.Slots,
		Tasks:       s.state.Tasks,
		NoTimeTasks: noTimeNames(s.state),
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

// noTimeNames derives the legacy flat list from the current tasks, so
// older readers of the document keep working.
func noTimeNames(st *State) []string {
	names := []string{}
	for _, t := range st.Tasks {
		if t.NoTime() {
			names = append(names, t.Name)
		}
	}
	return names
}
