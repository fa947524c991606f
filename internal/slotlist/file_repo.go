package slotlist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mohamedeng1505/scheduler/internal/model"
	"github.com/mohamedeng1505/scheduler/internal/schedule"
)

type fileDoc struct {
	SavedSlotLists []model.SavedSlotList `json:"savedSlotLists"`
}

type FileRepo struct {
	mu   sync.RWMutex
	path string
	doc  fileDoc
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{path: filepath.Join(dataDir, "slot_lists.json")}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.doc = fileDoc{SavedSlotLists: []model.SavedSlotList{}}
			return nil
		}
		return err
	}

	var loaded fileDoc
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.SavedSlotLists == nil {
		loaded.SavedSlotLists = []model.SavedSlotList{}
	}
	for i := range loaded.SavedSlotLists {
		loaded.SavedSlotLists[i].Slots = sanitizeSlots(loaded.SavedSlotLists[i].Slots)
	}
	r.doc = loaded
	return nil
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

// sanitizeSlots drops slots whose day or time range no longer parses and
// recomputes hours for the rest.
func sanitizeSlots(slots []model.Slot) []model.Slot {
	out := make([]model.Slot, 0, len(slots))
	for _, s := range slots {
		if model.DayIndex(s.Day) < 0 {
			continue
		}
		hours, ok := schedule.ComputeHours(s.Start, s.End)
		if !ok {
			continue
		}
		s.Hours = hours
		out = append(out, s)
	}
	return out
}

func newListID() model.SlotListID {
	return model.SlotListID("list_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func cloneList(l model.SavedSlotList) model.SavedSlotList {
	out := l
	out.Slots = append([]model.Slot(nil), l.Slots...)
	return out
}

func (r *FileRepo) List() ([]model.SavedSlotList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.SavedSlotList, 0, len(r.doc.SavedSlotLists))
	for _, l := range r.doc.SavedSlotLists {
		out = append(out, cloneList(l))
	}
	return out, nil
}

func (r *FileRepo) Get(id model.SlotListID) (model.SavedSlotList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.doc.SavedSlotLists {
		if l.ID == id {
			return cloneList(l), nil
		}
	}
	return model.SavedSlotList{}, ErrNotFound
}

func (r *FileRepo) Create(name string, slots []model.Slot) (model.SavedSlotList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := model.SavedSlotList{
		ID:    newListID(),
		Name:  strings.TrimSpace(name),
		Slots: sanitizeSlots(slots),
	}
	r.doc.SavedSlotLists = append(r.doc.SavedSlotLists, l)
	if err := r.saveLocked(); err != nil {
		return model.SavedSlotList{}, err
	}
	return cloneList(l), nil
}

func (r *FileRepo) Rename(id model.SlotListID, name string) (model.SavedSlotList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.doc.SavedSlotLists {
		if r.doc.SavedSlotLists[i].ID != id {
			continue
		}
		r.doc.SavedSlotLists[i].Name = strings.TrimSpace(name)
		if err := r.saveLocked(); err != nil {
			return model.SavedSlotList{}, err
		}
		return cloneList(r.doc.SavedSlotLists[i]), nil
	}
	return model.SavedSlotList{}, ErrNotFound
}

func (r *FileRepo) Delete(id model.SlotListID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.doc.SavedSlotLists {
		if r.doc.SavedSlotLists[i].ID != id {
			continue
		}
		r.doc.SavedSlotLists = append(r.doc.SavedSlotLists[:i], r.doc.SavedSlotLists[i+1:]...)
		return r.saveLocked()
	}
	return ErrNotFound
}
