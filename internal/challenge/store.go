package challenge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// DefaultGridSize is the number of cells in the money-challenge grid.
// Selections index into [0, grid size).
const DefaultGridSize = 90

type fileDoc struct {
	Selected []int `json:"selected"`
}

// FileStore persists the set of selected grid cells.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	gridSize int
	selected []int
}

func NewFileStore(dataDir string, gridSize int) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}
	s := &FileStore{
		path:     filepath.Join(dataDir, "money_challenge.json"),
		gridSize: gridSize,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.selected = []int{}
			return nil
		}
		return err
	}

	var loaded fileDoc
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	s.selected = sanitizeSelection(loaded.Selected, s.gridSize)
	return nil
}

func (s *FileStore) saveLocked() error {
	b, err := json.MarshalIndent(fileDoc{Selected: s.selected}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *FileStore) Selected() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int{}, s.selected...)
}

// SetSelected replaces the selection with the sanitized form of the input:
// out-of-range values dropped, duplicates removed, ascending order.
func (s *FileStore) SetSelected(selected []int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = sanitizeSelection(selected, s.gridSize)
	if err := s.saveLocked(); err != nil {
		return nil, err
	}
	return append([]int{}, s.selected...), nil
}

func sanitizeSelection(in []int, gridSize int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if v < 0 || v >= gridSize || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
