package slotlist

import (
	"errors"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

var ErrNotFound = errors.New("slot list not found")

type Repo interface {
	List() ([]model.SavedSlotList, error)
	Get(id model.SlotListID) (model.SavedSlotList, error)
	Create(name string, slots []model.Slot) (model.SavedSlotList, error)
	Rename(id model.SlotListID, name string) (model.SavedSlotList, error)
	Delete(id model.SlotListID) error
}
