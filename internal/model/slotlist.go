package model

type SlotListID string

// SavedSlotList is an immutable snapshot of a slot collection taken at save
// time. It carries no back-reference to live slots.
type SavedSlotList struct {
	ID    SlotListID `json:"id"`
	Name  string     `json:"name"`
	Slots []Slot     `json:"slots"`
}
