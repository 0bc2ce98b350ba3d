package model

import "time"

// Slot is a bookable (date, time) instance of an experience with a
// finite capacity.  Available capacity is always derived as
// TotalSlots - BookedSlots; the invariant BookedSlots <= TotalSlots
// must hold after every committed write.
//
// Fields:
//  ID           – primary key identifier.
//  ExperienceID – experience this slot belongs to.
//  Date         – calendar date in "2006-01-02" form (UTC).
//  Time         – start time in "15:04" form.
//  TotalSlots   – total capacity of the slot.
//  BookedSlots  – seats already booked; only the slot repository may
//                 increment this value.
//  CreatedAt    – creation timestamp.
type Slot struct {
    ID           uint64    // available_slots.id
    ExperienceID uint64    // available_slots.experience_id
    Date         string    // available_slots.date
    Time         string    // available_slots.time
    TotalSlots   int       // available_slots.total_slots
    BookedSlots  int       // available_slots.booked_slots
    CreatedAt    time.Time // available_slots.created_at
}

// Available returns the remaining capacity of the slot.
func (s *Slot) Available() int {
    return s.TotalSlots - s.BookedSlots
}

// SoldOut reports whether the slot has no remaining capacity.
func (s *Slot) SoldOut() bool {
    return s.BookedSlots >= s.TotalSlots
}
