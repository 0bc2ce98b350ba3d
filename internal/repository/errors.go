// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and services to distinguish between different failure
// scenarios. For example, ErrSlotConflict indicates that a guarded
// capacity update lost the race against a concurrent booking, while
// ErrDuplicateRef signals that a generated booking reference collided
// with an existing row.
package repository

import "errors"

// ErrExperienceNotFound indicates that no experience exists with the
// requested ID. Handlers should translate this into an HTTP 404.
var ErrExperienceNotFound = errors.New("experience not found")

// ErrSlotNotFound indicates that no slot exists with the requested ID.
var ErrSlotNotFound = errors.New("slot not found")

// ErrSlotConflict is returned when the conditional booked_slots update
// matched no row because another writer changed the count between the
// caller's snapshot read and the update. The operation can be retried
// with a fresh snapshot; this core surfaces it to the caller instead.
var ErrSlotConflict = errors.New("slot version conflict")

// ErrPromoNotFound indicates that no active promo code matches the
// normalised input. Inactive and unknown codes are deliberately not
// distinguished.
var ErrPromoNotFound = errors.New("promo code not found")

// ErrBookingNotFound indicates that no booking exists with the
// requested reference.
var ErrBookingNotFound = errors.New("booking not found")

// ErrDuplicateRef is returned when inserting a booking whose reference
// already exists. The UNIQUE index on bookings.booking_ref is the
// safety net behind the random reference generator.
var ErrDuplicateRef = errors.New("duplicate booking reference")
