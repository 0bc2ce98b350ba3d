// Package service implements the booking confirmation workflow: the
// capacity-safe path from a validated request to a persisted booking
// row, including the compensating release when persistence fails.
package service

import (
    "context"
    "errors"
    "fmt"
    "log"
    "regexp"
    "strings"
    "time"

    "github.com/iliyamo/experience-booking/internal/model"
    "github.com/iliyamo/experience-booking/internal/queue"
    "github.com/iliyamo/experience-booking/internal/repository"
    "github.com/iliyamo/experience-booking/internal/utils"
)

// Validation and business sentinels returned by Confirm. Handlers
// translate these into HTTP responses; anything else is an unexpected
// persistence failure and maps to a generic internal error.
var (
    // ErrMissingFields indicates a required request field was absent.
    ErrMissingFields = errors.New("missing required fields")
    // ErrInvalidEmail indicates the email does not have a
    // local@domain.tld shape. No deeper validation is attempted.
    ErrInvalidEmail = errors.New("invalid email format")
    // ErrInvalidAmount indicates a negative monetary amount.
    ErrInvalidAmount = errors.New("invalid amount")
    // ErrInvalidSlot indicates the referenced slot does not exist.
    ErrInvalidSlot = errors.New("invalid slot")
    // ErrInsufficientCapacity indicates the slot snapshot had fewer
    // remaining seats than requested. A business rejection, not a
    // server error.
    ErrInsufficientCapacity = errors.New("not enough slots available")
    // ErrBookingConflict indicates the reservation lost the CAS race
    // against a concurrent booking. Retryable by resubmitting; this
    // core does not retry automatically.
    ErrBookingConflict = errors.New("booking conflict")
)

// emailRe accepts the conventional local@domain.tld shape and nothing
// more elaborate.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SlotStore is the slice of the availability ledger the workflow
// needs. *repository.SlotRepo satisfies it.
type SlotStore interface {
    GetByID(ctx context.Context, id uint64) (*model.Slot, error)
    Reserve(ctx context.Context, slotID uint64, quantity, expectedBooked int) error
    Release(ctx context.Context, slotID uint64, quantity int) error
}

// BookingStore persists booking records. *repository.BookingRepo
// satisfies it.
type BookingStore interface {
    Create(ctx context.Context, b *model.Booking) error
}

// BookingRequest is the client contract for creating a booking. All
// monetary amounts are whole currency units and are trusted as
// supplied; the server does not recompute them.
type BookingRequest struct {
    ExperienceID uint64  `json:"experience_id"`
    SlotID       uint64  `json:"slot_id"`
    UserName     string  `json:"user_name"`
    UserEmail    string  `json:"user_email"`
    Quantity     int     `json:"quantity"`
    Subtotal     int64   `json:"subtotal"`
    Taxes        int64   `json:"taxes"`
    Discount     int64   `json:"discount"`
    TotalPrice   int64   `json:"total_price"`
    PromoCode    *string `json:"promo_code,omitempty"`
}

// BookingService coordinates the reservation of slot capacity and the
// creation of the booking record. Stores are interfaces so the
// workflow can be exercised without a database.
type BookingService struct {
    slots    SlotStore
    bookings BookingStore
    publish  func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// NewBookingService constructs a BookingService. publish may be nil
// when no broker is configured; confirmed-booking events are then
// skipped.
func NewBookingService(
    slots SlotStore,
    bookings BookingStore,
    publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error,
) *BookingService {
    if slots == nil || bookings == nil {
        panic("nil store passed to NewBookingService")
    }
    return &BookingService{slots: slots, bookings: bookings, publish: publish}
}

// validate checks the request contract: required fields present, the
// name non-empty after trimming, the email plausibly shaped, the
// quantity positive and all amounts non-negative.
func validate(req *BookingRequest) error {
    req.UserName = strings.TrimSpace(req.UserName)
    if req.ExperienceID == 0 || req.SlotID == 0 || req.UserName == "" ||
        req.UserEmail == "" || req.Quantity < 1 || req.TotalPrice <= 0 {
        return ErrMissingFields
    }
    if !emailRe.MatchString(req.UserEmail) {
        return ErrInvalidEmail
    }
    if req.Subtotal < 0 || req.Taxes < 0 || req.Discount < 0 {
        return ErrInvalidAmount
    }
    return nil
}

// Confirm runs the booking confirmation workflow:
//
//  1. validate the request;
//  2. load the slot snapshot (ErrInvalidSlot when absent);
//  3. check remaining capacity against the snapshot;
//  4. reserve capacity with a compare-and-swap on the snapshot's
//     booked count (ErrBookingConflict when the CAS loses);
//  5. persist the booking with a fresh 8-character reference;
//  6. on persistence failure, release the reserved capacity and
//     report the failure upward.
//
// Exactly one of {capacity consumed and booking row created} or {no
// net change} is observable on the success and clean-failure paths.
// The only inconsistent window is a failed release after a failed
// insert, which is logged but not auto-repaired.
func (s *BookingService) Confirm(ctx context.Context, req BookingRequest) (*model.Booking, error) {
    if err := validate(&req); err != nil {
        return nil, err
    }

    slot, err := s.slots.GetByID(ctx, req.SlotID)
    if err != nil {
        if errors.Is(err, repository.ErrSlotNotFound) {
            return nil, ErrInvalidSlot
        }
        return nil, fmt.Errorf("load slot: %w", err)
    }

    // Capacity check from the snapshot. A stale snapshot can still
    // pass here and lose the CAS below.
    if slot.Available() < req.Quantity {
        return nil, ErrInsufficientCapacity
    }

    if err := s.slots.Reserve(ctx, slot.ID, req.Quantity, slot.BookedSlots); err != nil {
        if errors.Is(err, repository.ErrSlotConflict) {
            return nil, ErrBookingConflict
        }
        return nil, fmt.Errorf("reserve slot: %w", err)
    }

    booking := &model.Booking{
        BookingRef:   utils.NewBookingRef(),
        ExperienceID: req.ExperienceID,
        SlotID:       req.SlotID,
        UserName:     req.UserName,
        UserEmail:    req.UserEmail,
        Quantity:     req.Quantity,
        Subtotal:     req.Subtotal,
        Taxes:        req.Taxes,
        Discount:     req.Discount,
        TotalPrice:   req.TotalPrice,
        PromoCode:    req.PromoCode,
        Status:       model.BookingStatusConfirmed,
    }
    if err := s.bookings.Create(ctx, booking); err != nil {
        // Compensate: the reservation must not survive a booking row
        // that was never written. Release restores the pre-reservation
        // count; if it fails the slot stays over-reserved and we can
        // only log it.
        if relErr := s.slots.Release(ctx, slot.ID, req.Quantity); relErr != nil {
            log.Printf("booking: release of %d seats on slot %d failed after insert error: %v",
                req.Quantity, slot.ID, relErr)
        }
        return nil, fmt.Errorf("create booking: %w", err)
    }

    if s.publish != nil {
        ev := queue.BookingConfirmedEvent{
            BookingID:    booking.ID,
            BookingRef:   booking.BookingRef,
            ExperienceID: booking.ExperienceID,
            SlotID:       booking.SlotID,
            UserEmail:    booking.UserEmail,
            Quantity:     booking.Quantity,
            TotalPrice:   booking.TotalPrice,
            ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
        }
        // Best effort: the booking is already durable, a lost event
        // must not fail the request.
        if err := s.publish(ctx, ev); err != nil {
            log.Printf("booking: publish confirmed event for %s failed: %v", booking.BookingRef, err)
        }
    }
    return booking, nil
}
