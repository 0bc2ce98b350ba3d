package model

import "time"

// BookingStatusConfirmed is the only status ever persisted for a
// booking.  Failed attempts never produce a row.
const BookingStatusConfirmed = "confirmed"

// Booking records a confirmed reservation of capacity on a slot.  A
// booking is created exactly once per successful reservation and is
// never mutated afterwards.  All monetary amounts are in whole
// currency units and are supplied by the caller at creation time.
//
// Fields:
//  ID           – primary key identifier.
//  BookingRef   – unique human-readable 8-character reference code.
//  ExperienceID – experience that was booked.
//  SlotID       – slot whose capacity was consumed.
//  UserName     – customer name.
//  UserEmail    – customer email address.
//  Quantity     – number of seats booked (>= 1).
//  Subtotal     – price before taxes and discount.
//  Taxes        – tax amount.
//  Discount     – discount applied, zero when no promo code was used.
//  TotalPrice   – final amount charged.
//  PromoCode    – promo code used, if any.
//  Status       – always "confirmed" for persisted rows.
//  CreatedAt    – creation timestamp.
type Booking struct {
    ID           uint64    // bookings.id
    BookingRef   string    // bookings.booking_ref
    ExperienceID uint64    // bookings.experience_id
    SlotID       uint64    // bookings.slot_id
    UserName     string    // bookings.user_name
    UserEmail    string    // bookings.user_email
    Quantity     int       // bookings.quantity
    Subtotal     int64     // bookings.subtotal
    Taxes        int64     // bookings.taxes
    Discount     int64     // bookings.discount
    TotalPrice   int64     // bookings.total_price
    PromoCode    *string   // bookings.promo_code (nullable)
    Status       string    // bookings.status
    CreatedAt    time.Time // bookings.created_at
}
