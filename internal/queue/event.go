// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// confirmed. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type BookingConfirmedEvent struct {
    BookingID    uint64 `json:"booking_id"`
    BookingRef   string `json:"booking_ref"`
    ExperienceID uint64 `json:"experience_id"`
    SlotID       uint64 `json:"slot_id"`
    UserEmail    string `json:"user_email"`
    Quantity     int    `json:"quantity"`
    TotalPrice   int64  `json:"total_price"`
    ConfirmedAt  string `json:"confirmed_at"`
}
