// Package utils contains small helpers shared across the service.
package utils

import "math/rand"

// refAlphabet is the 36-character alphabet booking references are
// drawn from. Uppercase letters and digits only, so references can be
// read over the phone without ambiguity about case.
const refAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// refLength is the fixed length of a booking reference.
const refLength = 8

// NewBookingRef returns a random 8-character booking reference with
// each character drawn uniformly and independently from [A-Z0-9].
// The generator is not cryptographic and uniqueness is not guaranteed
// here; the UNIQUE index on bookings.booking_ref catches the rare
// collision at insert time.
func NewBookingRef() string {
    b := make([]byte, refLength)
    for i := range b {
        b[i] = refAlphabet[rand.Intn(len(refAlphabet))]
    }
    return string(b)
}
