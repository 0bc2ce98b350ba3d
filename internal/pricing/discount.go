// Package pricing implements the promo discount calculation. The
// functions here are pure: looking codes up and checking the active
// flag is the promo repository's job.
package pricing

import (
    "math"

    "github.com/iliyamo/experience-booking/internal/model"
)

// Discount computes the discount for a subtotal given a promo code's
// type and value. Amounts are whole currency units.
//
// For "percentage" the discount is subtotal*value/100 rounded half-up
// to the nearest whole unit, matching common currency rounding. For
// "flat" the discount is capped at the subtotal so a total can never
// go negative. Unrecognised types yield zero: the code itself is still
// considered valid and simply passes through without effect.
func Discount(discountType string, value float64, subtotal int64) int64 {
    switch discountType {
    case model.DiscountTypePercentage:
        return roundHalfUp(float64(subtotal) * value / 100)
    case model.DiscountTypeFlat:
        d := roundHalfUp(value)
        if d > subtotal {
            return subtotal
        }
        if d < 0 {
            return 0
        }
        return d
    default:
        return 0
    }
}

// roundHalfUp rounds to the nearest integer with ties going up, the
// behaviour of math.Floor(x + 0.5) for non-negative inputs.
func roundHalfUp(x float64) int64 {
    return int64(math.Floor(x + 0.5))
}
