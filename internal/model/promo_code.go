package model

import "time"

// Discount types recognised by the pricing calculator.  Any other
// value is treated as a pass-through that yields a zero discount.
const (
    DiscountTypePercentage = "percentage"
    DiscountTypeFlat       = "flat"
)

// PromoCode is read-only reference data describing a discount.  Codes
// are stored uppercase and matched case-insensitively by normalising
// the caller's input.
//
// Fields:
//  ID            – primary key identifier.
//  Code          – unique uppercase code.
//  DiscountType  – "percentage" or "flat".
//  DiscountValue – percentage points or a flat amount, depending on type.
//  IsActive      – whether the code can currently be redeemed.
//  CreatedAt     – creation timestamp.
type PromoCode struct {
    ID            uint64    // promo_codes.id
    Code          string    // promo_codes.code
    DiscountType  string    // promo_codes.discount_type
    DiscountValue float64   // promo_codes.discount_value
    IsActive      bool      // promo_codes.is_active
    CreatedAt     time.Time // promo_codes.created_at
}
