package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/experience-booking/internal/model"
)

// PromoRepo provides read access to promo codes. Promo codes are
// reference data; the booking core never writes to this table.
type PromoRepo struct {
    db *sql.DB
}

// NewPromoRepo returns a PromoRepo bound to the given database.
func NewPromoRepo(db *sql.DB) *PromoRepo { return &PromoRepo{db: db} }

// FindActiveByCode looks up an active promo code. Matching is
// case-insensitive: codes are stored uppercase and the input is
// normalised before the lookup. Both unknown and inactive codes yield
// ErrPromoNotFound so callers cannot tell the two cases apart.
func (r *PromoRepo) FindActiveByCode(ctx context.Context, code string) (*model.PromoCode, error) {
    const q = `SELECT id, code, discount_type, discount_value, is_active, created_at
               FROM promo_codes WHERE code = ? AND is_active = TRUE`
    var p model.PromoCode
    err := r.db.QueryRowContext(ctx, q, strings.ToUpper(strings.TrimSpace(code))).Scan(
        &p.ID, &p.Code, &p.DiscountType, &p.DiscountValue, &p.IsActive, &p.CreatedAt,
    )
    if err == sql.ErrNoRows {
        return nil, ErrPromoNotFound
    }
    if err != nil {
        return nil, err
    }
    return &p, nil
}
