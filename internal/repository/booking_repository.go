package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/go-sql-driver/mysql"

    "github.com/iliyamo/experience-booking/internal/model"
)

// mysqlDupEntry is the MySQL error number for a violated UNIQUE index.
const mysqlDupEntry = 1062

// BookingRepo provides persistence for booking records. Bookings are
// insert-only: a row is written exactly once per successful
// reservation and never mutated afterwards.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a new booking and populates the generated ID and the
// DB-assigned creation timestamp on the provided record. A UNIQUE
// index on booking_ref backstops the random reference generator; a
// collision surfaces as ErrDuplicateRef so the caller can treat it as
// a persistence failure and compensate the reservation.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    const q = `INSERT INTO bookings
               (booking_ref, experience_id, slot_id, user_name, user_email, quantity,
                subtotal, taxes, discount, total_price, promo_code, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    var promo sql.NullString
    if b.PromoCode != nil && *b.PromoCode != "" {
        promo = sql.NullString{String: *b.PromoCode, Valid: true}
    }
    res, err := r.db.ExecContext(ctx, q,
        b.BookingRef, b.ExperienceID, b.SlotID, b.UserName, b.UserEmail, b.Quantity,
        b.Subtotal, b.Taxes, b.Discount, b.TotalPrice, promo, b.Status,
    )
    if err != nil {
        var me *mysql.MySQLError
        if errors.As(err, &me) && me.Number == mysqlDupEntry {
            return ErrDuplicateRef
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Query the inserted row back to obtain DB defaults (created_at).
    const sel = `SELECT created_at FROM bookings WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// GetByRef returns a booking by its human-readable reference. It
// returns ErrBookingNotFound when no row matches.
func (r *BookingRepo) GetByRef(ctx context.Context, ref string) (*model.Booking, error) {
    const q = `SELECT id, booking_ref, experience_id, slot_id, user_name, user_email, quantity,
                      subtotal, taxes, discount, total_price, promo_code, status, created_at
               FROM bookings WHERE booking_ref = ?`
    var b model.Booking
    var promo sql.NullString
    err := r.db.QueryRowContext(ctx, q, ref).Scan(
        &b.ID, &b.BookingRef, &b.ExperienceID, &b.SlotID, &b.UserName, &b.UserEmail, &b.Quantity,
        &b.Subtotal, &b.Taxes, &b.Discount, &b.TotalPrice, &promo, &b.Status, &b.CreatedAt,
    )
    if err == sql.ErrNoRows {
        return nil, ErrBookingNotFound
    }
    if err != nil {
        return nil, err
    }
    if promo.Valid {
        p := promo.String
        b.PromoCode = &p
    }
    return &b, nil
}
