package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/experience-booking/internal/model"
)

// SlotRepo is the availability ledger for the available_slots table.
// It owns the only path that increments booked_slots. Concurrency
// safety relies exclusively on the conditional update in Reserve: no
// in-process locks are taken and no transaction spans the reservation
// and the subsequent booking insert.
type SlotRepo struct {
    db *sql.DB
}

// NewSlotRepo returns a SlotRepo bound to the given database.
func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

// GetByID returns a single slot by its primary key. It returns
// ErrSlotNotFound when no row matches. The returned value is a
// snapshot: booked_slots may change immediately after the read, which
// is why Reserve re-checks it with an equality guard.
func (r *SlotRepo) GetByID(ctx context.Context, id uint64) (*model.Slot, error) {
    const q = `SELECT id, experience_id, date, time, total_slots, booked_slots, created_at
               FROM available_slots WHERE id = ?`
    var s model.Slot
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &s.ID, &s.ExperienceID, &s.Date, &s.Time, &s.TotalSlots, &s.BookedSlots, &s.CreatedAt,
    )
    if err == sql.ErrNoRows {
        return nil, ErrSlotNotFound
    }
    if err != nil {
        return nil, err
    }
    return &s, nil
}

// ListByExperience returns all slots of an experience on or after the
// given date ("2006-01-02"), ordered by date then time so clients can
// render a chronological picker. When fromDate is empty no date filter
// is applied.
func (r *SlotRepo) ListByExperience(ctx context.Context, experienceID uint64, fromDate string) ([]model.Slot, error) {
    q := `SELECT id, experience_id, date, time, total_slots, booked_slots, created_at
          FROM available_slots WHERE experience_id = ?`
    args := []interface{}{experienceID}
    if fromDate != "" {
        q += ` AND date >= ?`
        args = append(args, fromDate)
    }
    q += ` ORDER BY date ASC, time ASC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Slot, 0)
    for rows.Next() {
        var s model.Slot
        if err := rows.Scan(
            &s.ID, &s.ExperienceID, &s.Date, &s.Time, &s.TotalSlots, &s.BookedSlots, &s.CreatedAt,
        ); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Reserve attempts to consume quantity seats from the slot using a
// compare-and-swap update: booked_slots is set to expectedBooked +
// quantity only if the persisted value still equals expectedBooked.
// When the guard fails (another booking won the race since the
// caller's snapshot) no row is updated and ErrSlotConflict is
// returned. Capacity must be checked by the caller from its snapshot
// before calling Reserve; this method only serialises the increment.
func (r *SlotRepo) Reserve(ctx context.Context, slotID uint64, quantity, expectedBooked int) error {
    const q = `UPDATE available_slots SET booked_slots = ? WHERE id = ? AND booked_slots = ?`
    res, err := r.db.ExecContext(ctx, q, expectedBooked+quantity, slotID, expectedBooked)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrSlotConflict
    }
    return nil
}

// Release undoes a previous Reserve by decrementing booked_slots by
// quantity, clamped at zero. It is a best-effort compensation used
// when the booking insert fails after the reservation committed; it is
// deliberately unconditional so it cannot lose a CAS race of its own.
// If Release itself fails the slot is left over-reserved, which the
// caller must surface via logging.
func (r *SlotRepo) Release(ctx context.Context, slotID uint64, quantity int) error {
    const q = `UPDATE available_slots SET booked_slots = GREATEST(booked_slots - ?, 0) WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, quantity, slotID)
    return err
}
