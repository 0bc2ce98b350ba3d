// Package repository contains data access logic for the booking domain.
// This file defines repository methods for experiences. Experiences are
// read-only from the booking core's perspective; they are seeded and
// managed out of band.
package repository

import (
    "context"      // context for controlling query lifetime
    "database/sql" // sql provides DB abstraction

    "github.com/iliyamo/experience-booking/internal/model"
)

// ExperienceRepo manages read access to the experiences table.
type ExperienceRepo struct {
    db *sql.DB
}

// NewExperienceRepo returns an ExperienceRepo bound to the given database.
func NewExperienceRepo(db *sql.DB) *ExperienceRepo { return &ExperienceRepo{db: db} }

// GetByID returns a single experience by its primary key. It returns
// ErrExperienceNotFound when no row matches.
func (r *ExperienceRepo) GetByID(ctx context.Context, id uint64) (*model.Experience, error) {
    const q = `SELECT id, title, image, description, price, location, guide_name, about, created_at
               FROM experiences WHERE id = ?`
    var e model.Experience
    var guideName, about sql.NullString
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &e.ID, &e.Title, &e.Image, &e.Description, &e.Price, &e.Location,
        &guideName, &about, &e.CreatedAt,
    )
    if err == sql.ErrNoRows {
        return nil, ErrExperienceNotFound
    }
    if err != nil {
        return nil, err
    }
    if guideName.Valid {
        g := guideName.String
        e.GuideName = &g
    }
    if about.Valid {
        a := about.String
        e.About = &a
    }
    return &e, nil
}

// List returns all experiences ordered by creation time ascending, the
// order in which they were added to the catalogue. An empty slice is
// returned when the table is empty.
func (r *ExperienceRepo) List(ctx context.Context) ([]model.Experience, error) {
    const q = `SELECT id, title, image, description, price, location, guide_name, about, created_at
               FROM experiences ORDER BY created_at ASC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Experience, 0)
    for rows.Next() {
        var e model.Experience
        var guideName, about sql.NullString
        if err := rows.Scan(
            &e.ID, &e.Title, &e.Image, &e.Description, &e.Price, &e.Location,
            &guideName, &about, &e.CreatedAt,
        ); err != nil {
            return nil, err
        }
        if guideName.Valid {
            g := guideName.String
            e.GuideName = &g
        }
        if about.Valid {
            a := about.String
            e.About = &a
        }
        out = append(out, e)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
