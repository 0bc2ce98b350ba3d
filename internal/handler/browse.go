// Package handler exposes HTTP handlers for the booking API. This file
// defines the public browsing endpoints: listing experiences and
// fetching a single experience together with its upcoming slots and
// their derived availability. These routes require no authentication.
package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/experience-booking/internal/model"
    "github.com/iliyamo/experience-booking/internal/repository"
)

// BrowseHandler aggregates the repositories needed for unauthenticated
// catalogue browsing.
type BrowseHandler struct {
    ExperienceRepo *repository.ExperienceRepo // provides access to experience data
    SlotRepo       *repository.SlotRepo       // provides access to slot availability
}

// NewBrowseHandler constructs a BrowseHandler with the provided
// repositories. All dependencies must be non-nil.
func NewBrowseHandler(experienceRepo *repository.ExperienceRepo, slotRepo *repository.SlotRepo) *BrowseHandler {
    if experienceRepo == nil || slotRepo == nil {
        panic("nil repository passed to NewBrowseHandler")
    }
    return &BrowseHandler{ExperienceRepo: experienceRepo, SlotRepo: slotRepo}
}

// experienceJSON is the wire form of an experience.
type experienceJSON struct {
    ID          uint64  `json:"id"`
    Title       string  `json:"title"`
    Image       string  `json:"image"`
    Description string  `json:"description"`
    Price       int64   `json:"price"`
    Location    string  `json:"location"`
    GuideName   *string `json:"guide_name,omitempty"`
    About       *string `json:"about,omitempty"`
    CreatedAt   string  `json:"created_at"`
}

// slotJSON is the wire form of a slot with its derived availability.
type slotJSON struct {
    ID           uint64 `json:"id"`
    ExperienceID uint64 `json:"experience_id"`
    Date         string `json:"date"`
    Time         string `json:"time"`
    TotalSlots   int    `json:"total_slots"`
    BookedSlots  int    `json:"booked_slots"`
    Available    int    `json:"available"`
    SoldOut      bool   `json:"sold_out"`
}

func toExperienceJSON(e *model.Experience) experienceJSON {
    return experienceJSON{
        ID:          e.ID,
        Title:       e.Title,
        Image:       e.Image,
        Description: e.Description,
        Price:       e.Price,
        Location:    e.Location,
        GuideName:   e.GuideName,
        About:       e.About,
        CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
    }
}

func toSlotJSON(s *model.Slot) slotJSON {
    return slotJSON{
        ID:           s.ID,
        ExperienceID: s.ExperienceID,
        Date:         s.Date,
        Time:         s.Time,
        TotalSlots:   s.TotalSlots,
        BookedSlots:  s.BookedSlots,
        Available:    s.Available(),
        SoldOut:      s.SoldOut(),
    }
}

// ListExperiences handles GET /v1/experiences. It returns all
// experiences in catalogue order.
func (h *BrowseHandler) ListExperiences(c echo.Context) error {
    experiences, err := h.ExperienceRepo.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch experiences"})
    }
    out := make([]experienceJSON, 0, len(experiences))
    for i := range experiences {
        out = append(out, toExperienceJSON(&experiences[i]))
    }
    return c.JSON(http.StatusOK, out)
}

// GetExperience handles GET /v1/experiences/:id. It returns the
// experience together with its slots on or after today (UTC), each
// annotated with remaining availability so clients can grey out sold
// out slots without computing anything themselves.
func (h *BrowseHandler) GetExperience(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid experience id"})
    }
    ctx := c.Request().Context()
    exp, err := h.ExperienceRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrExperienceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "experience not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch experience"})
    }
    today := time.Now().UTC().Format("2006-01-02")
    slots, err := h.SlotRepo.ListByExperience(ctx, id, today)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch slots"})
    }
    slotOut := make([]slotJSON, 0, len(slots))
    for i := range slots {
        slotOut = append(slotOut, toSlotJSON(&slots[i]))
    }
    resp := struct {
        experienceJSON
        AvailableSlots []slotJSON `json:"available_slots"`
    }{toExperienceJSON(exp), slotOut}
    return c.JSON(http.StatusOK, resp)
}
