package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/experience-booking/internal/model"
    "github.com/iliyamo/experience-booking/internal/repository"
    "github.com/iliyamo/experience-booking/internal/service"
)

// BookingHandler exposes booking creation and lookup. The confirmation
// workflow itself lives in the service layer; this handler binds the
// request, invokes it and maps the error taxonomy onto HTTP statuses:
// validation and business rejections are 400, a lost CAS race is 409
// and everything unexpected is a generic 500 so internal state never
// leaks into responses.
type BookingHandler struct {
    Bookings    *service.BookingService
    BookingRepo *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler. Both dependencies
// must be non-nil.
func NewBookingHandler(bookings *service.BookingService, bookingRepo *repository.BookingRepo) *BookingHandler {
    if bookings == nil || bookingRepo == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Bookings: bookings, BookingRepo: bookingRepo}
}

// bookingJSON is the wire form of a persisted booking.
type bookingJSON struct {
    ID           uint64  `json:"id"`
    BookingRef   string  `json:"booking_ref"`
    ExperienceID uint64  `json:"experience_id"`
    SlotID       uint64  `json:"slot_id"`
    UserName     string  `json:"user_name"`
    UserEmail    string  `json:"user_email"`
    Quantity     int     `json:"quantity"`
    Subtotal     int64   `json:"subtotal"`
    Taxes        int64   `json:"taxes"`
    Discount     int64   `json:"discount"`
    TotalPrice   int64   `json:"total_price"`
    PromoCode    *string `json:"promo_code,omitempty"`
    Status       string  `json:"status"`
    CreatedAt    string  `json:"created_at"`
}

func toBookingJSON(b *model.Booking) bookingJSON {
    return bookingJSON{
        ID:           b.ID,
        BookingRef:   b.BookingRef,
        ExperienceID: b.ExperienceID,
        SlotID:       b.SlotID,
        UserName:     b.UserName,
        UserEmail:    b.UserEmail,
        Quantity:     b.Quantity,
        Subtotal:     b.Subtotal,
        Taxes:        b.Taxes,
        Discount:     b.Discount,
        TotalPrice:   b.TotalPrice,
        PromoCode:    b.PromoCode,
        Status:       b.Status,
        CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
    }
}

// Create handles POST /v1/bookings. On success it returns 201 with the
// persisted booking; business rejections carry a user-presentable
// message and a "failed" status marker.
func (h *BookingHandler) Create(c echo.Context) error {
    var req service.BookingRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    booking, err := h.Bookings.Confirm(c.Request().Context(), req)
    if err != nil {
        switch {
        case errors.Is(err, service.ErrMissingFields):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
        case errors.Is(err, service.ErrInvalidEmail):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email format"})
        case errors.Is(err, service.ErrInvalidAmount):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid amount"})
        case errors.Is(err, service.ErrInvalidSlot):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot"})
        case errors.Is(err, service.ErrInsufficientCapacity):
            return c.JSON(http.StatusBadRequest, echo.Map{
                "error":  "not enough slots available",
                "status": "failed",
            })
        case errors.Is(err, service.ErrBookingConflict):
            return c.JSON(http.StatusConflict, echo.Map{
                "error":  "booking conflict, please try again",
                "status": "failed",
            })
        default:
            c.Logger().Errorf("create booking: %v", err)
            return c.JSON(http.StatusInternalServerError, echo.Map{
                "error":  "failed to create booking",
                "status": "failed",
            })
        }
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "success": true,
        "booking": toBookingJSON(booking),
        "status":  model.BookingStatusConfirmed,
    })
}

// GetByRef handles GET /v1/bookings/:ref. It looks a booking up by its
// human-readable reference for confirmation pages and support lookups.
func (h *BookingHandler) GetByRef(c echo.Context) error {
    ref := strings.ToUpper(strings.TrimSpace(c.Param("ref")))
    if len(ref) != 8 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking reference"})
    }
    booking, err := h.BookingRepo.GetByRef(c.Request().Context(), ref)
    if err != nil {
        if err == repository.ErrBookingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
    }
    return c.JSON(http.StatusOK, toBookingJSON(booking))
}
