package handler

import (
    "context"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/experience-booking/internal/model"
    "github.com/iliyamo/experience-booking/internal/pricing"
    "github.com/iliyamo/experience-booking/internal/repository"
)

// PromoFinder is the promo lookup the handler needs.
// *repository.PromoRepo satisfies it.
type PromoFinder interface {
    FindActiveByCode(ctx context.Context, code string) (*model.PromoCode, error)
}

// PromoHandler validates promo codes against a subtotal and returns
// the computed discount. The discount arithmetic itself lives in the
// pricing package; this handler only does lookup and shaping.
type PromoHandler struct {
    Promos PromoFinder
}

// NewPromoHandler constructs a PromoHandler.
func NewPromoHandler(promos PromoFinder) *PromoHandler {
    if promos == nil {
        panic("nil promo finder passed to NewPromoHandler")
    }
    return &PromoHandler{Promos: promos}
}

// Validate handles POST /v1/promo/validate. The body must contain a
// promo code and the current subtotal. Unknown and inactive codes both
// yield a generic invalid response with HTTP 200 so clients cannot
// probe which codes exist; only malformed requests and lookup failures
// use error status codes.
func (h *PromoHandler) Validate(c echo.Context) error {
    var body struct {
        Code     string `json:"code"`
        Subtotal *int64 `json:"subtotal"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"valid": false, "error": "invalid request"})
    }
    if body.Code == "" || body.Subtotal == nil || *body.Subtotal < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"valid": false, "error": "invalid request"})
    }

    promo, err := h.Promos.FindActiveByCode(c.Request().Context(), body.Code)
    if err != nil {
        if errors.Is(err, repository.ErrPromoNotFound) {
            return c.JSON(http.StatusOK, echo.Map{"valid": false, "error": "invalid promo code"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"valid": false, "error": "error validating promo code"})
    }

    discount := pricing.Discount(promo.DiscountType, promo.DiscountValue, *body.Subtotal)
    return c.JSON(http.StatusOK, echo.Map{
        "valid":          true,
        "discount":       discount,
        "discount_type":  promo.DiscountType,
        "discount_value": promo.DiscountValue,
    })
}
