package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/experience-booking/internal/model"
    "github.com/iliyamo/experience-booking/internal/repository"
)

// stubPromoFinder serves promo codes from a map keyed by uppercase code.
type stubPromoFinder struct {
    codes map[string]*model.PromoCode
}

func (s *stubPromoFinder) FindActiveByCode(_ context.Context, code string) (*model.PromoCode, error) {
    if p, ok := s.codes[strings.ToUpper(code)]; ok && p.IsActive {
        return p, nil
    }
    return nil, repository.ErrPromoNotFound
}

func postPromo(t *testing.T, h *PromoHandler, body string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/promo/validate", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    require.NoError(t, h.Validate(e.NewContext(req, rec)))
    return rec
}

func newPromoHandler() *PromoHandler {
    return NewPromoHandler(&stubPromoFinder{codes: map[string]*model.PromoCode{
        "SAVE10":  {Code: "SAVE10", DiscountType: "percentage", DiscountValue: 10, IsActive: true},
        "FLAT500": {Code: "FLAT500", DiscountType: "flat", DiscountValue: 500, IsActive: true},
        "EXPIRED": {Code: "EXPIRED", DiscountType: "flat", DiscountValue: 100, IsActive: false},
    }})
}

func TestValidatePromoPercentage(t *testing.T) {
    rec := postPromo(t, newPromoHandler(), `{"code": "save10", "subtotal": 1000}`)
    require.Equal(t, http.StatusOK, rec.Code)

    var resp struct {
        Valid    bool  `json:"valid"`
        Discount int64 `json:"discount"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.True(t, resp.Valid, "lookup is case-insensitive")
    assert.Equal(t, int64(100), resp.Discount)
}

func TestValidatePromoFlatCapped(t *testing.T) {
    rec := postPromo(t, newPromoHandler(), `{"code": "FLAT500", "subtotal": 300}`)
    require.Equal(t, http.StatusOK, rec.Code)

    var resp struct {
        Valid    bool  `json:"valid"`
        Discount int64 `json:"discount"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.True(t, resp.Valid)
    assert.Equal(t, int64(300), resp.Discount, "flat discount capped at subtotal")
}

func TestValidatePromoUnknownAndInactive(t *testing.T) {
    // Unknown and inactive codes produce the same generic response.
    for _, code := range []string{"NOPE", "EXPIRED"} {
        rec := postPromo(t, newPromoHandler(), `{"code": "`+code+`", "subtotal": 1000}`)
        assert.Equal(t, http.StatusOK, rec.Code)
        assert.Contains(t, rec.Body.String(), `"valid":false`)
        assert.Contains(t, rec.Body.String(), "invalid promo code")
    }
}

func TestValidatePromoMissingFields(t *testing.T) {
    rec := postPromo(t, newPromoHandler(), `{"code": "SAVE10"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    rec = postPromo(t, newPromoHandler(), `{"subtotal": 1000}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}
