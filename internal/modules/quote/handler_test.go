package quote

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*gin.Engine, fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := setupFixture(t)
	r := gin.New()
	NewHandler(f.svc).RegisterRoutes(r.Group("/api/v1"))
	return r, f
}

type quoteEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		BasePrice string   `json:"base_price"`
		TotalCost string   `json:"total_cost"`
		Warnings  []string `json:"warnings"`
	} `json:"data"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func post(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, quoteEnvelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env quoteEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestHandler_QuoteItinerary(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, env := post(t, r, `{
		"markup_percentage": 10,
		"days": [{
			"day_number": 1,
			"date": "2026-07-10",
			"hotel_id": 1,
			"stay_span_days": 2,
			"rooms": [{"room_type_id": 1, "occupancy_type_id": 2, "meal_plan_id": 3, "quantity": 2}],
			"transports": [{"assignment_id": "transfer", "vehicle_type_id": 5, "quantity": 1, "billing_mode": "per_trip"}]
		}]
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "18000", env.Data.BasePrice)
	assert.Equal(t, "19800", env.Data.TotalCost)
}

func TestHandler_QuoteItineraryValidation(t *testing.T) {
	r, _ := setupTestRouter(t)

	cases := map[string]string{
		"no days":        `{"days": []}`,
		"bad date":       `{"days": [{"day_number": 1, "date": "10.07.2026", "hotel_id": 1}]}`,
		"zero quantity":  `{"days": [{"day_number": 1, "date": "2026-07-10", "hotel_id": 1, "rooms": [{"room_type_id": 1, "occupancy_type_id": 2, "meal_plan_id": 3, "quantity": 0}]}]}`,
		"billing mode":   `{"days": [{"day_number": 1, "date": "2026-07-10", "transports": [{"vehicle_type_id": 5, "quantity": 1, "billing_mode": "hourly"}]}]}`,
		"empty day":      `{"days": [{"day_number": 1, "date": "2026-07-10"}]}`,
		"malformed json": `{"days": [`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestHandler_QuoteVariant(t *testing.T) {
	r, f := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/variants/"+strconv.FormatInt(f.variantID, 10)+"/quote?markup=0", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var env quoteEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, env.Data.BasePrice, env.Data.TotalCost)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/variants/"+strconv.FormatInt(f.variantID, 10)+"/quote?markup=abc", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
