package variant

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

func setupTestRouter(t *testing.T) (*gin.Engine, int64) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _, variantID := setupTestService(t)
	r := gin.New()
	v1 := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(v1, v1)
	return r, variantID
}

func send(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_ReplaceDayAndList(t *testing.T) {
	r, variantID := setupTestRouter(t)
	base := "/api/v1/variants/" + strconv.FormatInt(variantID, 10)

	w := send(r, http.MethodPut, base+"/days/2", `{
		"date": "2026-08-02",
		"hotel_id": 7,
		"stay_span_days": 2,
		"rooms": [{"room_type_id": 1, "occupancy_type_id": 2, "meal_plan_id": 3, "quantity": 2, "guest_names": ["Ann", "Bo"]}]
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = send(r, http.MethodGet, base+"/days", "")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data struct {
			Days []struct {
				DayNumber    int   `json:"day_number"`
				SubjectID    int64 `json:"subject_id"`
				StaySpanDays int   `json:"stay_span_days"`
			} `json:"days"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data.Days, 1)
	assert.Equal(t, 2, env.Data.Days[0].DayNumber)
	assert.Equal(t, int64(7), env.Data.Days[0].SubjectID)
	assert.Equal(t, 2, env.Data.Days[0].StaySpanDays)
}

func TestHandler_ReplaceDayValidation(t *testing.T) {
	r, variantID := setupTestRouter(t)
	base := "/api/v1/variants/" + strconv.FormatInt(variantID, 10)

	w := send(r, http.MethodPut, base+"/days/1", `{"date": "2026-08-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPut, base+"/days/0", `{"date": "2026-08-01", "hotel_id": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPut, "/api/v1/variants/999/days/1", `{"date": "2026-08-01", "hotel_id": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_PricingRoundTrip(t *testing.T) {
	r, variantID := setupTestRouter(t)
	base := "/api/v1/variants/" + strconv.FormatInt(variantID, 10)

	w := send(r, http.MethodPut, base+"/pricing", `{"periods": [{
		"start_date": "2026-06-01", "end_date": "2026-06-30", "number_of_rooms": 2,
		"components": [{"attribute_name": "Hotel", "price": "150.25", "purchase_price": "120"}]
	}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = send(r, http.MethodGet, base+"/pricing", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"attribute_name":"Hotel"`)
	assert.Contains(t, w.Body.String(), `"price":"150.25"`)
}

func TestHandler_CreateQueryAndVariant(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := send(r, http.MethodPost, "/api/v1/queries", `{"name": "Family tour"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data struct {
			Query struct {
				ID int64 `json:"id"`
			} `json:"query"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := "/api/v1/queries/" + strconv.FormatInt(created.Data.Query.ID, 10) + "/variants"
	w = send(r, http.MethodPost, path, `{"name": "Budget", "markup_percentage": 8}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(r, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Budget"`)

	w = send(r, http.MethodPost, "/api/v1/queries", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
