package rates

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

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := setupTestService(t)
	h := NewHandler(svc)

	r := gin.New()
	v1 := r.Group("/api/v1")
	h.RegisterRoutes(v1, v1)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func insertBody(start, end, price string) map[string]any {
	return map[string]any{
		"kind":              "hotel",
		"subject_id":        10,
		"room_type_id":      1,
		"occupancy_type_id": 2,
		"meal_plan_id":      3,
		"start_date":        start,
		"end_date":          end,
		"price":             price,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_InsertAndResolve(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/rate-periods", insertBody("2026-04-01", "2026-12-31", "5000"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/rate-periods", insertBody("2026-07-01", "2026-09-30", "7000"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Plan SplitPlan `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	assert.Len(t, created.Plan.PeriodsToDelete, 1)
	assert.Len(t, created.Plan.PeriodsToCreate, 3)

	w = doJSON(t, r, http.MethodGet,
		"/api/v1/rate-periods/resolve?kind=hotel&subject_id=10&room_type_id=1&occupancy_type_id=2&meal_plan_id=3&date=2026-08-15", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res Resolution
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &res))
	assert.Equal(t, StatusCovered, res.Status)
	require.NotNil(t, res.Period)
	assert.Equal(t, "7000", res.Period.Price.String())
}

func TestHandler_ResolveGapIsNoCoverage(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet,
		"/api/v1/rate-periods/resolve?kind=hotel&subject_id=10&room_type_id=1&occupancy_type_id=2&meal_plan_id=3&date=2026-08-15", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res Resolution
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &res))
	assert.Equal(t, StatusNoCoverage, res.Status)
}

func TestHandler_InsertDryRunDoesNotWrite(t *testing.T) {
	r := setupTestRouter(t)

	body := insertBody("2026-04-01", "2026-12-31", "5000")
	body["dry_run"] = true
	w := doJSON(t, r, http.MethodPost, "/api/v1/rate-periods", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet,
		"/api/v1/rate-periods?kind=hotel&subject_id=10&room_type_id=1&occupancy_type_id=2&meal_plan_id=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Periods []json.RawMessage `json:"periods"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &listed))
	assert.Empty(t, listed.Periods)
}

func TestHandler_InsertValidation(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/rate-periods", insertBody("2026-05-02", "2026-05-01", "10"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/rate-periods", insertBody("05/01/2026", "2026-05-03", "10"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/rate-periods", map[string]any{"kind": "boat"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetAndDelete(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/rate-periods/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/rate-periods/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/rate-periods", insertBody("2026-04-01", "2026-04-30", "5000"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Plan SplitPlan `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	id := created.Plan.PeriodsToCreate[0].ID

	path := "/api/v1/rate-periods/" + strconv.FormatInt(id, 10)
	w = doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
