package snapshot

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
	v1 := r.Group("/api/v1")
	NewHandler(f.svc).RegisterRoutes(v1, v1)
	return r, f
}

func TestHandler_SnapshotLifecycle(t *testing.T) {
	r, f := setupTestRouter(t)
	path := "/api/v1/queries/" + strconv.FormatInt(f.queryID, 10) + "/snapshots"

	body, _ := json.Marshal(map[string]any{"variant_ids": f.variants})
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"count":2`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path+"?with_markup=true", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Data struct {
			Snapshots []struct {
				Name string `json:"name"`
			} `json:"snapshots"`
			Display []struct {
				Price struct {
					Total string `json:"total"`
				} `json:"price"`
			} `json:"display"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Data.Snapshots, 2)
	require.Len(t, listed.Data.Display, 2)
	assert.Equal(t, "165.55", listed.Data.Display[0].Price.Total)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestHandler_CreateValidation(t *testing.T) {
	r, f := setupTestRouter(t)
	path := "/api/v1/queries/" + strconv.FormatInt(f.queryID, 10) + "/snapshots"

	for _, body := range []string{`{}`, `{"variant_ids": []}`, `{"variant_ids": [0]}`} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"variant_ids": [424242]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/queries/x/snapshots", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
