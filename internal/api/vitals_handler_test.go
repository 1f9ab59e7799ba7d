package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVitalsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewVitalsHandler()
	router.POST("/vitals/bp", handler.ClassifyBP)
	router.POST("/vitals/bmi", handler.ClassifyBMI)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestClassifyBPEndpoint(t *testing.T) {
	router := newVitalsRouter()

	tests := []struct {
		name       string
		body       string
		wantStatus string
	}{
		{"crisis", `{"systolic":185,"diastolic":95}`, "crisis"},
		{"high", `{"systolic":145,"diastolic":85}`, "high"},
		{"elevated", `{"systolic":132,"diastolic":78}`, "elevated"},
		{"normal", `{"systolic":118,"diastolic":76}`, "normal"},
		{"low", `{"systolic":85,"diastolic":55}`, "low"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/vitals/bp", tt.body)
			require.Equal(t, http.StatusOK, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp["status"])
		})
	}
}

func TestClassifyBPEndpoint_RejectsOutOfRange(t *testing.T) {
	router := newVitalsRouter()

	for _, body := range []string{
		`{"systolic":300,"diastolic":80}`,
		`{"systolic":120,"diastolic":30}`,
		`{"systolic":120}`,
		`{}`,
	} {
		w := postJSON(t, router, "/vitals/bp", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestClassifyBMIEndpoint(t *testing.T) {
	router := newVitalsRouter()

	w := postJSON(t, router, "/vitals/bmi", `{"weightKg":70,"heightCm":170}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Value    float64 `json:"value"`
		Category string  `json:"category"`
		Critical bool    `json:"critical"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 24.22, resp.Value, 0.01)
	assert.Equal(t, "normal", resp.Category)
	assert.False(t, resp.Critical)
}

func TestClassifyBMIEndpoint_CriticalExtremes(t *testing.T) {
	router := newVitalsRouter()

	w := postJSON(t, router, "/vitals/bmi", `{"weightKg":45,"heightCm":170}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Category string `json:"category"`
		Critical bool   `json:"critical"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "severe underweight", resp.Category)
	assert.True(t, resp.Critical)
}
