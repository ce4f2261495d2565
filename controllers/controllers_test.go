package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/cuisine-de-lin/order-board-api/services"
	"github.com/cuisine-de-lin/order-board-api/storage"
)

// testRig bundles what the per-endpoint tests need
type testRig struct {
	router *gin.Engine
}

// setupTestRouter returns a gin engine in test mode
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// newTestOrderService builds an order service over a temp-dir store with a
// recording broadcaster
func newTestOrderService(t *testing.T) (*services.OrderService, *services.RecordingBroadcaster) {
	t.Helper()
	store := storage.NewOrderStore(t.TempDir())
	recorder := &services.RecordingBroadcaster{}
	return services.NewOrderService(store, recorder), recorder
}

// performJSON executes a request with an optional JSON body against the router
func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// parseBody unmarshals a recorded JSON response
func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "response should be valid JSON")
	return response
}
