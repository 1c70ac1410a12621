package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postPatchJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func adminTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PATCH("/feedback/:id",
		func(c *gin.Context) {
			c.Set("user_id", uint(1))
			c.Next()
		},
		ModerateFeedback,
	)
	return router
}

func TestModerateFeedback_ResolvedRequiresResponse(t *testing.T) {
	mock := setupMockDB(t)
	router := adminTestRouter()

	w := postPatchJSON(t, router, "/feedback/7", map[string]interface{}{
		"status": "resolved",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Response required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModerateFeedback_ResolvedWithBlankResponseRejected(t *testing.T) {
	mock := setupMockDB(t)
	router := adminTestRouter()

	w := postPatchJSON(t, router, "/feedback/7", map[string]interface{}{
		"status":         "resolved",
		"admin_response": "   ",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModerateFeedback_UnknownStatusRejected(t *testing.T) {
	mock := setupMockDB(t)
	router := adminTestRouter()

	w := postPatchJSON(t, router, "/feedback/7", map[string]interface{}{
		"status": "archived",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModerateFeedback_InvalidIDRejected(t *testing.T) {
	mock := setupMockDB(t)
	router := adminTestRouter()

	w := postPatchJSON(t, router, "/feedback/not-a-number", map[string]interface{}{
		"status": "reviewed",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
