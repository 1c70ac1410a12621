package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"recircuit-server/database"
	"recircuit-server/models"
)

// setupMockDB swaps the shared GORM handle for a sqlmock-backed one. Tests
// that expect no store traffic register no expectations and verify that the
// mock stayed untouched.
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.DB = gormDB
	t.Cleanup(func() {
		db.Close()
		database.DB = nil
	})

	return mock
}

func pickupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/pickup-requests",
		func(c *gin.Context) {
			c.Set("user_id", uint(42))
			c.Next()
		},
		CreatePickupRequest,
	)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func validPickupBody() map[string]interface{} {
	return map[string]interface{}{
		"full_name":    "Jordan Rivera",
		"phone":        "+1 555 0100",
		"email":        "jordan@example.com",
		"address":      "12 Circuit Lane",
		"pickup_date":  "2026-09-15",
		"pickup_time":  "9-12",
		"device_types": []string{"Batteries"},
	}
}

func TestCreatePickupRequest_MissingFieldsNeverReachStore(t *testing.T) {
	mock := setupMockDB(t)
	router := pickupTestRouter()

	body := validPickupBody()
	delete(body, "phone")
	delete(body, "address")

	w := postJSON(t, router, "/pickup-requests", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "phone")
	assert.Contains(t, w.Body.String(), "address")

	// No expectations were registered; any store call would fail this
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePickupRequest_InvalidTimeSlotRejected(t *testing.T) {
	mock := setupMockDB(t)
	router := pickupTestRouter()

	body := validPickupBody()
	body["pickup_time"] = "6-9"

	w := postJSON(t, router, "/pickup-requests", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "time slot")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePickupRequest_InvalidDeviceTypeRejected(t *testing.T) {
	mock := setupMockDB(t)
	router := pickupTestRouter()

	body := validPickupBody()
	body["device_types"] = []string{"Batteries", "Typewriters"}

	w := postJSON(t, router, "/pickup-requests", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Typewriters")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePickupRequest_StoreFailureSurfacesError(t *testing.T) {
	mock := setupMockDB(t)
	router := pickupTestRouter()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "pickup_requests"`).
		WillReturnError(errors.New("pq: deadlock detected"))
	mock.ExpectRollback()

	w := postJSON(t, router, "/pickup-requests", validPickupBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The gateway's error is surfaced verbatim in the message field
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "pq: deadlock detected", body["message"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeSlotListingCoversClosedSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterPickupContentRoutes(router.Group("/pickup-content"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pickup-content/time-slots", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	for _, slot := range models.AllTimeSlots {
		assert.Contains(t, w.Body.String(), string(slot))
	}
}

func TestCreatePickupRequest_InvalidDateRejected(t *testing.T) {
	mock := setupMockDB(t)
	router := pickupTestRouter()

	body := validPickupBody()
	body["pickup_date"] = "15/09/2026"

	w := postJSON(t, router, "/pickup-requests", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
	assert.NoError(t, mock.ExpectationsWereMet())
}
