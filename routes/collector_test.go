package routes

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func collectorTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	setUser := func(c *gin.Context) {
		c.Set("user_id", uint(7))
		c.Next()
	}
	router.PATCH("/requests/:id/accept", setUser, AcceptPickupRequest)
	router.PATCH("/requests/:id/complete", setUser, CompletePickupRequest)
	return router
}

func TestAcceptPickupRequest_Success(t *testing.T) {
	mock := setupMockDB(t)
	router := collectorTestRouter()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "pickup_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "pickup_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "assigned_collector_id"}).
			AddRow(5, 42, "accepted", 7))

	w := postPatchJSON(t, router, "/requests/5/accept", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"accepted"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptPickupRequest_NonPendingConflicts(t *testing.T) {
	mock := setupMockDB(t)
	router := collectorTestRouter()

	// The status guard lives in the UPDATE's WHERE clause; a non-pending row
	// matches nothing and the handler must report the lost transition
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "pickup_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	w := postPatchJSON(t, router, "/requests/5/accept", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid status transition")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletePickupRequest_NotAcceptedOrNotAssignedConflicts(t *testing.T) {
	mock := setupMockDB(t)
	router := collectorTestRouter()

	// Covers both guard clauses: a pending/completed row and a row assigned
	// to another collector match nothing
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "pickup_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	w := postPatchJSON(t, router, "/requests/9/complete", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "assigned to you")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletePickupRequest_ReloadFailureStillSucceeds(t *testing.T) {
	mock := setupMockDB(t)
	router := collectorTestRouter()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "pickup_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "pickup_requests"`).
		WillReturnError(errors.New("connection reset"))

	w := postPatchJSON(t, router, "/requests/9/complete", nil)

	// The transition committed; a failed reload must not turn it into an error
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pickup completed")
	assert.NotContains(t, w.Body.String(), `"data"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptPickupRequest_InvalidIDRejected(t *testing.T) {
	mock := setupMockDB(t)
	router := collectorTestRouter()

	w := postPatchJSON(t, router, "/requests/abc/accept", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
