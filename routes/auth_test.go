package routes

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterAuthRoutes(router.Group("/auth"))
	return router
}

func TestSignup_ConcurrentDuplicateEmailConflicts(t *testing.T) {
	mock := setupMockDB(t)
	router := authTestRouter()

	// The existence check sees no row, but a concurrent signup wins the
	// insert; the unique-index violation must map to 409, not 500
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	w := postJSON(t, router, "/auth/signup", map[string]interface{}{
		"full_name":        "Jordan Rivera",
		"email":            "jordan@example.com",
		"password":         "Sup3rSecret",
		"confirm_password": "Sup3rSecret",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}
