package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabaseWithLogLevel(dbPath, logger.Silent)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func getHealth(t *testing.T, controller *HealthController) (int, HealthResponse) {
	t.Helper()

	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

type fakeRefresh struct {
	running bool
	next    time.Time
}

func (f fakeRefresh) IsRunning() bool { return f.running }

func (f fakeRefresh) GetNextRunTime() *time.Time {
	if !f.running {
		return nil
	}
	return &f.next
}

func TestHealthController_Refresh(t *testing.T) {
	gin.SetMode(gin.TestMode)
	next := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)

	tests := []struct {
		name    string
		refresh RefreshStatus
		want    string
	}{
		{"no scheduler", nil, "disabled"},
		{"stopped scheduler", fakeRefresh{}, "disabled"},
		{"running scheduler", fakeRefresh{running: true, next: next}, "next run 2026-01-02T03:04:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, response := getHealth(t, NewHealthController(nil, "1.0.0").WithRefresh(tt.refresh))

			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.want, response.Checks["refresh"])
		})
	}
}

func TestHealthController_Status(t *testing.T) {
	t.Run("healthy with a connected database", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		code, response := getHealth(t, NewHealthController(db, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Contains(t, response.Time, "T")
	})

	t.Run("database not configured", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		code, response := getHealth(t, NewHealthController(nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("unhealthy after the database is closed", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		require.NoError(t, db.Close())

		code, response := getHealth(t, NewHealthController(db, "1.0.0"))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})
}
