package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/bookshelf/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// RefreshStatus reports on the periodic list refresh.
type RefreshStatus interface {
	IsRunning() bool
	GetNextRunTime() *time.Time
}

type HealthController struct {
	db      *database.Database
	refresh RefreshStatus
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// WithRefresh adds the refresh scheduler to the reported checks.
func (h *HealthController) WithRefresh(refresh RefreshStatus) *HealthController {
	h.refresh = refresh
	return h
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	checks["refresh"] = "disabled"
	if h.refresh != nil && h.refresh.IsRunning() {
		if next := h.refresh.GetNextRunTime(); next != nil {
			checks["refresh"] = "next run " + next.Format(time.RFC3339)
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
