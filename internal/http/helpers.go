package http

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/features/home"
)

// DefaultSettleTimeout bounds how long a request waits for effects to finish.
const DefaultSettleTimeout = 5 * time.Second

// AppStore is the part of the application store the controllers need.
type AppStore interface {
	Send(action home.Action)
	State() home.State
	Wait(ctx context.Context) error
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// StateResponse wraps a state snapshot. Settled is false when effects were
// still running at the time the snapshot was taken.
type StateResponse struct {
	Settled bool       `json:"settled"`
	State   home.State `json:"state"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// --- Dispatch ---

// dispatcher sends intents to the store and answers with the settled state.
type dispatcher struct {
	store   AppStore
	timeout time.Duration
}

func newDispatcher(store AppStore, timeout time.Duration) dispatcher {
	if timeout <= 0 {
		timeout = DefaultSettleTimeout
	}
	return dispatcher{store: store, timeout: timeout}
}

// send dispatches actions in order, waits for their effects and writes the
// resulting state. A snapshot taken before effects settle is answered with
// 202 Accepted.
func (d dispatcher) send(c *gin.Context, actions ...home.Action) {
	for _, a := range actions {
		d.store.Send(a)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), d.timeout)
	defer cancel()

	status := http.StatusOK
	settled := true
	if err := d.store.Wait(ctx); err != nil {
		log.Printf("Request %s %s returned before effects settled: %v", c.Request.Method, c.FullPath(), err)
		status = http.StatusAccepted
		settled = false
	}

	c.IndentedJSON(status, StateResponse{Settled: settled, State: d.store.State()})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseIndexParam extracts a non-negative position from URL parameters.
func parseIndexParam(c *gin.Context, paramName string) (int, bool) {
	index, err := strconv.Atoi(c.Param(paramName))
	if err != nil || index < 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return index, true
}
