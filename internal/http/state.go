package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/features/home"
)

// StateController exposes the application shell.
type StateController struct {
	dispatcher
}

func NewStateController(store AppStore, timeout time.Duration) *StateController {
	return &StateController{dispatcher: newDispatcher(store, timeout)}
}

// Get returns the current snapshot without waiting for effects.
func (controller *StateController) Get(c *gin.Context) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	cancel()
	settled := controller.store.Wait(ctx) == nil

	c.IndentedJSON(http.StatusOK, StateResponse{Settled: settled, State: controller.store.State()})
}

func (controller *StateController) SelectTab(c *gin.Context) {
	tab, err := home.ParseTab(c.Param("tab"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	controller.send(c, home.TabSelected{Tab: tab})
}
