package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/features/container"
	"github.com/mrlokans/bookshelf/internal/features/editbook"
	"github.com/mrlokans/bookshelf/internal/features/home"
)

// PathController drives the edit screens on the navigation stack. Screens are
// addressed by their position; the position is resolved to the screen's
// stable ID before any action is sent.
type PathController struct {
	dispatcher
}

func NewPathController(store AppStore, timeout time.Duration) *PathController {
	return &PathController{dispatcher: newDispatcher(store, timeout)}
}

// EditRequest edits a book draft. Omitted fields are kept; ClearRating
// removes the rating.
type EditRequest struct {
	Title         *string    `json:"title"`
	Author        *string    `json:"author"`
	Synopsis      *string    `json:"synopsis"`
	RecommendedBy *string    `json:"recommended_by"`
	Status        *string    `json:"status"`
	Rating        *int       `json:"rating" binding:"omitempty,min=1,max=5"`
	ClearRating   bool       `json:"clear_rating"`
	DateAdded     *time.Time `json:"date_added"`
	DateStarted   *time.Time `json:"date_started"`
	DateCompleted *time.Time `json:"date_completed"`
}

// actions converts the request into edit actions in a fixed order. Status
// goes before explicit dates so that a client can override the adjusted ones.
func (req EditRequest) actions() ([]editbook.Action, error) {
	var out []editbook.Action
	if req.Title != nil {
		out = append(out, editbook.TitleChanged{Title: *req.Title})
	}
	if req.Author != nil {
		out = append(out, editbook.AuthorChanged{Author: *req.Author})
	}
	if req.Synopsis != nil {
		out = append(out, editbook.SynopsisChanged{Synopsis: *req.Synopsis})
	}
	if req.RecommendedBy != nil {
		out = append(out, editbook.RecommendedByChanged{RecommendedBy: *req.RecommendedBy})
	}
	if req.ClearRating {
		out = append(out, editbook.RatingChanged{Rating: nil})
	} else if req.Rating != nil {
		rating := *req.Rating
		out = append(out, editbook.RatingChanged{Rating: &rating})
	}
	if req.Status != nil {
		status, err := entities.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		out = append(out, editbook.StatusChanged{Status: status})
	}
	if req.DateAdded != nil {
		out = append(out, editbook.DateAddedChanged{Date: *req.DateAdded})
	}
	if req.DateStarted != nil {
		out = append(out, editbook.DateStartedChanged{Date: *req.DateStarted})
	}
	if req.DateCompleted != nil {
		out = append(out, editbook.DateCompletedChanged{Date: *req.DateCompleted})
	}
	return out, nil
}

func (controller *PathController) lookup(c *gin.Context) (int, bool) {
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return 0, false
	}
	id, ok := controller.store.State().Books.PathID(index)
	if !ok {
		respondNotFound(c, "screen")
		return 0, false
	}
	return id, true
}

func path(id int, a editbook.Action) home.Action {
	return home.Books{Action: container.Path{ID: id, Action: a}}
}

func (controller *PathController) Edit(c *gin.Context) {
	id, ok := controller.lookup(c)
	if !ok {
		return
	}

	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	edits, err := req.actions()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	actions := make([]home.Action, 0, len(edits))
	for _, a := range edits {
		actions = append(actions, path(id, a))
	}
	controller.send(c, actions...)
}

func (controller *PathController) Update(c *gin.Context) {
	id, ok := controller.lookup(c)
	if !ok {
		return
	}
	controller.send(c, path(id, editbook.UpdateTapped{}))
}

func (controller *PathController) Dismiss(c *gin.Context) {
	id, ok := controller.lookup(c)
	if !ok {
		return
	}
	controller.send(c, path(id, editbook.DismissTapped{}))
}
