package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/features/booklist"
	"github.com/mrlokans/bookshelf/internal/features/container"
	"github.com/mrlokans/bookshelf/internal/features/home"
	"github.com/mrlokans/bookshelf/internal/features/newbook"
	"github.com/mrlokans/bookshelf/internal/services"
)

// BooksController drives the book list, its delete alert and the creation sheet.
type BooksController struct {
	dispatcher
	books services.BookReader
}

func NewBooksController(store AppStore, books services.BookReader, timeout time.Duration) *BooksController {
	return &BooksController{dispatcher: newDispatcher(store, timeout), books: books}
}

// QueryRequest changes the list filter or sort. Omitted fields are kept.
type QueryRequest struct {
	Filter *string `json:"filter"`
	Sort   *string `json:"sort"`
}

// DeleteRequest selects books to delete by ID or by list position.
type DeleteRequest struct {
	IDs     []uint `json:"ids"`
	Offsets []int  `json:"offsets"`
}

// DraftRequest edits the creation sheet. Omitted fields are kept.
type DraftRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
}

func list(a booklist.Action) home.Action {
	return home.Books{Action: container.List{Action: a}}
}

func sheet(a newbook.Action) home.Action {
	return home.Books{Action: container.NewBook{Action: a}}
}

func (controller *BooksController) Appear(c *gin.Context) {
	controller.send(c, list(booklist.Appear{}))
}

func (controller *BooksController) ChangeQuery(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	var actions []home.Action
	if req.Sort != nil {
		order, err := entities.ParseSortOrder(*req.Sort)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		actions = append(actions, list(booklist.SortChanged{Sort: order}))
	}
	if req.Filter != nil {
		actions = append(actions, list(booklist.FilterChanged{Filter: *req.Filter}))
	}
	if len(actions) == 0 {
		respondBadRequest(c, "filter or sort is required")
		return
	}

	controller.send(c, actions...)
}

// RequestDelete asks for confirmation. Nothing is deleted until ConfirmDelete.
func (controller *BooksController) RequestDelete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	switch {
	case len(req.IDs) > 0:
		controller.send(c, list(booklist.DeleteRequested{IDs: req.IDs}))
	case len(req.Offsets) > 0:
		controller.send(c, list(booklist.DeleteAt{Offsets: req.Offsets}))
	default:
		respondBadRequest(c, "ids or offsets are required")
	}
}

func (controller *BooksController) ConfirmDelete(c *gin.Context) {
	controller.send(c, home.Books{Action: container.AlertConfirmed{}})
}

func (controller *BooksController) CancelDelete(c *gin.Context) {
	controller.send(c, home.Books{Action: container.AlertDismissed{}})
}

func (controller *BooksController) Open(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if controller.books == nil || listed(controller.store.State(), id) {
		controller.send(c, list(booklist.BookTapped{ID: id}))
		return
	}

	// Filtered out of the list: load it directly.
	book, err := controller.books.GetBookByID(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load book: " + err.Error()})
		return
	}
	controller.send(c, list(booklist.OpenBook{Book: *book}))
}

func listed(state home.State, id uint) bool {
	for _, b := range state.Books.List.Books {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (controller *BooksController) PresentNew(c *gin.Context) {
	controller.send(c, home.Books{Action: container.CreateTapped{}})
}

func (controller *BooksController) EditNew(c *gin.Context) {
	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if controller.store.State().Books.NewBook == nil {
		respondNotFound(c, "new book sheet")
		return
	}

	var actions []home.Action
	if req.Title != nil {
		actions = append(actions, sheet(newbook.TitleChanged{Title: *req.Title}))
	}
	if req.Author != nil {
		actions = append(actions, sheet(newbook.AuthorChanged{Author: *req.Author}))
	}
	controller.send(c, actions...)
}

func (controller *BooksController) CreateNew(c *gin.Context) {
	if controller.store.State().Books.NewBook == nil {
		respondNotFound(c, "new book sheet")
		return
	}
	controller.send(c, sheet(newbook.CreateTapped{}))
}

func (controller *BooksController) CancelNew(c *gin.Context) {
	controller.send(c, sheet(newbook.CancelTapped{}))
}
