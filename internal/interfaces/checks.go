package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/features/booklist"
	"github.com/mrlokans/bookshelf/internal/features/container"
	"github.com/mrlokans/bookshelf/internal/features/editbook"
	"github.com/mrlokans/bookshelf/internal/features/home"
	"github.com/mrlokans/bookshelf/internal/features/newbook"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/store"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.BookStore = (*books.Repository)(nil)
var _ services.BookReader = (*books.Repository)(nil)

// =============================================================================
// Screens
// =============================================================================

var _ store.Reducer[booklist.State, booklist.Action] = (*booklist.Reducer)(nil)
var _ store.Reducer[newbook.State, newbook.Action] = (*newbook.Reducer)(nil)
var _ store.Reducer[editbook.State, editbook.Action] = (*editbook.Reducer)(nil)
var _ store.Reducer[container.State, container.Action] = (*container.Reducer)(nil)
var _ store.Reducer[home.State, home.Action] = (*home.Reducer)(nil)

// =============================================================================
// Transport
// =============================================================================

var _ http.AppStore = (*home.Store)(nil)
