// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── books/           # Book fetch/insert/save/delete
//
// A single *gorm.DB is opened per process and handed to repositories by
// constructor injection:
//
//	db, err := database.NewDatabase("./bookshelf.db")
//	repo := db.Books()
//	list, err := repo.Fetch(ctx, services.Query{Filter: "du"})
//
// # Interface Implementations
//
//   - books.Repository: implements services.BookStore and services.BookReader
//
// Concurrent writers from different screens share the connection pool and
// rely on SQLite for consistency; there is no additional locking.
package database
