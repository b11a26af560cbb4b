package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the book database
	DefaultDatabasePath = "./bookshelf.db"
)
