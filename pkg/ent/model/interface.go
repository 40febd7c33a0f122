package model

// Model prepares the database schema.
type Model interface {
	// Migrate creates or updates tables of the database.
	Migrate() error
}
