package db

import "context"

// SchemaInterface represents a database schema.
type SchemaInterface interface {
	// Upgrade upgrades the schema to the latest version.
	Upgrade(ctx context.Context) error

	// Version returns the current version of the schema in database.
	//
	// A database without any schema is version 0.
	Version(ctx context.Context) (int, error)

	// Latest returns the newest version which this program knows.
	Latest() (int, error)

	// Context returns a context which is closed when the schema in database is not latest.
	//
	// Args
	//
	// - ctx: The context to be used.
	//
	// Returns
	//
	// - context.Context: The context which will be closed when schema in database is older (or newer) than reqirement.
	//
	// - context.CancelFunc: The function to cancel the context.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}
