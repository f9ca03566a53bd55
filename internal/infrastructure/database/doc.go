// Package database provides SQLite connectivity for the device layer's
// persistent counter store.
//
// This package manages:
//   - Database connection with optional WAL mode
//   - An exclusive process lock beside the database file (gofrs/flock)
//   - Additive schema migrations embedded in the binary
//   - Transactions via WithTx
//
// Security Considerations:
//   - All queries use parameterised statements
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
