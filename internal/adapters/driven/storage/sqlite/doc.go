// Package sqlite provides a SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It currently backs:
//
//   - OnboardingStore: onboarding history persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each applied version is recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.pileus/data/history.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
