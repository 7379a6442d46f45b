// Package database provides SQLite-backed persistence for stored identity
// and payment records. The engine itself never touches the database; the
// CLI loads records from here into an in-memory store and saves imported
// records back.
package database
