package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/formfill/internal/record"
)

// RecordDB provides SQLite-based storage for identity and payment records.
// It manages connection pooling and provides CRUD operations.
type RecordDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RecordDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RecordDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RecordDB, error) {
	dbPath := filepath.Join(dbDir, "formfill.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RecordDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RecordDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RecordDB) createTables() error {
	schema := `
	-- Identity records
	CREATE TABLE IF NOT EXISTS profiles (
		guid TEXT PRIMARY KEY,
		first_name TEXT,
		last_name TEXT,
		email TEXT,
		company TEXT,
		address_line1 TEXT,
		address_line2 TEXT,
		city TEXT,
		state TEXT,
		zip TEXT,
		country TEXT,
		phone TEXT,
		fax TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Payment records
	CREATE TABLE IF NOT EXISTS credit_cards (
		guid TEXT PRIMARY KEY,
		name_on_card TEXT,
		number TEXT,
		exp_month TEXT,
		exp_year TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// UpsertProfile inserts or updates an identity record keyed by GUID.
func (rdb *RecordDB) UpsertProfile(ctx context.Context, p *record.Profile) error {
	query := `
	INSERT INTO profiles (guid, first_name, last_name, email, company,
		address_line1, address_line2, city, state, zip, country, phone, fax)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(guid) DO UPDATE SET
		first_name = excluded.first_name,
		last_name = excluded.last_name,
		email = excluded.email,
		company = excluded.company,
		address_line1 = excluded.address_line1,
		address_line2 = excluded.address_line2,
		city = excluded.city,
		state = excluded.state,
		zip = excluded.zip,
		country = excluded.country,
		phone = excluded.phone,
		fax = excluded.fax,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err := rdb.db.ExecContext(ctx, query,
		p.ID, p.FirstName, p.LastName, p.Email, p.Company,
		p.AddressLine1, p.AddressLine2, p.City, p.State, p.Zip,
		p.Country, p.Phone, p.Fax,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// UpsertCreditCard inserts or updates a payment record keyed by GUID.
// The verification code is deliberately not persisted.
func (rdb *RecordDB) UpsertCreditCard(ctx context.Context, c *record.CreditCard) error {
	query := `
	INSERT INTO credit_cards (guid, name_on_card, number, exp_month, exp_year)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(guid) DO UPDATE SET
		name_on_card = excluded.name_on_card,
		number = excluded.number,
		exp_month = excluded.exp_month,
		exp_year = excluded.exp_year,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err := rdb.db.ExecContext(ctx, query,
		c.ID, c.NameOnCard, c.Number, c.ExpMonth, c.ExpYear,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert credit card: %w", err)
	}
	return nil
}

// ListProfiles returns all identity records ordered by GUID.
func (rdb *RecordDB) ListProfiles(ctx context.Context) ([]*record.Profile, error) {
	query := `
	SELECT guid, first_name, last_name, email, company,
		address_line1, address_line2, city, state, zip, country, phone, fax
	FROM profiles
	ORDER BY guid
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*record.Profile
	for rows.Next() {
		var p record.Profile
		if err := rows.Scan(
			&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Company,
			&p.AddressLine1, &p.AddressLine2, &p.City, &p.State, &p.Zip,
			&p.Country, &p.Phone, &p.Fax,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, &p)
	}

	return profiles, rows.Err()
}

// ListCreditCards returns all payment records ordered by GUID.
func (rdb *RecordDB) ListCreditCards(ctx context.Context) ([]*record.CreditCard, error) {
	query := `
	SELECT guid, name_on_card, number, exp_month, exp_year
	FROM credit_cards
	ORDER BY guid
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	defer rows.Close()

	var cards []*record.CreditCard
	for rows.Next() {
		var c record.CreditCard
		if err := rows.Scan(&c.ID, &c.NameOnCard, &c.Number, &c.ExpMonth, &c.ExpYear); err != nil {
			return nil, fmt.Errorf("failed to scan credit card: %w", err)
		}
		cards = append(cards, &c)
	}

	return cards, rows.Err()
}

// LoadStore reads all persisted records into an in-memory store.
func (rdb *RecordDB) LoadStore(ctx context.Context) (*record.MemoryStore, error) {
	profiles, err := rdb.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := rdb.ListCreditCards(ctx)
	if err != nil {
		return nil, err
	}
	return record.NewMemoryStore(profiles, cards), nil
}

// SaveStore persists every record of the store.
func (rdb *RecordDB) SaveStore(ctx context.Context, store record.Store) error {
	for _, p := range store.Profiles() {
		if err := rdb.UpsertProfile(ctx, p); err != nil {
			return err
		}
	}
	for _, c := range store.CreditCards() {
		if err := rdb.UpsertCreditCard(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
