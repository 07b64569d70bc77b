package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/amishk599/jobinsights/internal/aggregate"
	"github.com/amishk599/jobinsights/internal/model"
)

const schema = `
CREATE TABLE listings (
	id              INTEGER PRIMARY KEY,
	title           TEXT,
	company         TEXT,
	location        TEXT,
	location_type   TEXT,
	employment_type TEXT,
	description     TEXT,
	skills          TEXT NOT NULL,
	link            TEXT
);
CREATE TABLE rankings (
	table_name TEXT    NOT NULL,
	rank       INTEGER NOT NULL,
	label      TEXT    NOT NULL,
	count      INTEGER NOT NULL,
	PRIMARY KEY (table_name, rank)
);`

// SQLiteExporter writes one run's records and rankings to a SQLite file.
type SQLiteExporter struct {
	db *sql.DB
}

// NewSQLiteExporter creates a fresh database at dbPath, replacing any file
// already there, and creates the export tables.
func NewSQLiteExporter(dbPath string) (*SQLiteExporter, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}
	if err := os.Remove(dbPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("removing previous export: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating export tables: %w", err)
	}

	return &SQLiteExporter{db: db}, nil
}

// Export writes records and the ranked tables of res in one transaction.
func (s *SQLiteExporter) Export(ctx context.Context, records []model.Record, res aggregate.Result) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	insertListing, err := tx.PrepareContext(ctx, `INSERT INTO listings
		(title, company, location, location_type, employment_type, description, skills, link)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing listing insert: %w", err)
	}
	defer insertListing.Close()

	for i, r := range records {
		_, err = insertListing.ExecContext(ctx,
			nullable(r.Title), nullable(r.Company), nullable(r.Location),
			nullable(r.LocationType), nullable(r.EmploymentType), nullable(r.Description),
			strings.Join(r.Skills, ","), nullable(r.Link),
		)
		if err != nil {
			return fmt.Errorf("inserting listing %d: %w", i+1, err)
		}
	}

	insertRank, err := tx.PrepareContext(ctx,
		"INSERT INTO rankings (table_name, rank, label, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing ranking insert: %w", err)
	}
	defer insertRank.Close()

	tables := []struct {
		name  string
		table aggregate.Table
	}{
		{aggregate.KeyTopSkills, res.TopSkills},
		{aggregate.KeyTopLocations, res.TopLocations},
		{aggregate.KeyTopCompanies, res.TopCompanies},
	}
	for _, t := range tables {
		for rank, c := range t.table {
			if _, err = insertRank.ExecContext(ctx, t.name, rank+1, c.Label, c.N); err != nil {
				return fmt.Errorf("inserting %s rank %d: %w", t.name, rank+1, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteExporter) Close() error {
	return s.db.Close()
}

// ExportSQLite writes a complete export to dbPath and closes it.
func ExportSQLite(ctx context.Context, dbPath string, records []model.Record, res aggregate.Result) error {
	exp, err := NewSQLiteExporter(dbPath)
	if err != nil {
		return err
	}
	defer exp.Close()
	return exp.Export(ctx, records, res)
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
