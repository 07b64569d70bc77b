package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/amishk599/jobinsights/internal/aggregate"
	"github.com/amishk599/jobinsights/internal/model"
)

func sampleRecords() []model.Record {
	s := model.StringPtr
	return []model.Record{
		{Title: s("Data Analyst"), Company: s("Acme"), Location: s("Cape Town"), Skills: []string{"python", "sql"}},
		{Title: s("Engineer"), Company: s("Acme"), Skills: []string{}},
	}
}

func exportTo(t *testing.T, path string) {
	t.Helper()
	records := sampleRecords()
	if err := ExportSQLite(context.Background(), path, records, aggregate.Aggregate(records)); err != nil {
		t.Fatalf("ExportSQLite: %v", err)
	}
}

func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestExportSQLite_WritesListingsAndRankings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "jobs.db")
	exportTo(t, path)
	db := openDB(t, path)

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM listings").Scan(&count); err != nil {
		t.Fatalf("count listings: %v", err)
	}
	if count != 2 {
		t.Errorf("listings = %d, want 2", count)
	}

	var skills string
	var location sql.NullString
	err := db.QueryRow("SELECT skills, location FROM listings WHERE title = 'Engineer'").Scan(&skills, &location)
	if err != nil {
		t.Fatalf("query engineer: %v", err)
	}
	if skills != "" || location.Valid {
		t.Errorf("engineer row: skills %q, location %+v; want empty and NULL", skills, location)
	}

	var label string
	var n int
	err = db.QueryRow("SELECT label, count FROM rankings WHERE table_name = ? AND rank = 1",
		aggregate.KeyTopCompanies).Scan(&label, &n)
	if err != nil {
		t.Fatalf("query ranking: %v", err)
	}
	if label != "Acme" || n != 2 {
		t.Errorf("top company = %s (%d), want Acme (2)", label, n)
	}
}

func TestExportSQLite_ReplacesPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.db")
	if err := os.WriteFile(path, []byte("not a database"), 0o644); err != nil {
		t.Fatal(err)
	}

	exportTo(t, path)
	exportTo(t, path)

	var count int
	if err := openDB(t, path).QueryRow("SELECT COUNT(*) FROM listings").Scan(&count); err != nil {
		t.Fatalf("count listings: %v", err)
	}
	if count != 2 {
		t.Errorf("listings = %d, want 2 from the latest run only", count)
	}
}
