package writer

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/insightdelivered/assembly-converter/internal/models"
)

const sqliteSchema = `
DROP TABLE IF EXISTS constituencies;
DROP TABLE IF EXISTS districts;
DROP TABLE IF EXISTS parties;

CREATE TABLE constituencies (
	position        INTEGER PRIMARY KEY,
	sequence        TEXT NOT NULL,
	constituency_no INTEGER,
	constituency    TEXT NOT NULL,
	name            TEXT NOT NULL,
	party           TEXT NOT NULL,
	alliance        TEXT NOT NULL,
	remarks         TEXT NOT NULL,
	district        TEXT NOT NULL
);

CREATE TABLE districts (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE
);

CREATE TABLE parties (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE
);
`

// SQLiteWriter stores the dataset in a SQLite database, replacing any
// previous contents of its tables.
type SQLiteWriter struct{}

// WriteToFile opens (or creates) the database at path and writes the dataset.
func (w *SQLiteWriter) WriteToFile(path string, a *models.Assembly) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database %q: %w", path, err)
	}
	defer db.Close()

	return w.WriteDB(db, a)
}

// WriteDB writes the dataset in a single transaction.
func (w *SQLiteWriter) WriteDB(db *sql.DB, a *models.Assembly) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO constituencies
		(position, sequence, constituency_no, constituency, name, party, alliance, remarks, district)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range a.Records {
		var no sql.NullInt64
		if rec.ConstituencyNo != nil {
			no = sql.NullInt64{Int64: int64(*rec.ConstituencyNo), Valid: true}
		}
		if _, err := stmt.Exec(i+1, rec.Sequence, no, rec.Constituency, rec.Name, rec.Party, rec.Alliance, rec.Remarks, rec.District); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i+1, err)
		}
	}

	if err := insertList(tx, "districts", a.Districts); err != nil {
		return err
	}
	if err := insertList(tx, "parties", a.Parties); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func insertList(tx *sql.Tx, table string, values []string) error {
	for i, v := range values {
		if _, err := tx.Exec(fmt.Sprintf("INSERT INTO %s (position, name) VALUES (?, ?)", table), i+1, v); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}
