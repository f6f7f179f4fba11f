// Package storage provides SQLite-backed persistence for collected race results.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"blitzboat/backend-go/internal/models"
)

// Storage wraps a SQLite database holding the race-result history the venue
// statistics are rebuilt from.
type Storage struct {
	db *sql.DB
}

// New opens or creates the SQLite database at dbPath.
// An empty dbPath defaults to $TMPDIR/blitzboat/results.db.
func New(dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = filepath.Join(os.TempDir(), "blitzboat", "results.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer; WAL allows concurrent readers
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	s := &Storage{db: db}
	if err := s.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			venue        TEXT NOT NULL,
			date         TEXT NOT NULL,
			race_no      INTEGER NOT NULL,
			trifecta     TEXT NOT NULL,
			winning_boat INTEGER NOT NULL,
			kimarite     TEXT NOT NULL,
			PRIMARY KEY (venue, date, race_no)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_date ON results(date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// AddResults upserts a batch of results in one transaction. Re-collecting a
// day overwrites what was stored before.
func (s *Storage) AddResults(results []models.RaceResult) error {
	if len(results) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO results
			(venue, date, race_no, trifecta, winning_boat, kimarite)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		if r.Venue == "" || r.Date == "" || r.RaceNo == 0 {
			continue
		}
		if _, err := stmt.Exec(r.Venue, r.Date, r.RaceNo, r.Trifecta, r.WinningBoat, r.Kimarite); err != nil {
			return fmt.Errorf("failed to insert result %s/%s/%d: %w", r.Venue, r.Date, r.RaceNo, err)
		}
	}
	return tx.Commit()
}

// AllResults returns every stored result ordered by date, venue, race.
func (s *Storage) AllResults() ([]models.RaceResult, error) {
	rows, err := s.db.Query(`
		SELECT venue, date, race_no, trifecta, winning_boat, kimarite
		FROM results ORDER BY date, venue, race_no`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []models.RaceResult
	for rows.Next() {
		var r models.RaceResult
		if err := rows.Scan(&r.Venue, &r.Date, &r.RaceNo, &r.Trifecta, &r.WinningBoat, &r.Kimarite); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	if results == nil {
		results = []models.RaceResult{}
	}
	return results, rows.Err()
}

// CountResults returns the number of stored results and the number of
// distinct collected days.
func (s *Storage) CountResults() (total, days int, err error) {
	row := s.db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT date) FROM results`)
	if err := row.Scan(&total, &days); err != nil {
		return 0, 0, fmt.Errorf("failed to count results: %w", err)
	}
	return total, days, nil
}

// HasDate reports whether any results are stored for the given date.
func (s *Storage) HasDate(date string) (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM results WHERE date = ?`, date).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check date: %w", err)
	}
	return n > 0, nil
}
