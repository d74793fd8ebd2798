package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/log"
)

// SQLiteFile stores one row per amount. Rows are written in store order, so
// reading them back by id restores both description and amount order.
type SQLiteFile struct {
	path string
	log  *log.Logger
}

// Path returns the database location.
func (f *SQLiteFile) Path() string { return f.path }

// Kind returns KindSQLite.
func (f *SQLiteFile) Kind() Kind { return KindSQLite }

// Load reads every stored amount into a new store.
func (f *SQLiteFile) Load() (*expense.Store, bool, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.log.Debug("no database file", "path", f.path)
			return expense.NewStore(), false, nil
		}
		return nil, false, fmt.Errorf("checking %s: %w", f.path, err)
	}
	// An empty file holds no data; opening it would write the schema.
	if info.Size() == 0 {
		f.log.Debug("empty database file", "path", f.path)
		return expense.NewStore(), false, nil
	}

	db, err := f.open()
	if err != nil {
		return nil, true, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query("SELECT description, amount FROM expenses ORDER BY id")
	if err != nil {
		return nil, true, fmt.Errorf("querying expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var order []string
	byDesc := make(map[string][]float64)
	for rows.Next() {
		var desc string
		var amount float64
		if err := rows.Scan(&desc, &amount); err != nil {
			return nil, true, fmt.Errorf("scanning expense: %w", err)
		}
		if _, ok := byDesc[desc]; !ok {
			order = append(order, desc)
		}
		byDesc[desc] = append(byDesc[desc], amount)
	}
	if err := rows.Err(); err != nil {
		return nil, true, fmt.Errorf("reading expenses: %w", err)
	}

	s := expense.NewStore()
	for _, d := range order {
		if err := s.Set(d, byDesc[d]); err != nil {
			return nil, true, corrupt(f.path, "%v", err)
		}
	}

	f.log.Info("loaded expenses", "path", f.path, "backend", KindSQLite,
		"descriptions", s.Len(), "amounts", countAmounts(s))
	return s, true, nil
}

// Save replaces the table contents with s in a single transaction.
func (f *SQLiteFile) Save(s *expense.Store) error {
	db, err := f.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM expenses"); err != nil {
		return fmt.Errorf("clearing expenses: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO expenses (description, amount) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, d := range s.Descriptions() {
		amounts, _ := s.Amounts(d)
		for _, a := range amounts {
			if _, err := stmt.Exec(d, a); err != nil {
				return fmt.Errorf("inserting %q: %w", d, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing expenses: %w", err)
	}
	f.log.Info("saved expenses", "path", f.path, "backend", KindSQLite,
		"descriptions", s.Len(), "amounts", countAmounts(s))
	return nil
}

// open opens or creates the database and makes sure the schema exists.
func (f *SQLiteFile) open() (*sql.DB, error) {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", f.path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.path, err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		if isNotADatabase(err) {
			return nil, corrupt(f.path, "not a SQLite database")
		}
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

func isNotADatabase(err error) bool {
	var target interface{ Code() int }
	if errors.As(err, &target) && target.Code() == 26 { // SQLITE_NOTADB
		return true
	}
	return strings.Contains(err.Error(), "not a database")
}
