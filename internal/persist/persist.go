// Package persist loads and saves the whole expense store to disk.
package persist

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/log"
)

// ErrCorrupt means the data file exists but cannot be read back as expenses.
var ErrCorrupt = errors.New("persisted file is corrupt")

// Kind names a storage backend.
type Kind string

// Supported backends.
const (
	KindJSON   Kind = "json"
	KindSQLite Kind = "sqlite"
)

// Backend reads and writes a complete store.
type Backend interface {
	// Load returns the persisted store. found is false, with an empty store and
	// nil error, when the file does not exist yet.
	Load() (store *expense.Store, found bool, err error)
	// Save overwrites the file with the full contents of s.
	Save(s *expense.Store) error
	Path() string
	Kind() Kind
}

// ParseKind validates a backend name. An empty name is allowed and means
// "infer from the file extension".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", KindJSON, KindSQLite:
		return k, nil
	}
	return "", fmt.Errorf("unknown storage backend %q (want json or sqlite)", s)
}

// InferKind picks a backend from the path's extension.
func InferKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	}
	return KindJSON
}

// Open returns the backend for kind at path. A nil logger discards output.
func Open(kind Kind, path string, logger *log.Logger) (Backend, error) {
	if path == "" {
		return nil, errors.New("no data file configured")
	}
	if logger == nil {
		logger = log.Discard()
	}
	if kind == "" {
		kind = InferKind(path)
	}
	logger = logger.WithComponent("persist")

	switch kind {
	case KindJSON:
		return &JSONFile{path: path, log: logger}, nil
	case KindSQLite:
		return &SQLiteFile{path: path, log: logger}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", kind)
}

func corrupt(path string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrCorrupt, path, fmt.Sprintf(format, args...))
}

func countAmounts(s *expense.Store) int {
	sum, _ := s.List()
	return sum.Count()
}
