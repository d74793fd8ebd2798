package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/log"
)

// JSONFile stores expenses as a single JSON object:
//
//	{"coffee": [3.5, 4.0], "rent": [1200.0]}
//
// Key order in the file follows store order, and is restored in that order.
type JSONFile struct {
	path string
	log  *log.Logger
}

// Path returns the data file location.
func (f *JSONFile) Path() string { return f.path }

// Kind returns KindJSON.
func (f *JSONFile) Kind() Kind { return KindJSON }

// Load reads the file into a new store.
func (f *JSONFile) Load() (*expense.Store, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.log.Debug("no data file", "path", f.path)
			return expense.NewStore(), false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", f.path, err)
	}

	s, err := decodeJSON(f.path, data)
	if err != nil {
		return nil, true, err
	}
	f.log.Info("loaded expenses", "path", f.path, "backend", KindJSON,
		"descriptions", s.Len(), "amounts", countAmounts(s))
	return s, true, nil
}

// Save writes the whole store, replacing any existing file.
func (f *JSONFile) Save(s *expense.Store) error {
	data, err := encodeJSON(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	f.log.Info("saved expenses", "path", f.path, "backend", KindJSON,
		"descriptions", s.Len(), "amounts", countAmounts(s))
	return nil
}

// encodeJSON writes keys in store order; encoding/json would sort map keys.
func encodeJSON(s *expense.Store) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range s.Descriptions() {
		amounts, _ := s.Amounts(d)
		key, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", d, err)
		}
		vals, err := json.Marshal(amounts)
		if err != nil {
			return nil, fmt.Errorf("encoding amounts for %q: %w", d, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(vals)
	}
	buf.WriteByte('}')
	return pretty.Pretty(buf.Bytes()), nil
}

func decodeJSON(path string, data []byte) (*expense.Store, error) {
	if !gjson.ValidBytes(data) {
		return nil, corrupt(path, "not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, corrupt(path, "expected a JSON object at the top level")
	}

	s := expense.NewStore()
	var decodeErr error
	doc.ForEach(func(key, value gjson.Result) bool {
		desc := key.String()
		if !value.IsArray() {
			decodeErr = corrupt(path, "%q: expected an array of amounts", desc)
			return false
		}
		var amounts []float64
		for _, v := range value.Array() {
			if v.Type != gjson.Number {
				decodeErr = corrupt(path, "%q: amount %s is not a number", desc, v.Raw)
				return false
			}
			amounts = append(amounts, v.Float())
		}
		// Keys that normalize to the same description are merged in file order.
		prev, _ := s.Amounts(desc)
		if err := s.Set(desc, append(prev, amounts...)); err != nil {
			decodeErr = corrupt(path, "%v", err)
			return false
		}
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return s, nil
}
