// Package file persists the seen-alert set as a JSON list on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dlawton/chimeclock/internal/weather"
)

var _ weather.AlertStore = (*Store)(nil)

type Store struct {
	Path string
}

func New(path string) *Store {
	return &Store{Path: path}
}

// Load reads the stored set. A missing file is a normal first run and yields
// an empty set with no error; an unreadable or corrupt file yields an empty
// set plus the error for the caller to log.
func (s *Store) Load(ctx context.Context) ([]weather.Alert, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	var alerts []weather.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return alerts, nil
}

// Save rewrites the set atomically: temp file in the same directory, then
// rename, so a crash mid-write leaves the old set intact.
func (s *Store) Save(ctx context.Context, alerts []weather.Alert) error {
	if alerts == nil {
		alerts = []weather.Alert{}
	}
	data, err := json.MarshalIndent(alerts, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".alerts-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
