// Package store persists one fiberplant project (network elements,
// trays, splice records) as a JSON snapshot on local disk. Writes go to
// a temporary file first and land with an atomic rename; an optional
// snappy layer keeps large projects small.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/snappy"

	"github.com/dd0wney/fiberplant/pkg/netgraph"
	"github.com/dd0wney/fiberplant/pkg/splice"
)

const (
	snapshotFile           = "project.json"
	compressedSnapshotFile = "project.json.sz"
)

// Project is the persisted shape of one documentation project.
type Project struct {
	Name     string              `json:"name"`
	Elements []*netgraph.Element `json:"elements"`
	Trays    []*netgraph.Tray    `json:"trays"`
	Splices  []*splice.Splice    `json:"splices"`
	SavedAt  int64               `json:"savedAt"`
}

// Config controls snapshot persistence.
type Config struct {
	// EnableCompression snappy-compresses snapshots on disk.
	EnableCompression bool
}

// Store reads and writes project snapshots under one directory.
type Store struct {
	dir      string
	compress bool
}

// Open prepares a snapshot store in dir, creating it if needed.
func Open(dir string, cfg Config) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir, compress: cfg.EnableCompression}, nil
}

// Save writes the project snapshot atomically: marshal, write to a
// temporary file, rename into place.
func (s *Store) Save(p *Project) error {
	p.SavedAt = time.Now().Unix()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if s.compress {
		data = snappy.Encode(nil, data)
	}

	path := s.snapshotPath()
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename snapshot: %w", err)
	}
	return nil
}

// Load reads the project snapshot. A missing snapshot is a fresh
// project, not an error.
func (s *Store) Load() (*Project, error) {
	data, err := os.ReadFile(s.snapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Project{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if s.compress {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
		}
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &p, nil
}

// SaveFrom captures the live stores into a snapshot and writes it.
func (s *Store) SaveFrom(name string, g *netgraph.Graph, splices *splice.Store) error {
	return s.Save(&Project{
		Name:     name,
		Elements: g.Elements(),
		Trays:    g.Trays(),
		Splices:  splices.All(),
	})
}

// RestoreTo loads the snapshot into the given stores, replacing their
// contents. The graph re-validates the persisted hierarchy; the splice
// store re-validates pair uniqueness.
func (s *Store) RestoreTo(g *netgraph.Graph, splices *splice.Store) (*Project, error) {
	p, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := g.Restore(p.Elements, p.Trays); err != nil {
		return nil, fmt.Errorf("snapshot hierarchy invalid: %w", err)
	}
	if err := splices.Restore(p.Splices); err != nil {
		return nil, fmt.Errorf("snapshot splices invalid: %w", err)
	}
	return p, nil
}

func (s *Store) snapshotPath() string {
	if s.compress {
		return filepath.Join(s.dir, compressedSnapshotFile)
	}
	return filepath.Join(s.dir, snapshotFile)
}
