// Package store persists named deal scenarios: the full input record plus a
// snapshot of the metrics computed when the scenario was saved. Storage is a
// directory of JSON records behind an afero filesystem so tests run against
// an in-memory fs.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/tubby124/Deal-Analyzer/internal/analyzer"
)

// Scenario is one saved analysis. Metrics is a snapshot from save time;
// callers re-analyze the inputs when they need current numbers.
type Scenario struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
	Client  string    `json:"client,omitempty"`
	Notes   string    `json:"notes,omitempty"`
	SavedAt time.Time `json:"savedAt"`

	Inputs  analyzer.DealInputs  `json:"inputs"`
	Metrics analyzer.DealMetrics `json:"metrics"`
}

// Store reads and writes scenarios under a single directory.
type Store struct {
	fs  afero.Fs
	dir string
}

// New creates a store rooted at dir, creating it if needed.
func New(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scenario directory %s: %w", dir, err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

// Save persists a scenario. An empty ID gets a fresh one, and SavedAt is
// always stamped here. The stored scenario is returned.
func (s *Store) Save(sc Scenario) (Scenario, error) {
	if strings.TrimSpace(sc.Name) == "" {
		return Scenario{}, fmt.Errorf("scenario name is required")
	}
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	sc.SavedAt = time.Now().UTC()

	payload, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return Scenario{}, fmt.Errorf("encode scenario %s: %w", sc.ID, err)
	}
	if err := afero.WriteFile(s.fs, s.path(sc.ID), payload, 0o644); err != nil {
		return Scenario{}, fmt.Errorf("write scenario %s: %w", sc.ID, err)
	}
	return sc, nil
}

// Load reads one scenario by ID. Records written by older versions may lack
// fields; anything missing stays zero and the engine defaults it on re-run.
func (s *Store) Load(id string) (Scenario, error) {
	payload, err := afero.ReadFile(s.fs, s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Scenario{}, fmt.Errorf("scenario %s not found", id)
		}
		return Scenario{}, fmt.Errorf("read scenario %s: %w", id, err)
	}
	var sc Scenario
	if err := json.Unmarshal(payload, &sc); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario %s: %w", id, err)
	}
	return sc, nil
}

// List returns all scenarios, most recently saved first. Unreadable records
// are skipped rather than failing the whole listing.
func (s *Store) List() ([]Scenario, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}

	var scenarios []Scenario
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		sc, err := s.Load(id)
		if err != nil {
			continue
		}
		scenarios = append(scenarios, sc)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].SavedAt.After(scenarios[j].SavedAt)
	})
	return scenarios, nil
}

// Delete removes a scenario. Deleting a missing scenario is an error so
// callers can distinguish a stale ID.
func (s *Store) Delete(id string) error {
	path := s.path(id)
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return fmt.Errorf("delete scenario %s: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("scenario %s not found", id)
	}
	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("delete scenario %s: %w", id, err)
	}
	return nil
}

func (s *Store) path(id string) string {
	// IDs come back from clients; strip any path separators.
	return filepath.Join(s.dir, filepath.Base(id)+".json")
}
