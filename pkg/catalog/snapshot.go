package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DefaultSnapshotTTL determines how long a catalog snapshot is used before refetching
const DefaultSnapshotTTL = 12 * time.Hour

// snapshotEntry represents the disk data format
type snapshotEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Lectures  []Lecture `json:"lectures"`
}

// Snapshot stores the merged catalog on disk so a fresh process can skip the network.
type Snapshot struct {
	path string
	ttl  time.Duration
}

// NewSnapshot places the snapshot for catalogURL under ~/.timetabler_cache.
func NewSnapshot(catalogURL string, ttl time.Duration) (*Snapshot, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".timetabler_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create cache directory: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}

	// One file per catalog host, named by a stable hash of the URL
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte(catalogURL)).String() + ".json"
	return &Snapshot{path: filepath.Join(cacheDir, name), ttl: ttl}, nil
}

// Path returns the snapshot file location.
func (s *Snapshot) Path() string {
	return s.path
}

// Read returns the stored catalog if a valid, unexpired snapshot exists
func (s *Snapshot) Read() ([]Lecture, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	var entry snapshotEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Since(entry.Timestamp) > s.ttl {
		return nil, false
	}

	return entry.Lectures, true
}

// Write saves the catalog to disk
func (s *Snapshot) Write(lectures []Lecture) error {
	entry := snapshotEntry{
		Timestamp: time.Now(),
		Lectures:  lectures,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}
