// Package backup writes and reads full snapshots of the tracker data as JSON.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/existflow/classtrack/internal/model"
	"github.com/google/uuid"
)

// Version of the snapshot format
const Version = 1

// Snapshot is a point-in-time copy of both collections
type Snapshot struct {
	ID          string             `json:"id"`
	Version     int                `json:"version"`
	CreatedAt   time.Time          `json:"createdAt"`
	Courses     []model.Course     `json:"courses"`
	Assignments []model.Assignment `json:"assignments"`
}

// New stamps a snapshot of the given collections
func New(courses []model.Course, assignments []model.Assignment) Snapshot {
	if courses == nil {
		courses = []model.Course{}
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	return Snapshot{
		ID:          uuid.New().String(),
		Version:     Version,
		CreatedAt:   time.Now(),
		Courses:     courses,
		Assignments: assignments,
	}
}

// Export writes the snapshot to path, creating parent directories
func Export(path string, s Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Import reads a snapshot written by Export
func Import(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if s.Version > Version {
		return Snapshot{}, fmt.Errorf("snapshot version %d is newer than supported version %d", s.Version, Version)
	}
	if _, err := uuid.Parse(s.ID); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot has an invalid id %q: %w", s.ID, err)
	}
	return s, nil
}

// DefaultPath names a snapshot file under dir by its creation time
func DefaultPath(dir string, at time.Time) string {
	return filepath.Join(dir, "backups", "classtrack-"+at.Format("20060102-150405")+".json")
}
