// Package storage persists named JSON blobs in a local key-value store.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/existflow/classtrack/internal/config"
	"github.com/existflow/classtrack/internal/logger"
)

// Keys of the two persisted collections
const (
	KeyCourses     = "classtrack_courses"
	KeyAssignments = "classtrack_assignments"
)

// Backend is a raw byte store. Implementations tag capacity failures with
// ErrFull and closed/locked/read-only stores with ErrUnavailable.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	// Usage returns the bytes held by every key except exclude
	Usage(exclude string) (int64, error)
	Close() error
}

// Gateway serializes values to JSON and writes them synchronously
type Gateway struct {
	backend Backend
	quota   int64
}

// NewGateway wraps a backend. quota caps the total bytes stored across all
// keys; zero disables it.
func NewGateway(backend Backend, quota int64) *Gateway {
	return &Gateway{backend: backend, quota: quota}
}

// Open opens the backend named in cfg
func Open(cfg config.StorageConfig) (*Gateway, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Driver {
	case config.DriverSQLite, "":
		backend, err = OpenSQLite(cfg.Path)
	case config.DriverBolt:
		backend, err = OpenBolt(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("Storage opened", logger.F("driver", cfg.Driver), logger.F("path", cfg.Path))
	return NewGateway(backend, cfg.QuotaBytes), nil
}

// Save writes value under key. Failures come back as *Error.
func (g *Gateway) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &Error{Kind: KindOther, Key: key, Err: err}
	}

	if g.quota > 0 {
		used, err := g.backend.Usage(key)
		if err != nil {
			return classify(key, err)
		}
		if used+int64(len(data)) > g.quota {
			logger.Warn("Storage quota exceeded",
				logger.F("key", key),
				logger.F("used", used),
				logger.F("size", len(data)),
				logger.F("quota", g.quota))
			return &Error{Kind: KindQuotaExceeded, Key: key, Err: ErrFull}
		}
	}

	if err := g.backend.Put(key, data); err != nil {
		logger.Error("Storage write failed", logger.F("key", key), logger.F("error", err))
		return classify(key, err)
	}
	return nil
}

// Load decodes the value under key into out. It returns false when the key is
// absent or unreadable; read and parse failures are logged, never returned.
func (g *Gateway) Load(key string, out any) bool {
	data, ok, err := g.backend.Get(key)
	if err != nil {
		logger.Error("Error reading from storage", logger.F("key", key), logger.F("error", err))
		return false
	}
	if !ok || len(data) == 0 {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		logger.Error("Error loading from storage", logger.F("key", key), logger.F("error", err))
		return false
	}
	return true
}

// Clear removes key
func (g *Gateway) Clear(key string) error {
	if err := g.backend.Delete(key); err != nil {
		return classify(key, err)
	}
	return nil
}

// Close releases the backend
func (g *Gateway) Close() error {
	return g.backend.Close()
}
