package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"go.etcd.io/bbolt"
)

var boltBucket = []byte("classtrack")

// BoltBackend keeps every key in a single bbolt bucket
type BoltBackend struct {
	db *bbolt.DB
}

// OpenBolt opens or creates the bbolt file at path
func OpenBolt(path string) (*BoltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", boltError(err))
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", boltError(err))
	}

	return &BoltBackend{db: db}, nil
}

// Get returns a copy of the value stored under key
func (b *BoltBackend) Get(key string) ([]byte, bool, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, boltError(err)
	}
	return out, out != nil, nil
}

// Put stores value under key
func (b *BoltBackend) Put(key string, value []byte) error {
	return boltError(b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), value)
	}))
}

// Delete removes key
func (b *BoltBackend) Delete(key string) error {
	return boltError(b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(key))
	}))
}

// Usage sums the stored value sizes
func (b *BoltBackend) Usage(exclude string) (int64, error) {
	var used int64
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).ForEach(func(k, v []byte) error {
			if string(k) != exclude {
				used += int64(len(v))
			}
			return nil
		})
	})
	return used, boltError(err)
}

// Close closes the database file
func (b *BoltBackend) Close() error {
	return b.db.Close()
}

func boltError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bbolt.ErrDatabaseNotOpen),
		errors.Is(err, bbolt.ErrDatabaseReadOnly),
		errors.Is(err, bbolt.ErrTimeout),
		errors.Is(err, syscall.EACCES),
		errors.Is(err, syscall.EROFS):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case errors.Is(err, bbolt.ErrValueTooLarge),
		errors.Is(err, syscall.ENOSPC):
		return fmt.Errorf("%w: %v", ErrFull, err)
	}
	return err
}
