// Package bolt provides a bbolt-backed session storage that survives restarts.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/target/storefront-client/internal/errors"
	bbolt "go.etcd.io/bbolt"
)

// Storage keeps session keys in one bucket of a bbolt file.
type Storage struct {
	db     *bbolt.DB
	bucket []byte
}

// Options configures OpenStorage.
type Options struct {
	Bucket string
	// Timeout bounds waiting for the file lock held by another process.
	Timeout time.Duration
}

// NewStorage wraps an open database. The bucket is created if missing.
func NewStorage(db *bbolt.DB, bucket string) (*Storage, error) {
	if bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	s := &Storage{db: db, bucket: []byte(bucket)}
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
	}
	return s, nil
}

// OpenStorage opens (or creates) the bbolt file at path.
func OpenStorage(path string, opts Options) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: opts.Timeout})
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	s, err := NewStorage(db, opts.Bucket)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close bbolt db: %w", cerr))
		}
		return nil, err
	}
	return s, nil
}

// Close closes the underlying bbolt database.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) GetItem(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var value string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return apperrors.NotFoundf("bucket %q not found", s.bucket)
		}
		data := b.Get([]byte(key))
		if data == nil {
			return apperrors.NotFoundf("storage key %q not found", key)
		}
		// data is only valid inside the transaction.
		value = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("storage key cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}
