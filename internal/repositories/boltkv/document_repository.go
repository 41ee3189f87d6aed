// Package boltkv persists the AppData document as a single JSON blob under a
// fixed key in an embedded bbolt key/value store.
package boltkv

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	portsrepo "github.com/xaysimo/xaysimo/internal/core/ports/repositories"
)

var (
	bucketName  = []byte("erp")
	documentKey = []byte("master_db")
)

// documentRepository implements ports DocumentRepository over bbolt.
type documentRepository struct {
	db *bolt.DB
}

// NewDocumentRepository opens (or creates) the bbolt file at path.
func NewDocumentRepository(path string) (portsrepo.DocumentRepository, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store at %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, berr := tx.CreateBucketIfNotExists(bucketName)
		return berr
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create document bucket: %w", err)
	}
	return &documentRepository{db: db}, nil
}

var _ portsrepo.DocumentRepository = (*documentRepository)(nil)

// Load reads and decodes the stored document.
func (r *documentRepository) Load(_ context.Context) (*domain.AppData, error) {
	var raw []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get(documentKey); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read local store: %w", err)
	}
	if raw == nil {
		return nil, apperrors.ErrNotFound
	}

	var data domain.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode stored document: %w", err)
	}
	return &data, nil
}

// Save encodes and writes the document under the fixed key.
func (r *documentRepository) Save(_ context.Context, data *domain.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(documentKey, raw)
	})
	if err != nil {
		return fmt.Errorf("failed to write local store: %w", err)
	}
	return nil
}

// Close closes the underlying bbolt database.
func (r *documentRepository) Close() error {
	return r.db.Close()
}
