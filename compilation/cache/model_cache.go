// Package cache persists assembled compilation models between runs, so that unchanged build artifacts do not force
// downstream consumers to re-derive anything from the model.
package cache

import (
	"time"

	"github.com/fxamacker/cbor"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/solarium-dev/solarium/compilation"
	"github.com/solarium-dev/solarium/utils"
)

// DefaultCacheFileName is the file name used for the model cache database within a cache directory.
const DefaultCacheFileName = "model-cache.db"

// modelsBucket is the bolt bucket storing exported sessions keyed by artifact hash.
var modelsBucket = []byte("models")

// ModelCache is a persistent store of exported compilation sessions keyed by their artifact hash. Entries are
// CBOR-encoded and kept in a single bolt database file.
type ModelCache struct {
	// db describes the underlying bolt database handle.
	db *bolt.DB
}

// Open opens (or creates) a model cache database at the provided file path, creating parent directories as needed.
// Returns the cache, or an error if one occurs.
func Open(path string) (*ModelCache, error) {
	// Ensure the parent directory exists before bolt tries to create the file.
	if err := utils.MakeDirectoryForFile(path); err != nil {
		return nil, err
	}

	// A short timeout avoids hanging forever on a database locked by another process.
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Create the models bucket if this is a fresh database.
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(modelsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.WithStack(err)
	}

	return &ModelCache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *ModelCache) Close() error {
	return errors.WithStack(c.db.Close())
}

// Get returns the exported session stored under the provided artifact hash, a boolean indicating whether one was
// found, and an error if one occurs.
func (c *ModelCache) Get(artifactHash string) (*compilation.ExportedSession, bool, error) {
	var data []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		if stored := tx.Bucket(modelsBucket).Get([]byte(artifactHash)); stored != nil {
			// Copy out of the transaction, as bolt memory is only valid within it.
			data = append([]byte(nil), stored...)
		}
		return nil
	})
	if err != nil {
		return nil, false, errors.WithStack(err)
	}
	if data == nil {
		return nil, false, nil
	}

	var exported compilation.ExportedSession
	if err := cbor.Unmarshal(data, &exported); err != nil {
		return nil, false, errors.WithStack(err)
	}
	return &exported, true, nil
}

// Put stores the provided exported session under the given artifact hash, replacing any previous entry.
func (c *ModelCache) Put(artifactHash string, exported *compilation.ExportedSession) error {
	data, err := cbor.Marshal(exported, cbor.EncOptions{})
	if err != nil {
		return errors.WithStack(err)
	}
	err = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(modelsBucket).Put([]byte(artifactHash), data)
	})
	return errors.WithStack(err)
}

// Has returns a boolean indicating whether an entry exists for the provided artifact hash.
func (c *ModelCache) Has(artifactHash string) (bool, error) {
	found := false
	err := c.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(modelsBucket).Get([]byte(artifactHash)) != nil
		return nil
	})
	return found, errors.WithStack(err)
}
