package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/raykavin/machart/pkg/core"
	"github.com/tidwall/buntdb"
)

const keyPrefix = "series:"

// BuntCache keeps generated price series by scenario key using BuntDB
type BuntCache struct {
	mu sync.Mutex
	db *buntdb.DB
}

// FromMemory creates an in-memory cache
func FromMemory() (*BuntCache, error) {
	return NewBuntCache(":memory:")
}

// FromFile creates a file-based cache
func FromFile(file string) (*BuntCache, error) {
	return NewBuntCache(file)
}

// NewBuntCache creates a new BuntDB cache instance
func NewBuntCache(sourceFile string) (*BuntCache, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	return &BuntCache{
		db: db,
	}, nil
}

// Get returns the cached series for key. ok is false when nothing is stored.
func (b *BuntCache) Get(key string) (core.Series[float64], bool, error) {
	var content string
	err := b.db.View(func(tx *buntdb.Tx) error {
		var err error
		content, err = tx.Get(keyPrefix + key)
		return err
	})

	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read series %s: %w", key, err)
	}

	var series core.Series[float64]
	if err := json.Unmarshal([]byte(content), &series); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal series %s: %w", key, err)
	}

	return series, true, nil
}

// Put stores the series under key, replacing any previous value
func (b *BuntCache) Put(key string, series core.Series[float64]) error {
	content, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to marshal series %s: %w", key, err)
	}

	return b.db.Update(func(tx *buntdb.Tx) error {
		if _, _, err := tx.Set(keyPrefix+key, string(content), nil); err != nil {
			return fmt.Errorf("failed to store series %s: %w", key, err)
		}
		return nil
	})
}

// GetOrCompute returns the cached series for key, computing and storing it
// on the first request only
func (b *BuntCache) GetOrCompute(key string, compute func() (core.Series[float64], error)) (core.Series[float64], error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	series, ok, err := b.Get(key)
	if err != nil {
		return nil, err
	}
	if ok {
		return series, nil
	}

	series, err = compute()
	if err != nil {
		return nil, err
	}

	if err := b.Put(key, series); err != nil {
		return nil, err
	}

	return series, nil
}

// Invalidate drops the series stored under key
func (b *BuntCache) Invalidate(key string) error {
	err := b.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(keyPrefix + key)
		return err
	})

	if err != nil && !errors.Is(err, buntdb.ErrNotFound) {
		return fmt.Errorf("failed to invalidate series %s: %w", key, err)
	}
	return nil
}

// InvalidateAll drops every cached series, for example after a resize
func (b *BuntCache) InvalidateAll() error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		keys := make([]string, 0)
		err := tx.AscendKeys(keyPrefix+"*", func(key, _ string) bool {
			keys = append(keys, key)
			return true
		})
		if err != nil {
			return fmt.Errorf("failed to iterate over series: %w", err)
		}

		for _, key := range keys {
			if _, err := tx.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		return nil
	})
}

// Keys returns the stored scenario keys in ascending order
func (b *BuntCache) Keys() ([]string, error) {
	keys := make([]string, 0)
	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(keyPrefix+"*", func(key, _ string) bool {
			keys = append(keys, key[len(keyPrefix):])
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	return keys, nil
}

// Close closes the database connection
func (b *BuntCache) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
