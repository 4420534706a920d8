package kvstore

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

var _ port.KeyValueStore = (*DB)(nil)

// DB is the persistent key-value store backing the state stores: opaque
// string keys, JSON blob values, synchronous access.
type DB struct {
	db *leveldb.DB
}

// Open opens (or creates) the file-backed store at path.
func Open(path string) (DB, error) {
	const op = "kvstore.Open"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return DB{}, fmt.Errorf("%s: %w", op, err)
	}
	slog.Info("key-value store is open", "op", op, "path", path)
	return DB{db}, nil
}

// OpenMemory opens a store backed by volatile in-memory storage.
func OpenMemory() DB {
	db, _ := leveldb.Open(storage.NewMemStorage(), nil)
	return DB{db}
}

func (s DB) Load(key string) ([]byte, error) {
	const op = "DB.Load"

	data, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, fmt.Errorf("%s: %q: %w", op, key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %q: %w", op, key, err)
	}
	return data, nil
}

func (s DB) Store(key string, value []byte) error {
	const op = "DB.Store"

	if err := s.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("%s: %q: %w", op, key, err)
	}
	return nil
}

func (s DB) Delete(key string) error {
	const op = "DB.Delete"

	if err := s.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("%s: %q: %w", op, key, err)
	}
	return nil
}

func (s DB) Close() {
	const op = "DB.Close"
	log := slog.With("op", op)

	log.Info("closing key-value store...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("key-value store is closed")
}
