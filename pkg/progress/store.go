package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when no record has been saved yet.
var ErrNotFound = errors.New("progress: no saved record")

// Store persists a single progression record.
type Store interface {
	// Load retrieves the saved record. Returns ErrNotFound when
	// nothing has been saved yet.
	Load(ctx context.Context) (*Record, error)

	// Save persists the record, replacing any previous one.
	Save(ctx context.Context, rec *Record) error

	// Delete removes the saved record. No error if absent.
	Delete(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

// recordKey is the single key the trainer stores its record under.
var recordKey = []byte("progress")

// BadgerStore persists the record in a BadgerDB directory.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a BadgerDB store in dir. An empty
// dir runs badger in memory, which is useful in tests.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nopLogger{})
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("progress: open store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Load(_ context.Context) (*Record, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("progress: load record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("progress: decode record: %w", err)
	}
	return &rec, nil
}

func (s *BadgerStore) Save(_ context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("progress: encode record: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey, data)
	})
	if err != nil {
		return fmt.Errorf("progress: save record: %w", err)
	}
	return nil
}

func (s *BadgerStore) Delete(_ context.Context) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(recordKey)
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("progress: delete record: %w", err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// nopLogger silences badger's internal logging.
type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{})   {}
func (nopLogger) Warningf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Debugf(string, ...interface{})   {}

// MemStore keeps the record in memory. Test use only.
type MemStore struct {
	mu  sync.Mutex
	rec *Record

	// SaveErr, when set, is returned by Save to simulate failures.
	SaveErr error
	// Saves counts successful Save calls.
	Saves int
}

func (s *MemStore) Load(_ context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return nil, ErrNotFound
	}
	return s.rec.clone(), nil
}

func (s *MemStore) Save(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.rec = rec.clone()
	s.Saves++
	return nil
}

func (s *MemStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}

func (s *MemStore) Close() error { return nil }
