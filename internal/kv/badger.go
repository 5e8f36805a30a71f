package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// BadgerConfig holds configuration for a BadgerStore.
type BadgerConfig struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool

	// Capacity is the byte ceiling. 0 disables it.
	Capacity int64

	// Logger receives badger's internal logging. Nil silences it.
	Logger *zap.Logger
}

// BadgerStore is a Store over an embedded BadgerDB.
type BadgerStore struct {
	db       *badger.DB
	capacity int64
}

// badgerLogger adapts zap to badger's Logger interface.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.s.Debugf(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.s.Debugf(format, args...) }

// OpenBadger opens a BadgerStore, creating the directory if needed.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent badger store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create badger dir %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{s: cfg.Logger.Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db, capacity: cfg.Capacity}, nil
}

func (s *BadgerStore) Get(_ context.Context, key string) (string, bool, error) {
	var (
		out   []byte
		found bool
	)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return "", false, fmt.Errorf("kv get: %w", err)
	}
	return string(out), found, nil
}

func (s *BadgerStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *BadgerStore) SetMany(_ context.Context, entries map[string]string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if s.capacity > 0 {
			used, current, err := s.usage(txn, entries)
			if err != nil {
				return err
			}
			if !fits(s.capacity, used, current, entries) {
				return ErrQuotaExceeded
			}
		}
		for k, v := range entries {
			if err := txn.Set([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrQuotaExceeded) {
		return err
	}
	if err != nil {
		return fmt.Errorf("kv set: %w", err)
	}
	return nil
}

func (s *BadgerStore) usage(txn *badger.Txn, entries map[string]string) (int64, map[string]int64, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var used int64
	current := map[string]int64{}
	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		k := string(item.KeyCopy(nil))
		n := int64(len(k)) + item.ValueSize()
		used += n
		if _, ok := entries[k]; ok {
			current[k] = n
		}
	}
	return used, current, nil
}

func (s *BadgerStore) Remove(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("kv remove: %w", err)
	}
	return nil
}

func (s *BadgerStore) Keys(_ context.Context) ([]string, error) {
	var out []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			out = append(out, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("kv keys: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
