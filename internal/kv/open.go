package kv

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Path     string
	Capacity int64
	Logger   *zap.Logger
}

// Open returns the Store named by opts.Backend. An empty backend means sqlite.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		path := opts.Path
		if path == "" {
			p, err := DefaultSQLitePath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLite(ctx, path, opts.Capacity, opts.Logger)
	case BackendBadger:
		path := opts.Path
		if path == "" {
			p, err := DefaultSQLitePath()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(filepath.Dir(p), "badger")
		}
		return OpenBadger(BadgerConfig{Path: path, Capacity: opts.Capacity, Logger: opts.Logger})
	case BackendMemory:
		return NewMemoryStore(opts.Capacity), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
