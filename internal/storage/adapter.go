package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"planner/internal/kv"
)

// Adapter owns the JSON codec and the key namespace on top of a kv.Store.
type Adapter struct {
	store kv.Store
	log   *zap.Logger
}

func NewAdapter(store kv.Store, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{store: store, log: log}
}

// LoadRaw returns the stored text under key.
func (a *Adapter) LoadRaw(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := a.store.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return v, ok, nil
}

// Load decodes the JSON object stored under key into v. It reports found=false
// for an absent key and a *DecodeError when the text is not an object of v's shape.
func (a *Adapter) Load(ctx context.Context, key string, v any) (bool, error) {
	text, ok, err := a.LoadRaw(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := DecodeObject(key, text, v); err != nil {
		return true, err
	}
	return true, nil
}

// DecodeObject decodes text into v, rejecting anything that is not a JSON object
// (null, primitives, arrays).
func DecodeObject(key, text string, v any) error {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &DecodeError{Key: key, Err: errors.New("not a JSON object")}
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return &DecodeError{Key: key, Err: err}
	}
	return nil
}

// Encode returns the stored form of v.
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return string(data), nil
}

// Save encodes v and writes it under key. Encoding happens before any write.
func (a *Adapter) Save(ctx context.Context, key string, v any) error {
	text, err := Encode(v)
	if err != nil {
		return err
	}
	return a.SaveRaw(ctx, key, text)
}

func (a *Adapter) SaveRaw(ctx context.Context, key, text string) error {
	if err := a.store.Set(ctx, key, text); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

// SaveMany writes already-encoded entries atomically.
func (a *Adapter) SaveMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	if err := a.store.SetMany(ctx, entries); err != nil {
		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		return &WriteError{Key: strings.Join(keys, ","), Err: err}
	}
	return nil
}

func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.store.Remove(ctx, key); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

// KeysWithPrefix returns every stored key starting with prefix, ascending.
func (a *Adapter) KeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	all, err := a.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	var out []string
	for _, k := range all {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

// ClearNamespace removes every key owned by the planner.
func (a *Adapter) ClearNamespace(ctx context.Context) error {
	keys, err := a.KeysWithPrefix(ctx, Namespace)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := a.Remove(ctx, k); err != nil {
			return err
		}
	}
	a.log.Info("cleared storage namespace", zap.Int("keys", len(keys)))
	return nil
}

// loadOr reads the object under key. Absent keys and decode failures yield
// def(); decode failures are logged.
func loadOr[T any](ctx context.Context, a *Adapter, key string, def func() T) (T, error) {
	var v T
	found, err := a.Load(ctx, key, &v)
	var de *DecodeError
	switch {
	case errors.As(err, &de):
		a.log.Warn("stored value did not decode, using default", zap.String("key", key), zap.Error(de.Err))
		return def(), nil
	case err != nil:
		return def(), err
	case !found:
		return def(), nil
	}
	return v, nil
}
