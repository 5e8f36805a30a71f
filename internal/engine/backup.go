package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"planner/internal/storage"
)

// AutoBackup describes one rotating snapshot.
type AutoBackup struct {
	Key         string `json:"key"`
	Timestamp   int64  `json:"timestamp"`
	DisplayDate string `json:"date"`
}

// ExportAll snapshots every exported repository. It only reads.
func (s *Service) ExportAll(ctx context.Context) (storage.Bundle, error) {
	plan, err := s.plans.Get(ctx)
	if err != nil {
		return storage.Bundle{}, err
	}
	notes, err := s.notes.Get(ctx)
	if err != nil {
		return storage.Bundle{}, err
	}
	daily, err := s.progress.Get(ctx)
	if err != nil {
		return storage.Bundle{}, err
	}
	summaries, err := s.summaries.Get(ctx)
	if err != nil {
		return storage.Bundle{}, err
	}
	theme, err := s.theme.Get(ctx)
	if err != nil {
		return storage.Bundle{}, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return storage.Bundle{}, err
	}
	return storage.Bundle{
		MasterPlan:    &plan,
		UserNotes:     &notes,
		DailyProgress: &daily,
		UserSummaries: &summaries,
		Theme:         &theme,
		Settings:      &settings,
		ExportDate:    s.now().UTC().Format(storage.ExportDateLayout),
	}, nil
}

// ExportFileName is the download name for an export made at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("planner-backup-%s.json", t.UTC().Format("2006-01-02"))
}

// ExportJSON returns the indented export document.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	b, err := s.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrSerialization, err)
	}
	return data, nil
}

// ImportAll overwrites, wholesale, every repository whose field is present in
// b. Absent fields are left alone. All writes land together or not at all.
func (s *Service) ImportAll(ctx context.Context, b storage.Bundle) error {
	entries := map[string]string{}
	add := func(key string, v any) error {
		text, err := storage.Encode(v)
		if err != nil {
			return err
		}
		entries[key] = text
		return nil
	}
	if b.MasterPlan != nil {
		if err := add(storage.KeyMasterPlan, *b.MasterPlan); err != nil {
			return err
		}
	}
	if b.UserNotes != nil {
		if err := add(storage.KeyUserNotes, *b.UserNotes); err != nil {
			return err
		}
	}
	if b.DailyProgress != nil {
		if err := add(storage.KeyDailyProgress, *b.DailyProgress); err != nil {
			return err
		}
	}
	if b.UserSummaries != nil {
		if err := add(storage.KeyUserSummaries, *b.UserSummaries); err != nil {
			return err
		}
	}
	if b.Settings != nil {
		if err := add(storage.KeySettings, *b.Settings); err != nil {
			return err
		}
	}
	if b.Theme != nil && *b.Theme != "" {
		entries[storage.KeyTheme] = string(*b.Theme)
	}
	if err := s.adapter.SaveMany(ctx, entries); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	s.log.Info("imported bundle", zap.Int("entities", len(entries)))
	return nil
}

// ParseBundle decodes and checks a user-supplied document. Any problem yields
// an *ImportFormatError; the caller must not apply a partially parsed bundle.
func ParseBundle(data []byte) (storage.Bundle, error) {
	b, err := decodeBundle(data)
	if err != nil {
		return storage.Bundle{}, err
	}
	if b.MasterPlan != nil {
		if errs := b.MasterPlan.Validate(); len(errs) > 0 {
			return storage.Bundle{}, &ImportFormatError{Reason: "master plan", Err: errors.Join(errs...)}
		}
	}
	if b.Theme != nil && *b.Theme != "" && !b.Theme.IsValid() {
		return storage.Bundle{}, &ImportFormatError{Reason: fmt.Sprintf("unknown theme %q", *b.Theme)}
	}
	return b, nil
}

// decodeBundle only decodes; snapshots written by CreateAutoBackup carry
// whatever the repositories accepted and must restore as-is.
func decodeBundle(data []byte) (storage.Bundle, error) {
	var b storage.Bundle
	if err := storage.DecodeObject("bundle", string(data), &b); err != nil {
		var de *storage.DecodeError
		if errors.As(err, &de) {
			err = de.Err
		}
		return storage.Bundle{}, &ImportFormatError{Reason: "not a planner backup document", Err: err}
	}
	if b.MasterPlan == nil && b.UserNotes == nil && b.DailyProgress == nil &&
		b.UserSummaries == nil && b.Theme == nil && b.Settings == nil {
		return storage.Bundle{}, &ImportFormatError{Reason: "no planner data found"}
	}
	return b, nil
}

// CreateAutoBackup writes a timestamped snapshot and rotates old ones. It
// reports false, without returning an error, when the medium refuses.
func (s *Service) CreateAutoBackup(ctx context.Context) bool {
	b, err := s.ExportAll(ctx)
	if err != nil {
		s.log.Warn("auto-backup failed", zap.Error(err))
		return false
	}
	text, err := storage.Encode(b)
	if err != nil {
		s.log.Warn("auto-backup failed", zap.Error(err))
		return false
	}

	existing, err := s.ListAutoBackups(ctx)
	if err != nil {
		s.log.Warn("auto-backup failed", zap.Error(err))
		return false
	}
	taken := make(map[int64]bool, len(existing))
	for _, e := range existing {
		taken[e.Timestamp] = true
	}
	ts := s.now().UnixMilli()
	for taken[ts] {
		ts++
	}
	key := storage.AutoBackupPrefix + strconv.FormatInt(ts, 10)
	if err := s.adapter.SaveRaw(ctx, key, text); err != nil {
		s.log.Warn("auto-backup failed", zap.String("key", key), zap.Error(err))
		return false
	}

	all, err := s.ListAutoBackups(ctx)
	if err != nil {
		s.log.Warn("auto-backup rotation failed", zap.Error(err))
		return false
	}
	for _, old := range all[min(s.retention, len(all)):] {
		if err := s.adapter.Remove(ctx, old.Key); err != nil {
			s.log.Warn("auto-backup rotation failed", zap.String("key", old.Key), zap.Error(err))
			return false
		}
		s.log.Debug("rotated auto-backup", zap.String("key", old.Key))
	}
	s.log.Debug("auto-backup written", zap.String("key", key))
	return true
}

// ListAutoBackups returns the stored snapshots, newest first. Keys under the
// prefix without a numeric timestamp are skipped.
func (s *Service) ListAutoBackups(ctx context.Context) ([]AutoBackup, error) {
	keys, err := s.adapter.KeysWithPrefix(ctx, storage.AutoBackupPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]AutoBackup, 0, len(keys))
	for _, k := range keys {
		ts, err := strconv.ParseInt(strings.TrimPrefix(k, storage.AutoBackupPrefix), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, AutoBackup{
			Key:         k,
			Timestamp:   ts,
			DisplayDate: time.UnixMilli(ts).Local().Format("2006-01-02 15:04:05"),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

// RestoreFromAutoBackup imports the snapshot stored at key. It reports false
// when the key is absent or the snapshot does not decode.
func (s *Service) RestoreFromAutoBackup(ctx context.Context, key string) bool {
	if !strings.HasPrefix(key, storage.AutoBackupPrefix) {
		s.log.Error("restore failed: not an auto-backup key", zap.String("key", key))
		return false
	}
	text, ok, err := s.adapter.LoadRaw(ctx, key)
	if err != nil || !ok {
		s.log.Error("restore failed: backup not found", zap.String("key", key), zap.Error(err))
		return false
	}
	b, err := decodeBundle([]byte(text))
	if err != nil {
		s.log.Error("restore failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := s.ImportAll(ctx, b); err != nil {
		s.log.Error("restore failed", zap.String("key", key), zap.Error(err))
		return false
	}
	s.log.Info("restored auto-backup", zap.String("key", key))
	return true
}
