package storage

import (
	"context"
	"fmt"
	"strconv"
)

type NotesRepo struct {
	a *Adapter
}

func NewNotesRepo(a *Adapter) *NotesRepo {
	return &NotesRepo{a: a}
}

func (r *NotesRepo) Get(ctx context.Context) (UserNotes, error) {
	return loadOr(ctx, r.a, KeyUserNotes, func() UserNotes { return UserNotes{} })
}

// Update stores text for the day. Empty text removes the note instead, so a
// day entry only exists while its note is non-empty. Day is not range-checked.
func (r *NotesRepo) Update(ctx context.Context, monthKey string, day int, text string) (UserNotes, error) {
	if text == "" {
		return r.Delete(ctx, monthKey, day)
	}
	notes, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if notes[monthKey] == nil {
		notes[monthKey] = map[string]string{}
	}
	notes[monthKey][strconv.Itoa(day)] = text
	if err := r.a.Save(ctx, KeyUserNotes, notes); err != nil {
		return nil, fmt.Errorf("note update: %w", err)
	}
	return notes, nil
}

// Delete removes the day's note. Deleting an absent note writes nothing.
func (r *NotesRepo) Delete(ctx context.Context, monthKey string, day int) (UserNotes, error) {
	notes, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	d := strconv.Itoa(day)
	if _, ok := notes[monthKey][d]; !ok {
		return notes, nil
	}
	delete(notes[monthKey], d)
	if err := r.a.Save(ctx, KeyUserNotes, notes); err != nil {
		return nil, fmt.Errorf("note delete: %w", err)
	}
	return notes, nil
}

func (r *NotesRepo) Replace(ctx context.Context, notes UserNotes) error {
	if err := r.a.Save(ctx, KeyUserNotes, notes); err != nil {
		return fmt.Errorf("notes replace: %w", err)
	}
	return nil
}
