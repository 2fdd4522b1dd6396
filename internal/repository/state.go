package repository

import (
	"context"
	"encoding/json"

	"opdash/internal/domain"
	"opdash/internal/errors"
	"opdash/internal/logging"
)

// Collections selects which task collections a save writes.
type Collections uint8

const (
	CollectionActive Collections = 1 << iota
	CollectionHistory

	CollectionNone Collections = 0
	CollectionBoth             = CollectionActive | CollectionHistory
)

// Has reports whether c includes other.
func (c Collections) Has(other Collections) bool {
	return c&other == other && other != CollectionNone
}

// StateRepository encodes dashboard state onto a Gateway.
type StateRepository struct {
	gateway       Gateway
	fallbackTheme func() domain.Theme
}

// NewStateRepository creates a repository. fallbackTheme is consulted when no
// theme has been stored; nil means light.
func NewStateRepository(gateway Gateway, fallbackTheme func() domain.Theme) *StateRepository {
	if fallbackTheme == nil {
		fallbackTheme = func() domain.Theme { return domain.ThemeLight }
	}
	return &StateRepository{gateway: gateway, fallbackTheme: fallbackTheme}
}

// LoadState reads both collections. A missing key falls back to the seed
// dataset; a stored empty array stays empty.
func (r *StateRepository) LoadState(ctx context.Context) (active, history []domain.Task, err error) {
	active, err = r.loadCollection(ctx, KeyActive, domain.SeedTasks)
	if err != nil {
		return nil, nil, err
	}
	history, err = r.loadCollection(ctx, KeyHistory, domain.SeedHistory)
	if err != nil {
		return nil, nil, err
	}
	return active, history, nil
}

func (r *StateRepository) loadCollection(ctx context.Context, key string, seed func() []domain.Task) ([]domain.Task, error) {
	raw, found, err := r.gateway.Load(ctx, key)
	if err != nil {
		return nil, errors.NewStorageError("load", key, err)
	}
	if !found {
		logging.Debugf("no value stored under %s, using seed data", key)
		return seed(), nil
	}
	return DecodeTasks(key, raw)
}

// SaveCollections writes the selected collections in a single Save call.
func (r *StateRepository) SaveCollections(ctx context.Context, active, history []domain.Task, which Collections) error {
	var entries []Entry
	if which.Has(CollectionActive) {
		value, err := EncodeTasks(KeyActive, active)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Key: KeyActive, Value: value})
	}
	if which.Has(CollectionHistory) {
		value, err := EncodeTasks(KeyHistory, history)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Key: KeyHistory, Value: value})
	}
	if len(entries) == 0 {
		return nil
	}
	if err := r.gateway.Save(ctx, entries...); err != nil {
		return errors.NewStorageError("save", entries[0].Key, err)
	}
	return nil
}

// LoadTheme reads the stored theme, falling back to the system preference
// when the key is absent or holds an unknown value.
func (r *StateRepository) LoadTheme(ctx context.Context) (domain.Theme, error) {
	raw, found, err := r.gateway.Load(ctx, KeyTheme)
	if err != nil {
		return "", errors.NewStorageError("load", KeyTheme, err)
	}
	if !found {
		return r.fallbackTheme(), nil
	}
	theme, err := domain.ParseTheme(raw)
	if err != nil {
		logging.Debugf("ignoring stored theme %q: %v", raw, err)
		return r.fallbackTheme(), nil
	}
	return theme, nil
}

// SaveTheme persists the theme preference.
func (r *StateRepository) SaveTheme(ctx context.Context, theme domain.Theme) error {
	if err := r.gateway.Save(ctx, Entry{Key: KeyTheme, Value: string(theme)}); err != nil {
		return errors.NewStorageError("save", KeyTheme, err)
	}
	return nil
}

// EncodeTasks serializes a collection as a JSON array. A nil collection
// encodes as "[]" so that it is not mistaken for an absent key later.
func EncodeTasks(key string, tasks []domain.Task) (string, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", errors.NewStorageError("encode", key, err)
	}
	return string(data), nil
}

// DecodeTasks parses a stored collection.
func DecodeTasks(key string, raw string) ([]domain.Task, error) {
	tasks := []domain.Task{}
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, errors.NewStorageError("decode", key, err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}
