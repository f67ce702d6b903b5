package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	"golang.org/x/xerrors"
)

// Compile-time check for ensuring InMemorySetupStore implements setup.Store.
var _ setup.Store = (*InMemorySetupStore)(nil)

/*
InMemorySetupStore keeps facet setups in a map. It is used by tests and by
single-node deployments that seed their setups at startup.
*/
type InMemorySetupStore struct {
	mu     sync.RWMutex
	setups map[string]*setup.Record
}

// NewInMemorySetupStore returns an empty store.
func NewInMemorySetupStore() *InMemorySetupStore {
	return &InMemorySetupStore{setups: make(map[string]*setup.Record)}
}

// Upsert validates rec and stores a copy of it. A rejected record is left
// unchanged.
func (s *InMemorySetupStore) Upsert(_ context.Context, rec *setup.Record) error {
	if err := setup.Validate(rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		//in the highly unlikely case of an ID collision keep generating
		for {
			id := setup.NewID()
			if s.setups[id] == nil {
				rec.ID = id
				break
			}
		}
	}
	if err := setup.Prepare(rec); err != nil {
		return err
	}
	s.setups[rec.ID] = rec.Clone()
	return nil
}

// Find returns a copy of the record stored under id.
func (s *InMemorySetupStore) Find(_ context.Context, id string) (*setup.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, found := s.setups[id]
	if !found {
		return nil, xerrors.Errorf("find setup %q: %w", id, setup.ErrNotFound)
	}
	return rec.Clone(), nil
}

// Delete removes the record stored under id.
func (s *InMemorySetupStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.setups[id]; !found {
		return xerrors.Errorf("delete setup %q: %w", id, setup.ErrNotFound)
	}
	delete(s.setups, id)
	return nil
}

// IDs returns the IDs of every stored setup in sorted order.
func (s *InMemorySetupStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.setups))
	for id := range s.setups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
