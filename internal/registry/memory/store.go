// Package memory keeps the registry in process memory, optionally seeded
// from a YAML fixtures file.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
	"github.com/goodnatureofminers/farmtrace-backend/pkg/safe"
)

var (
	ErrDuplicateBatch   = errors.New("batch already registered")
	ErrSequenceConflict = errors.New("event sequence conflict")
)

// Store implements registry.Store and registry.ScanStore.
type Store struct {
	mu      sync.RWMutex
	batches map[model.BatchID]model.Batch
	events  map[model.BatchID][]model.TimelineEvent
	scans   []model.ScanRecord
}

func New() *Store {
	return &Store{
		batches: make(map[model.BatchID]model.Batch),
		events:  make(map[model.BatchID][]model.TimelineEvent),
	}
}

func (s *Store) InsertBatch(_ context.Context, batch model.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[batch.ID]; ok {
		return fmt.Errorf("insert %s: %w", batch.ID, ErrDuplicateBatch)
	}
	s.batches[batch.ID] = batch
	return nil
}

func (s *Store) Batch(_ context.Context, id model.BatchID) (model.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, ok := s.batches[id]
	if !ok {
		return model.Batch{}, fmt.Errorf("batch %s: %w", id, registry.ErrNotFound)
	}
	return batch, nil
}

func (s *Store) UpdateGrade(_ context.Context, id model.BatchID, grade model.Grade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[id]
	if !ok {
		return fmt.Errorf("batch %s: %w", id, registry.ErrNotFound)
	}
	batch.Grade = &grade
	s.batches[id] = batch
	return nil
}

func (s *Store) Events(_ context.Context, id model.BatchID) ([]model.TimelineEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.batches[id]; !ok {
		return nil, fmt.Errorf("batch %s: %w", id, registry.ErrNotFound)
	}
	events := s.events[id]
	out := make([]model.TimelineEvent, len(events))
	copy(out, events)
	return out, nil
}

func (s *Store) InsertEvent(_ context.Context, event model.TimelineEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[event.BatchID]; !ok {
		return fmt.Errorf("batch %s: %w", event.BatchID, registry.ErrNotFound)
	}
	events := s.events[event.BatchID]
	if int(event.Sequence) != len(events) {
		return fmt.Errorf("event %d of %s, have %d: %w", event.Sequence, event.BatchID, len(events), ErrSequenceConflict)
	}
	s.events[event.BatchID] = append(events, event)
	return nil
}

func (s *Store) ListBatches(_ context.Context, limit int) ([]model.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Batch, 0, len(s.batches))
	for _, b := range s.batches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].RegisteredAt.After(out[j].RegisteredAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) RegistryStats(_ context.Context) (model.RegistryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total, err := safe.Uint64(len(s.batches))
	if err != nil {
		return model.RegistryStats{}, fmt.Errorf("count batches: %w", err)
	}
	stats := model.RegistryStats{Batches: total, Crops: make(map[string]uint64)}
	farmers := make(map[string]struct{})
	for _, b := range s.batches {
		stats.Crops[b.CropType]++
		farmers[b.FarmerName] = struct{}{}
	}
	if stats.Farmers, err = safe.Uint64(len(farmers)); err != nil {
		return model.RegistryStats{}, fmt.Errorf("count farmers: %w", err)
	}
	return stats, nil
}

func (s *Store) InsertScans(_ context.Context, records []model.ScanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scans = append(s.scans, records...)
	return nil
}

func (s *Store) ScanStats(_ context.Context) (model.ScanStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total, err := safe.Uint64(len(s.scans))
	if err != nil {
		return model.ScanStats{}, fmt.Errorf("count scans: %w", err)
	}
	stats := model.ScanStats{Total: total}
	for _, rec := range s.scans {
		switch rec.Outcome {
		case model.ScanFound:
			stats.Found++
		case model.ScanNotFound:
			stats.NotFound++
		case model.ScanTransportFailure:
			stats.Transport++
		}
		if rec.Verified {
			stats.Verified++
		}
	}
	return stats, nil
}
