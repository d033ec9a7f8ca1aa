package memory

import (
	"context"
	"sort"
	"sync"

	"flowcanvas/application/ports"
	"flowcanvas/domain/core/entities"
	pkgerrors "flowcanvas/pkg/errors"
)

// ContentRepository provides an in-memory implementation of
// ports.ContentRepository backed by a table keyed by record id
type ContentRepository struct {
	mu      sync.RWMutex
	records map[string]*entities.ContentRecord
}

// NewContentRepository creates an empty in-memory content repository
func NewContentRepository() *ContentRepository {
	return &ContentRepository{
		records: make(map[string]*entities.ContentRecord),
	}
}

var _ ports.ContentRepository = (*ContentRepository)(nil)

// GetByID retrieves a content record by id
func (r *ContentRepository) GetByID(ctx context.Context, id string) (*entities.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, pkgerrors.NewNotFound("content record")
	}
	return record, nil
}

// Save registers a content record in the table
func (r *ContentRepository) Save(ctx context.Context, record *entities.ContentRecord) error {
	if record == nil {
		return pkgerrors.NewValidation("content record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.ID()] = record
	return nil
}

// Delete removes a content record from the table
func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return pkgerrors.NewNotFound("content record")
	}
	delete(r.records, id)
	return nil
}

// All returns every content record, sorted by creation time then id for a
// stable listing
func (r *ContentRepository) All(ctx context.Context) ([]*entities.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*entities.ContentRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt().Equal(records[j].CreatedAt()) {
			return records[i].CreatedAt().Before(records[j].CreatedAt())
		}
		return records[i].ID() < records[j].ID()
	})
	return records, nil
}
