package memory

import (
	"context"
	"sync"

	"flowcanvas/application/ports"
	"flowcanvas/domain/core/aggregates"
	pkgerrors "flowcanvas/pkg/errors"
)

// FlowRepository provides an in-memory implementation of ports.FlowRepository.
// Flows live in a table keyed by id; the aggregate pointer is the single
// authoritative instance, so Save only has to register it.
type FlowRepository struct {
	mu    sync.RWMutex
	flows map[aggregates.FlowID]*aggregates.Flow
}

// NewFlowRepository creates an empty in-memory flow repository
func NewFlowRepository() *FlowRepository {
	return &FlowRepository{
		flows: make(map[aggregates.FlowID]*aggregates.Flow),
	}
}

var _ ports.FlowRepository = (*FlowRepository)(nil)

// GetByID retrieves a flow by id
func (r *FlowRepository) GetByID(ctx context.Context, id aggregates.FlowID) (*aggregates.Flow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flow, ok := r.flows[id]
	if !ok {
		return nil, pkgerrors.NewNotFound("flow")
	}
	return flow, nil
}

// Save registers a flow in the table
func (r *FlowRepository) Save(ctx context.Context, flow *aggregates.Flow) error {
	if flow == nil {
		return pkgerrors.NewValidation("flow cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.flows[flow.ID()] = flow
	return nil
}

// Delete removes a flow from the table
func (r *FlowRepository) Delete(ctx context.Context, id aggregates.FlowID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.flows[id]; !ok {
		return pkgerrors.NewNotFound("flow")
	}
	delete(r.flows, id)
	return nil
}
