package ports

import (
	"context"

	"flowcanvas/domain/core/aggregates"
	"flowcanvas/domain/core/entities"
)

// FlowRepository persists flow aggregates
type FlowRepository interface {
	GetByID(ctx context.Context, id aggregates.FlowID) (*aggregates.Flow, error)
	Save(ctx context.Context, flow *aggregates.Flow) error
	Delete(ctx context.Context, id aggregates.FlowID) error
}

// ContentRepository persists content records independently of graph
// placement: a record is looked up by id, never embedded in a node
type ContentRepository interface {
	GetByID(ctx context.Context, id string) (*entities.ContentRecord, error)
	Save(ctx context.Context, record *entities.ContentRecord) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]*entities.ContentRecord, error)
}
