package services

import (
	"context"
	"sync"
	"time"

	"flowcanvas/application/ports"
	"flowcanvas/domain/core/aggregates"
	"flowcanvas/domain/core/entities"
	"flowcanvas/domain/core/valueobjects"
	"flowcanvas/domain/events"
	domainservices "flowcanvas/domain/services"
	pkgerrors "flowcanvas/pkg/errors"
	"flowcanvas/pkg/observability"
	"go.uber.org/zap"
)

// DeleteConfirmation describes a pending delete request raised toward the
// user. It never mutates the graph: the surface asks the user first and
// then calls RemoveNodes.
type DeleteConfirmation struct {
	Count int    `json:"count"`
	Name  string `json:"name,omitempty"`
}

// editSession holds the rollback snapshot taken when an edit window opens
type editSession struct {
	legacyID valueobjects.LegacyID
	snapshot *entities.ContentRecord
}

// EditorService drives one editor canvas. It is the single writer of the
// flow, the selection, and the derived order; every mutation runs the same
// synchronous sequence (mutate, recompute, broadcast) so the preview is
// never shown a stale order after an edit. A mutex serializes the HTTP and
// bus surfaces onto that single logical actor.
type EditorService struct {
	mu         sync.Mutex
	flows      ports.FlowRepository
	contents   ports.ContentRepository
	bus        ports.EventBus
	selection  *SelectionController
	linearizer *domainservices.Linearizer
	searcher   *domainservices.ContentSearcher
	logger     *zap.Logger
	metrics    *observability.Metrics

	flowID       aggregates.FlowID
	highlighted  valueobjects.LegacyID
	session      *editSession
	cachedOrder  domainservices.LinearOrder
	orderVersion int // flow version the cached order was computed at
}

// NewEditorService creates an editor service. metrics may be nil.
func NewEditorService(
	flows ports.FlowRepository,
	contents ports.ContentRepository,
	bus ports.EventBus,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *EditorService {
	return &EditorService{
		flows:      flows,
		contents:   contents,
		bus:        bus,
		selection:  NewSelectionController(),
		linearizer: domainservices.NewLinearizer(),
		searcher:   domainservices.NewContentSearcher(),
		logger:     logger,
		metrics:    metrics,
	}
}

// Start creates a fresh flow and makes it the active canvas
func (s *EditorService) Start(ctx context.Context, name string) (*aggregates.Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow := aggregates.NewFlow(name)
	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to save new flow")
	}

	s.flowID = flow.ID()
	s.orderVersion = 0
	s.logger.Info("Flow started",
		zap.String("flowId", flow.ID().String()),
		zap.String("name", flow.Name()))

	return flow, nil
}

// Selection exposes the selection controller for the interaction surfaces
func (s *EditorService) Selection() *SelectionController {
	return s.selection
}

// FlowID returns the active flow's id
func (s *EditorService) FlowID() aggregates.FlowID {
	return s.flowID
}

// AddComponent places a node at the given position referencing a content
// record, auto-chaining it after the most recently added node
func (s *EditorService) AddComponent(ctx context.Context, x, y float64, contentID string) (*entities.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	position, err := valueobjects.NewPosition(x, y)
	if err != nil {
		return nil, err
	}

	flow, err := s.flow(ctx)
	if err != nil {
		return nil, err
	}

	node, err := flow.AddNode(position, contentID)
	if err != nil {
		return nil, err
	}
	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to save flow")
	}
	s.metrics.RecordMutation("add_node")

	// A node whose content record is missing is still placed; the preview
	// renders a fallback for it
	toolType := entities.ToolType("")
	if record, err := s.contents.GetByID(ctx, contentID); err == nil {
		toolType = record.ToolType()
	} else {
		s.logger.Warn("Content record missing for new node",
			zap.String("contentId", contentID),
			zap.String("legacyId", node.LegacyID().String()))
	}

	s.publish(ctx, events.EventAddMessage, events.AddMessagePayload{
		LegacyID:     node.LegacyID().String(),
		ContentID:    contentID,
		ToolType:     toolType,
		ShowDropdown: node.ShowDropdown(),
	})
	s.syncOrder(ctx, flow)

	return node, nil
}

// RemoveNodes cascade-deletes every node matching the given legacy ids. A
// set matching nothing is a successful no-op and emits no event.
func (s *EditorService) RemoveNodes(ctx context.Context, legacyIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeNodes(ctx, legacyIDs)
}

// Connect draws an edge between two nodes identified by internal id. An
// edge with a dangling endpoint is rejected at creation time: ignored, not
// queued. Duplicate edges between the same pair are permitted.
func (s *EditorService) Connect(ctx context.Context, sourceID, targetID string) (*aggregates.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, err := valueobjects.NewNodeIDFromString(sourceID)
	if err != nil {
		s.logger.Debug("Edge rejected: bad source id", zap.String("sourceId", sourceID))
		return nil, nil
	}
	target, err := valueobjects.NewNodeIDFromString(targetID)
	if err != nil {
		s.logger.Debug("Edge rejected: bad target id", zap.String("targetId", targetID))
		return nil, nil
	}

	flow, err := s.flow(ctx)
	if err != nil {
		return nil, err
	}

	edge, err := flow.ConnectNodes(source, target)
	if err != nil {
		if pkgerrors.IsValidation(err) {
			s.logger.Debug("Edge rejected",
				zap.String("sourceId", sourceID),
				zap.String("targetId", targetID),
				zap.Error(err))
			return nil, nil
		}
		return nil, err
	}
	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to save flow")
	}
	s.metrics.RecordMutation("add_edge")

	s.syncOrder(ctx, flow)
	return edge, nil
}

// Disconnect removes an edge by id
func (s *EditorService) Disconnect(ctx context.Context, edgeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := valueobjects.NewEdgeIDFromString(edgeID)
	if err != nil {
		return err
	}

	flow, err := s.flow(ctx)
	if err != nil {
		return err
	}
	if err := flow.RemoveEdge(id); err != nil {
		return err
	}
	if err := s.flows.Save(ctx, flow); err != nil {
		return pkgerrors.Wrap(err, "failed to save flow")
	}
	s.metrics.RecordMutation("remove_edge")

	s.syncOrder(ctx, flow)
	return nil
}

// MoveNode drags a node to a new position. When the node belongs to a
// multi-node selection the whole group moves by the same delta, preserving
// its relative layout.
func (s *EditorService) MoveNode(ctx context.Context, legacyID string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	to, err := valueobjects.NewPosition(x, y)
	if err != nil {
		return err
	}

	flow, err := s.flow(ctx)
	if err != nil {
		return err
	}
	node, ok := flow.NodeByLegacyID(valueobjects.LegacyID(legacyID))
	if !ok {
		return pkgerrors.NewNotFound("node")
	}

	from := node.Position()
	if dx, dy, members, group := s.selection.DragDelta(node.ID(), from, to, flow.Nodes()); group {
		for _, member := range members {
			shifted, err := member.Position().Translate(dx, dy)
			if err != nil {
				return err
			}
			if err := flow.MoveNode(member.ID(), shifted); err != nil {
				return err
			}
		}
	}
	if err := flow.MoveNode(node.ID(), to); err != nil {
		return err
	}
	if err := s.flows.Save(ctx, flow); err != nil {
		return pkgerrors.Wrap(err, "failed to save flow")
	}
	s.metrics.RecordMutation("move_node")

	// Vertical position feeds the convergence tie-break, so a drag can
	// change the playback order
	s.syncOrder(ctx, flow)
	return nil
}

// CreateContent creates a standalone content record (not yet placed)
func (s *EditorService) CreateContent(
	ctx context.Context,
	name, slug string,
	content entities.ToolContent,
	aiGenerated bool,
) (*entities.ContentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := entities.NewContentRecord(name, slug, content)
	if err != nil {
		return nil, err
	}
	if aiGenerated {
		record.MarkAIGenerated()
	}
	if err := s.contents.Save(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to save content record")
	}
	return record, nil
}

// UpdateContent applies an edit to a content record and pushes the full
// snapshot to every node referencing it
func (s *EditorService) UpdateContent(
	ctx context.Context,
	id, name, slug string,
	content entities.ToolContent,
) (*entities.ContentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.contents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		if err := record.Rename(name); err != nil {
			return nil, err
		}
	}
	if slug != record.Slug() {
		record.SetSlug(slug)
	}
	if content != nil {
		if err := record.UpdateContent(content); err != nil {
			return nil, err
		}
	}
	if err := s.contents.Save(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to save content record")
	}

	s.broadcastContent(ctx, record)
	return record, nil
}

// ClickNode applies one canvas click on a node and mirrors the selection
func (s *EditorService) ClickNode(ctx context.Context, legacyID string, modifier ClickModifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.flow(ctx)
	if err != nil {
		return err
	}
	node, ok := flow.NodeByLegacyID(valueobjects.LegacyID(legacyID))
	if !ok {
		return pkgerrors.NewNotFound("node")
	}

	s.selection.Click(node.ID(), modifier, flow.Nodes())
	s.broadcastSelection(ctx, flow)
	return nil
}

// ClickBackground clears the selection unless test mode suppresses it
func (s *EditorService) ClickBackground(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.flow(ctx)
	if err != nil {
		return err
	}
	if s.selection.BackgroundClick() {
		s.broadcastSelection(ctx, flow)
	}
	return nil
}

// RequestDelete raises a delete-confirmation request for the current
// selection. It does not mutate the graph. ok is false when there is
// nothing to delete or test mode is active.
func (s *EditorService) RequestDelete(ctx context.Context) (DeleteConfirmation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection.TestMode() || s.selection.Count() == 0 {
		return DeleteConfirmation{}, false, nil
	}

	flow, err := s.flow(ctx)
	if err != nil {
		return DeleteConfirmation{}, false, err
	}

	selected := s.selection.SelectedIn(flow.Nodes())
	if len(selected) == 0 {
		return DeleteConfirmation{}, false, nil
	}

	confirmation := DeleteConfirmation{Count: len(selected)}
	if len(selected) == 1 {
		if record, err := s.contents.GetByID(ctx, selected[0].ContentID()); err == nil {
			confirmation.Name = record.Name()
		}
	}
	return confirmation, true, nil
}

// DeleteSelected removes every selected node. Surfaces call it after the
// user confirmed the descriptor returned by RequestDelete.
func (s *EditorService) DeleteSelected(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection.TestMode() || s.selection.Count() == 0 {
		return nil
	}

	flow, err := s.flow(ctx)
	if err != nil {
		return err
	}

	selected := s.selection.SelectedIn(flow.Nodes())
	legacyIDs := make([]string, len(selected))
	for i, node := range selected {
		legacyIDs[i] = node.LegacyID().String()
	}
	return s.removeNodes(ctx, legacyIDs)
}

// HoverNode publishes the hover/focus hints toward the preview
func (s *EditorService) HoverNode(ctx context.Context, legacyID string, entered bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := events.MessageRefPayload{LegacyID: legacyID}
	if entered {
		s.publish(ctx, events.EventScrollToMessage, ref)
		s.publish(ctx, events.EventHighlightMessage, ref)
	} else {
		s.publish(ctx, events.EventUnhighlightMessage, ref)
	}
}

// Order returns the current linear playback order, recomputing it if any
// mutation happened since the last computation
func (s *EditorService) Order(ctx context.Context) (domainservices.LinearOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.flow(ctx)
	if err != nil {
		return domainservices.LinearOrder{}, err
	}
	return s.orderFor(flow), nil
}

// Search returns the legacy ids of nodes whose content matches the query
func (s *EditorService) Search(ctx context.Context, query string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.flow(ctx)
	if err != nil {
		return nil, err
	}

	nodes := flow.Nodes()
	ids := s.searcher.MatchingNodeIDs(query, nodes, repoContentLookup{ctx: ctx, contents: s.contents})

	matched := make(map[valueobjects.NodeID]bool, len(ids))
	for _, id := range ids {
		matched[id] = true
	}
	legacyIDs := []string{}
	for _, node := range nodes {
		if matched[node.ID()] {
			legacyIDs = append(legacyIDs, node.LegacyID().String())
		}
	}
	return legacyIDs, nil
}

// Inbound command surface (driven by the sync bridge)

// SetPreviewHighlight tracks the node the preview is highlighting
func (s *EditorService) SetPreviewHighlight(legacyID string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if on {
		s.highlighted = valueobjects.LegacyID(legacyID)
		return
	}
	if s.highlighted == valueobjects.LegacyID(legacyID) {
		s.highlighted = ""
	}
}

// Highlighted returns the preview-highlighted node, if any
func (s *EditorService) Highlighted() valueobjects.LegacyID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlighted
}

// UpdateNodeHint patches a node's preview display hint
func (s *EditorService) UpdateNodeHint(ctx context.Context, legacyID string, showDropdown bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.flow(ctx)
	if err != nil {
		return err
	}
	node, ok := flow.NodeByLegacyID(valueobjects.LegacyID(legacyID))
	if !ok {
		return pkgerrors.NewNotFound("node")
	}

	node.SetShowDropdown(showDropdown)
	if err := s.flows.Save(ctx, flow); err != nil {
		return pkgerrors.Wrap(err, "failed to save flow")
	}

	s.syncOrder(ctx, flow)
	return nil
}

// DeleteFromPreview cascade-deletes one node on the preview's behalf
func (s *EditorService) DeleteFromPreview(ctx context.Context, legacyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeNodes(ctx, []string{legacyID})
}

// SelectFromPreview sets the selection to exactly one node
func (s *EditorService) SelectFromPreview(ctx context.Context, legacyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.flow(ctx)
	if err != nil {
		return err
	}
	node, ok := flow.NodeByLegacyID(valueobjects.LegacyID(legacyID))
	if !ok {
		return pkgerrors.NewNotFound("node")
	}

	s.selection.SelectOnly(node.ID())
	s.broadcastSelection(ctx, flow)
	return nil
}

// SetTestMode toggles the modal test mode
func (s *EditorService) SetTestMode(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SetTestMode(active)
}

// OpenEditWindow begins an edit session, snapshotting the node's content
// for possible rollback
func (s *EditorService) OpenEditWindow(ctx context.Context, legacyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.flow(ctx)
	if err != nil {
		return err
	}
	node, ok := flow.NodeByLegacyID(valueobjects.LegacyID(legacyID))
	if !ok {
		return pkgerrors.NewNotFound("node")
	}

	record, err := s.contents.GetByID(ctx, node.ContentID())
	if err != nil {
		return err
	}

	s.session = &editSession{
		legacyID: node.LegacyID(),
		snapshot: record.Clone(),
	}
	return nil
}

// CloseEditWindow ends the edit session. A cancelled session rolls the
// record back to the snapshot taken when the window opened.
func (s *EditorService) CloseEditWindow(ctx context.Context, commit bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil && !commit {
		record, err := s.contents.GetByID(ctx, s.session.snapshot.ID())
		if err == nil {
			record.Restore(s.session.snapshot)
			if err := s.contents.Save(ctx, record); err != nil {
				return pkgerrors.Wrap(err, "failed to roll back content record")
			}
			s.broadcastContent(ctx, record)
		}
	}
	s.session = nil

	s.publish(ctx, events.EventEditWindowClose, struct{}{})
	return nil
}

// CurrentMessages returns the ordered content snapshots for export
func (s *EditorService) CurrentMessages(ctx context.Context) ([]events.OrderedMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.flow(ctx)
	if err != nil {
		return nil, err
	}

	order := s.orderFor(flow)
	messages := make([]events.OrderedMessage, 0, len(order.Order))
	for _, legacyID := range order.Order {
		node, ok := flow.NodeByLegacyID(valueobjects.LegacyID(legacyID))
		if !ok {
			continue
		}
		message := events.OrderedMessage{LegacyID: legacyID}
		if record, err := s.contents.GetByID(ctx, node.ContentID()); err == nil {
			message.ToolType = record.ToolType()
			message.Content = record.Snapshot()
		}
		messages = append(messages, message)
	}
	return messages, nil
}

// CurrentFlow returns the active flow aggregate for read-only surfaces
func (s *EditorService) CurrentFlow(ctx context.Context) (*aggregates.Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow(ctx)
}

// Content returns one content record by id
func (s *EditorService) Content(ctx context.Context, id string) (*entities.ContentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contents.GetByID(ctx, id)
}

// Contents returns every content record known to the asset picker
func (s *EditorService) Contents(ctx context.Context) ([]*entities.ContentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contents.All(ctx)
}

// DeleteContent removes a content record that no node references
func (s *EditorService) DeleteContent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.contents.GetByID(ctx, id); err != nil {
		return err
	}

	flow, err := s.flow(ctx)
	if err == nil {
		for _, node := range flow.Nodes() {
			if node.ContentID() == id {
				return pkgerrors.NewConflict("content record is still referenced by a node")
			}
		}
	}
	return s.contents.Delete(ctx, id)
}

// Private helper methods. All assume s.mu is held.

func (s *EditorService) flow(ctx context.Context) (*aggregates.Flow, error) {
	if s.flowID == "" {
		return nil, pkgerrors.NewValidation("no active flow")
	}
	flow, err := s.flows.GetByID(ctx, s.flowID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load flow")
	}
	return flow, nil
}

func (s *EditorService) removeNodes(ctx context.Context, legacyIDs []string) error {
	flow, err := s.flow(ctx)
	if err != nil {
		return err
	}

	ids := make([]valueobjects.LegacyID, len(legacyIDs))
	for i, id := range legacyIDs {
		ids[i] = valueobjects.LegacyID(id)
	}

	removed := flow.RemoveNodesByLegacyID(ids)
	if len(removed) == 0 {
		// Successful no-op: nothing matched, nothing to announce
		return nil
	}
	if err := s.flows.Save(ctx, flow); err != nil {
		return pkgerrors.Wrap(err, "failed to save flow")
	}
	s.metrics.RecordMutation("remove_nodes")

	for _, node := range removed {
		s.publish(ctx, events.EventDeleteMessage, events.DeleteMessagePayload{
			LegacyID: node.LegacyID().String(),
		})
	}

	if s.selection.Prune(flow.HasNode) {
		s.broadcastSelection(ctx, flow)
	}
	s.syncOrder(ctx, flow)
	return nil
}

// orderFor returns the linear order for the flow, recomputing only when a
// mutation invalidated the cached one
func (s *EditorService) orderFor(flow *aggregates.Flow) domainservices.LinearOrder {
	if s.orderVersion == flow.Version() {
		return s.cachedOrder
	}

	start := time.Now()
	s.cachedOrder = s.linearizer.Linearize(snapshotOf(flow))
	s.orderVersion = flow.Version()
	s.metrics.ObserveRecompute(time.Since(start))

	return s.cachedOrder
}

func (s *EditorService) syncOrder(ctx context.Context, flow *aggregates.Flow) {
	order := s.orderFor(flow)
	s.publish(ctx, events.EventSyncMessageOrder, events.SyncMessageOrderPayload{
		Order:     order.Order,
		OrphanIDs: order.OrphanIDs,
	})
}

func (s *EditorService) broadcastSelection(ctx context.Context, flow *aggregates.Flow) {
	selected := s.selection.SelectedIn(flow.Nodes())
	legacyIDs := make([]string, len(selected))
	for i, node := range selected {
		legacyIDs[i] = node.LegacyID().String()
	}
	s.publish(ctx, events.EventNodeSelection, events.NodeSelectionPayload{
		SelectedLegacyIDs: legacyIDs,
	})
}

func (s *EditorService) broadcastContent(ctx context.Context, record *entities.ContentRecord) {
	flow, err := s.flow(ctx)
	if err != nil {
		return
	}
	snapshot := record.Snapshot()
	for _, node := range flow.Nodes() {
		if node.ContentID() == record.ID() {
			s.publish(ctx, events.EventUpdateComponentData, events.UpdateComponentDataPayload{
				LegacyID:    node.LegacyID().String(),
				ContentData: snapshot,
			})
		}
	}
}

func (s *EditorService) publish(ctx context.Context, name string, payload any) {
	s.bus.Publish(ctx, name, payload)
	s.metrics.RecordEventPublished(name)
}

// snapshotOf builds the immutable linearizer view of a flow
func snapshotOf(flow *aggregates.Flow) domainservices.GraphSnapshot {
	nodes := flow.Nodes()
	edges := flow.Edges()

	snap := domainservices.GraphSnapshot{
		Nodes: make([]domainservices.SnapshotNode, len(nodes)),
		Edges: make([]domainservices.SnapshotEdge, len(edges)),
	}
	for i, node := range nodes {
		snap.Nodes[i] = domainservices.SnapshotNode{
			ID:       node.ID().String(),
			LegacyID: node.LegacyID().String(),
			Y:        node.Position().Y(),
		}
	}
	for i, edge := range edges {
		snap.Edges[i] = domainservices.SnapshotEdge{
			SourceID: edge.SourceID.String(),
			TargetID: edge.TargetID.String(),
		}
	}
	return snap
}

// repoContentLookup adapts the content repository to the search service
type repoContentLookup struct {
	ctx      context.Context
	contents ports.ContentRepository
}

func (l repoContentLookup) ContentByID(id string) (*entities.ContentRecord, bool) {
	record, err := l.contents.GetByID(l.ctx, id)
	if err != nil {
		return nil, false
	}
	return record, true
}
