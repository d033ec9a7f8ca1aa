package messaging

import (
	"context"
	"testing"

	"flowcanvas/application/services"
	"flowcanvas/domain/core/entities"
	"flowcanvas/domain/events"
	"flowcanvas/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupBridge(t *testing.T) (*services.EditorService, *InMemoryBus, context.Context) {
	t.Helper()

	logger := zap.NewNop()
	bus := NewInMemoryBus(logger)
	editor := services.NewEditorService(
		memory.NewFlowRepository(),
		memory.NewContentRepository(),
		bus,
		logger,
		nil,
	)

	ctx := context.Background()
	_, err := editor.Start(ctx, "bridge test")
	require.NoError(t, err)

	bridge := NewSyncBridge(bus, editor, logger)
	bridge.Attach(ctx)
	t.Cleanup(bridge.Detach)

	return editor, bus, ctx
}

func placeNode(t *testing.T, editor *services.EditorService, ctx context.Context) *entities.Node {
	t.Helper()
	record, err := editor.CreateContent(ctx, "Unit", "", entities.MessageContent{Text: "x"}, false)
	require.NoError(t, err)
	node, err := editor.AddComponent(ctx, 0, 0, record.ID())
	require.NoError(t, err)
	return node
}

func TestBridge_HighlightNode(t *testing.T) {
	editor, bus, ctx := setupBridge(t)

	bus.Publish(ctx, events.EventHighlightNode, events.MessageRefPayload{LegacyID: "legacy-1"})
	assert.Equal(t, "legacy-1", editor.Highlighted().String())

	bus.Publish(ctx, events.EventUnhighlightNode, events.MessageRefPayload{LegacyID: "legacy-1"})
	assert.True(t, editor.Highlighted().IsZero())
}

func TestBridge_DeleteNode(t *testing.T) {
	editor, bus, ctx := setupBridge(t)
	node := placeNode(t, editor, ctx)

	bus.Publish(ctx, events.EventDeleteNode, events.MessageRefPayload{LegacyID: node.LegacyID().String()})

	flow, err := editor.CurrentFlow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, flow.NodeCount())
}

func TestBridge_SelectNode(t *testing.T) {
	editor, bus, ctx := setupBridge(t)
	node := placeNode(t, editor, ctx)

	bus.Publish(ctx, events.EventSelectNode, events.MessageRefPayload{LegacyID: node.LegacyID().String()})

	assert.True(t, editor.Selection().IsSelected(node.ID()))
}

func TestBridge_UpdateNode(t *testing.T) {
	editor, bus, ctx := setupBridge(t)
	node := placeNode(t, editor, ctx)

	bus.Publish(ctx, events.EventUpdateNode, events.UpdateNodePayload{
		LegacyID:     node.LegacyID().String(),
		ShowDropdown: true,
	})

	flow, err := editor.CurrentFlow(ctx)
	require.NoError(t, err)
	updated, ok := flow.NodeByLegacyID(node.LegacyID())
	require.True(t, ok)
	assert.True(t, updated.ShowDropdown())
}

func TestBridge_TestModeToggle(t *testing.T) {
	editor, bus, ctx := setupBridge(t)

	bus.Publish(ctx, events.EventEnterTestMode, nil)
	assert.True(t, editor.Selection().TestMode())

	bus.Publish(ctx, events.EventExitTestMode, nil)
	assert.False(t, editor.Selection().TestMode())
}

func TestBridge_GetCurrentMessages(t *testing.T) {
	editor, bus, ctx := setupBridge(t)
	node := placeNode(t, editor, ctx)

	var got []events.OrderedMessage
	bus.Publish(ctx, events.EventGetCurrentMessages, events.GetCurrentMessagesPayload{
		Callback: func(messages []events.OrderedMessage) { got = messages },
	})

	require.Len(t, got, 1)
	assert.Equal(t, node.LegacyID().String(), got[0].LegacyID)
	assert.Equal(t, entities.ToolMessage, got[0].ToolType)
}

func TestBridge_MalformedPayloadIsDropped(t *testing.T) {
	editor, bus, ctx := setupBridge(t)
	placeNode(t, editor, ctx)

	assert.NotPanics(t, func() {
		bus.Publish(ctx, events.EventDeleteNode, "not a payload struct")
		bus.Publish(ctx, events.EventUpdateNode, 42)
		bus.Publish(ctx, events.EventGetCurrentMessages, events.GetCurrentMessagesPayload{})
	})

	// Nothing was deleted by the malformed commands
	flow, err := editor.CurrentFlow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, flow.NodeCount())
}

func TestBridge_DetachStopsRouting(t *testing.T) {
	logger := zap.NewNop()
	bus := NewInMemoryBus(logger)
	editor := services.NewEditorService(
		memory.NewFlowRepository(),
		memory.NewContentRepository(),
		bus,
		logger,
		nil,
	)
	ctx := context.Background()
	_, err := editor.Start(ctx, "detach test")
	require.NoError(t, err)

	bridge := NewSyncBridge(bus, editor, logger)
	bridge.Attach(ctx)
	bridge.Detach()

	bus.Publish(ctx, events.EventEnterTestMode, nil)
	assert.False(t, editor.Selection().TestMode())
}
