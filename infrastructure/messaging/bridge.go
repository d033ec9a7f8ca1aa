package messaging

import (
	"context"

	"flowcanvas/application/ports"
	"flowcanvas/application/services"
	"flowcanvas/domain/events"
	"go.uber.org/zap"
)

// SyncBridge routes the inbound half of the preview protocol: it subscribes
// to the command events the preview and editing forms publish and turns
// them into editor operations. The outbound half flows through the same
// bus, published by the editor service after each mutation. A malformed
// payload is logged and dropped; the preview never takes the core down.
type SyncBridge struct {
	bus    ports.EventBus
	editor *services.EditorService
	logger *zap.Logger
	unsubs []func()
}

// NewSyncBridge creates a bridge. Call Attach to start routing.
func NewSyncBridge(bus ports.EventBus, editor *services.EditorService, logger *zap.Logger) *SyncBridge {
	return &SyncBridge{
		bus:    bus,
		editor: editor,
		logger: logger,
	}
}

// Attach subscribes the bridge to every inbound command event
func (b *SyncBridge) Attach(ctx context.Context) {
	b.subscribe(events.EventHighlightNode, func(payload any) {
		if ref, ok := b.ref(events.EventHighlightNode, payload); ok {
			b.editor.SetPreviewHighlight(ref.LegacyID, true)
		}
	})

	b.subscribe(events.EventUnhighlightNode, func(payload any) {
		if ref, ok := b.ref(events.EventUnhighlightNode, payload); ok {
			b.editor.SetPreviewHighlight(ref.LegacyID, false)
		}
	})

	b.subscribe(events.EventUpdateNode, func(payload any) {
		patch, ok := payload.(events.UpdateNodePayload)
		if !ok {
			b.dropped(events.EventUpdateNode, payload)
			return
		}
		if err := b.editor.UpdateNodeHint(ctx, patch.LegacyID, patch.ShowDropdown); err != nil {
			b.logger.Warn("updateNode failed",
				zap.String("legacyId", patch.LegacyID),
				zap.Error(err))
		}
	})

	b.subscribe(events.EventDeleteNode, func(payload any) {
		if ref, ok := b.ref(events.EventDeleteNode, payload); ok {
			if err := b.editor.DeleteFromPreview(ctx, ref.LegacyID); err != nil {
				b.logger.Warn("deleteNode failed",
					zap.String("legacyId", ref.LegacyID),
					zap.Error(err))
			}
		}
	})

	b.subscribe(events.EventSelectNode, func(payload any) {
		if ref, ok := b.ref(events.EventSelectNode, payload); ok {
			if err := b.editor.SelectFromPreview(ctx, ref.LegacyID); err != nil {
				b.logger.Warn("selectNode failed",
					zap.String("legacyId", ref.LegacyID),
					zap.Error(err))
			}
		}
	})

	b.subscribe(events.EventEnterTestMode, func(payload any) {
		b.editor.SetTestMode(true)
	})

	b.subscribe(events.EventExitTestMode, func(payload any) {
		b.editor.SetTestMode(false)
	})

	b.subscribe(events.EventOpenEditWindow, func(payload any) {
		if ref, ok := b.ref(events.EventOpenEditWindow, payload); ok {
			if err := b.editor.OpenEditWindow(ctx, ref.LegacyID); err != nil {
				b.logger.Warn("openEditWindow failed",
					zap.String("legacyId", ref.LegacyID),
					zap.Error(err))
			}
		}
	})

	b.subscribe(events.EventGetCurrentMessages, func(payload any) {
		request, ok := payload.(events.GetCurrentMessagesPayload)
		if !ok || request.Callback == nil {
			b.dropped(events.EventGetCurrentMessages, payload)
			return
		}
		messages, err := b.editor.CurrentMessages(ctx)
		if err != nil {
			b.logger.Warn("getCurrentMessages failed", zap.Error(err))
			messages = []events.OrderedMessage{}
		}
		request.Callback(messages)
	})

	b.logger.Info("Sync bridge attached", zap.Int("subscriptions", len(b.unsubs)))
}

// Detach removes every subscription
func (b *SyncBridge) Detach() {
	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil
	b.logger.Info("Sync bridge detached")
}

// Private helper methods

func (b *SyncBridge) subscribe(name string, handler ports.EventHandler) {
	b.unsubs = append(b.unsubs, b.bus.Subscribe(name, handler))
}

func (b *SyncBridge) ref(event string, payload any) (events.MessageRefPayload, bool) {
	ref, ok := payload.(events.MessageRefPayload)
	if !ok {
		b.dropped(event, payload)
		return events.MessageRefPayload{}, false
	}
	return ref, true
}

func (b *SyncBridge) dropped(event string, payload any) {
	b.logger.Warn("Dropped malformed event payload",
		zap.String("event", event),
		zap.Any("payload", payload))
}
