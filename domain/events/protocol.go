package events

import "flowcanvas/domain/core/entities"

// Bus event names shared with the preview and editor surfaces. Outbound
// events are published by the core; inbound events are commands the core
// subscribes to. The names are the wire contract and must not change.

// Outbound (core -> preview/editor)
const (
	EventAddMessage          = "addMessage"
	EventDeleteMessage       = "deleteMessage"
	EventUpdateComponentData = "updateComponentData"
	EventSyncMessageOrder    = "syncMessageOrder"
	EventNodeSelection       = "nodeSelection"
	EventScrollToMessage     = "scrollToMessage"
	EventHighlightMessage    = "highlightMessage"
	EventUnhighlightMessage  = "unhighlightMessage"
	EventEditWindowClose     = "editWindowClose"
)

// Inbound (preview/editor -> core)
const (
	EventHighlightNode      = "highlightNode"
	EventUnhighlightNode    = "unhighlightNode"
	EventUpdateNode         = "updateNode"
	EventDeleteNode         = "deleteNode"
	EventSelectNode         = "selectNode"
	EventEnterTestMode      = "enterTestMode"
	EventExitTestMode       = "exitTestMode"
	EventOpenEditWindow     = "openEditWindow"
	EventGetCurrentMessages = "getCurrentMessages"
)

// AddMessagePayload announces a new node's playable unit
type AddMessagePayload struct {
	LegacyID     string            `json:"legacyId"`
	ContentID    string            `json:"contentId"`
	ToolType     entities.ToolType `json:"toolType"`
	ShowDropdown bool              `json:"showDropdown"`
}

// DeleteMessagePayload announces a node removal
type DeleteMessagePayload struct {
	LegacyID string `json:"legacyId"`
}

// UpdateComponentDataPayload pushes a full content snapshot after an edit
type UpdateComponentDataPayload struct {
	LegacyID    string                   `json:"legacyId"`
	ContentData entities.ContentSnapshot `json:"contentData"`
}

// SyncMessageOrderPayload pushes the recomputed linear order
type SyncMessageOrderPayload struct {
	Order     []string `json:"order"`
	OrphanIDs []string `json:"orphanIds"`
}

// NodeSelectionPayload mirrors the current selection
type NodeSelectionPayload struct {
	SelectedLegacyIDs []string `json:"selectedLegacyIds"`
}

// MessageRefPayload carries a single legacy id. Used by the hover/focus
// hints in both directions (scrollToMessage, highlightMessage,
// unhighlightMessage, highlightNode, unhighlightNode, deleteNode,
// selectNode, openEditWindow).
type MessageRefPayload struct {
	LegacyID string `json:"legacyId"`
}

// UpdateNodePayload patches a node's display hint
type UpdateNodePayload struct {
	LegacyID     string            `json:"legacyId"`
	ToolType     entities.ToolType `json:"toolType"`
	ShowDropdown bool              `json:"showDropdown"`
}

// OrderedMessage is one entry of the getCurrentMessages reply
type OrderedMessage struct {
	LegacyID string                   `json:"legacyId"`
	ToolType entities.ToolType        `json:"toolType"`
	Content  entities.ContentSnapshot `json:"content"`
}

// GetCurrentMessagesPayload carries the synchronous reply callback for the
// export collaborator. The callback is invoked once, within the publishing
// turn, with the ordered content.
type GetCurrentMessagesPayload struct {
	Callback func(messages []OrderedMessage) `json:"-"`
}
