package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	pkgerrors "flowcanvas/pkg/errors"
	"github.com/google/uuid"
)

// ToolType identifies which kind of playable unit a content record holds
type ToolType string

const (
	ToolMessage     ToolType = "message"
	ToolBanner      ToolType = "banner"
	ToolQuestion    ToolType = "question"
	ToolForm        ToolType = "form"
	ToolMultiSelect ToolType = "multiSelect"
	ToolFreeChat    ToolType = "freeChat"
	ToolAccordion   ToolType = "accordion"
	ToolIntro       ToolType = "intro"
)

// IsValid checks whether the tool type is one of the known variants
func (t ToolType) IsValid() bool {
	switch t {
	case ToolMessage, ToolBanner, ToolQuestion, ToolForm,
		ToolMultiSelect, ToolFreeChat, ToolAccordion, ToolIntro:
		return true
	}
	return false
}

// ToolContent is the variant payload carried by a content record.
// SearchText exposes every populated text field for the search index.
type ToolContent interface {
	ToolType() ToolType
	SearchText() []string
}

// MessageContent is a plain chat message
type MessageContent struct {
	Text string `json:"text"`
}

func (c MessageContent) ToolType() ToolType   { return ToolMessage }
func (c MessageContent) SearchText() []string { return []string{c.Text} }

// BannerContent is a banner with optional image
type BannerContent struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (c BannerContent) ToolType() ToolType   { return ToolBanner }
func (c BannerContent) SearchText() []string { return []string{c.Text} }

// QuestionContent is a single-choice question
type QuestionContent struct {
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
}

func (c QuestionContent) ToolType() ToolType { return ToolQuestion }
func (c QuestionContent) SearchText() []string {
	return append([]string{c.Text}, c.Options...)
}

// FormField is one input in a form
type FormField struct {
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Kind        string `json:"kind"`
	Required    bool   `json:"required,omitempty"`
}

// FormContent is a collection of input fields
type FormContent struct {
	Fields []FormField `json:"fields"`
}

func (c FormContent) ToolType() ToolType { return ToolForm }
func (c FormContent) SearchText() []string {
	texts := make([]string, 0, len(c.Fields)*2)
	for _, f := range c.Fields {
		texts = append(texts, f.Label, f.Placeholder)
	}
	return texts
}

// MultiSelectContent is a multiple-choice prompt
type MultiSelectContent struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
}

func (c MultiSelectContent) ToolType() ToolType { return ToolMultiSelect }
func (c MultiSelectContent) SearchText() []string {
	return append([]string{c.Prompt}, c.Options...)
}

// FreeChatContent opens a free-text chat turn
type FreeChatContent struct {
	Text string `json:"text"`
}

func (c FreeChatContent) ToolType() ToolType   { return ToolFreeChat }
func (c FreeChatContent) SearchText() []string { return []string{c.Text} }

// AccordionContent is a collapsible title/body block
type AccordionContent struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (c AccordionContent) ToolType() ToolType   { return ToolAccordion }
func (c AccordionContent) SearchText() []string { return []string{c.Title, c.Body} }

// IntroContent is the opening unit of a flow
type IntroContent struct {
	Text string `json:"text"`
}

func (c IntroContent) ToolType() ToolType   { return ToolIntro }
func (c IntroContent) SearchText() []string { return []string{c.Text} }

// UnmarshalToolContent decodes a raw JSON payload into the variant for the
// given tool type. Used by the HTTP surface.
func UnmarshalToolContent(toolType ToolType, raw json.RawMessage) (ToolContent, error) {
	if !toolType.IsValid() {
		return nil, pkgerrors.NewValidation(fmt.Sprintf("unknown tool type: %s", toolType))
	}

	var target any
	var take func() ToolContent

	switch toolType {
	case ToolMessage:
		c := &MessageContent{}
		target, take = c, func() ToolContent { return *c }
	case ToolBanner:
		c := &BannerContent{}
		target, take = c, func() ToolContent { return *c }
	case ToolQuestion:
		c := &QuestionContent{}
		target, take = c, func() ToolContent { return *c }
	case ToolForm:
		c := &FormContent{}
		target, take = c, func() ToolContent { return *c }
	case ToolMultiSelect:
		c := &MultiSelectContent{}
		target, take = c, func() ToolContent { return *c }
	case ToolFreeChat:
		c := &FreeChatContent{}
		target, take = c, func() ToolContent { return *c }
	case ToolAccordion:
		c := &AccordionContent{}
		target, take = c, func() ToolContent { return *c }
	case ToolIntro:
		c := &IntroContent{}
		target, take = c, func() ToolContent { return *c }
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, pkgerrors.NewValidation(fmt.Sprintf("malformed %s content: %v", toolType, err))
		}
	}
	return take(), nil
}

// ContentRecord is the editable payload a node references. It is owned
// independently of graph placement: nodes hold only its id.
type ContentRecord struct {
	id          string
	name        string
	slug        string
	content     ToolContent
	aiGenerated bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewContentRecord creates a content record with validation
func NewContentRecord(name, slug string, content ToolContent) (*ContentRecord, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.NewValidation("name cannot be empty")
	}
	if content == nil {
		return nil, pkgerrors.NewValidation("content cannot be nil")
	}

	now := time.Now()
	return &ContentRecord{
		id:        uuid.New().String(),
		name:      name,
		slug:      slug,
		content:   content,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructContentRecord recreates a record from stored data with preserved timestamps
func ReconstructContentRecord(
	id, name, slug string,
	content ToolContent,
	aiGenerated bool,
	createdAt, updatedAt time.Time,
) (*ContentRecord, error) {
	if id == "" || strings.TrimSpace(name) == "" || content == nil {
		return nil, pkgerrors.NewValidation("required fields missing for content reconstruction")
	}

	return &ContentRecord{
		id:          id,
		name:        name,
		slug:        slug,
		content:     content,
		aiGenerated: aiGenerated,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// ID returns the record's unique identifier
func (r *ContentRecord) ID() string {
	return r.id
}

// Name returns the record's display name
func (r *ContentRecord) Name() string {
	return r.name
}

// Slug returns the record's slug
func (r *ContentRecord) Slug() string {
	return r.slug
}

// ToolType returns the tool type of the carried content
func (r *ContentRecord) ToolType() ToolType {
	return r.content.ToolType()
}

// Content returns the variant payload
func (r *ContentRecord) Content() ToolContent {
	return r.content
}

// AIGenerated reports whether the content was machine-authored
func (r *ContentRecord) AIGenerated() bool {
	return r.aiGenerated
}

// CreatedAt returns when the record was created
func (r *ContentRecord) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the record was last changed
func (r *ContentRecord) UpdatedAt() time.Time {
	return r.updatedAt
}

// Rename changes the display name
func (r *ContentRecord) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.NewValidation("name cannot be empty")
	}
	r.name = name
	r.updatedAt = time.Now()
	return nil
}

// SetSlug changes the slug
func (r *ContentRecord) SetSlug(slug string) {
	r.slug = slug
	r.updatedAt = time.Now()
}

// UpdateContent replaces the variant payload. The tool type may change:
// editors can convert a unit from one tool to another in place.
func (r *ContentRecord) UpdateContent(content ToolContent) error {
	if content == nil {
		return pkgerrors.NewValidation("content cannot be nil")
	}
	r.content = content
	r.updatedAt = time.Now()
	return nil
}

// MarkAIGenerated flags the content as machine-authored
func (r *ContentRecord) MarkAIGenerated() {
	r.aiGenerated = true
	r.updatedAt = time.Now()
}

// Clone returns an independent copy, used to snapshot content before an
// edit session so it can be rolled back
func (r *ContentRecord) Clone() *ContentRecord {
	dup := *r
	return &dup
}

// Restore overwrites this record's editable state from a snapshot
func (r *ContentRecord) Restore(snapshot *ContentRecord) {
	if snapshot == nil || snapshot.id != r.id {
		return
	}
	r.name = snapshot.name
	r.slug = snapshot.slug
	r.content = snapshot.content
	r.aiGenerated = snapshot.aiGenerated
	r.updatedAt = time.Now()
}

// ContentSnapshot is the serializable view of a record pushed to collaborators
type ContentSnapshot struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	ToolType    ToolType    `json:"toolType"`
	Content     ToolContent `json:"content"`
	AIGenerated bool        `json:"aiGenerated"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Snapshot returns the serializable view of the record
func (r *ContentRecord) Snapshot() ContentSnapshot {
	return ContentSnapshot{
		ID:          r.id,
		Name:        r.name,
		Slug:        r.slug,
		ToolType:    r.ToolType(),
		Content:     r.content,
		AIGenerated: r.aiGenerated,
		UpdatedAt:   r.updatedAt,
	}
}
