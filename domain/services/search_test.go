package services

import (
	"testing"

	"flowcanvas/domain/core/entities"
	"flowcanvas/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLookup map[string]*entities.ContentRecord

func (m mapLookup) ContentByID(id string) (*entities.ContentRecord, bool) {
	record, ok := m[id]
	return record, ok
}

func makeSearchFixture(t *testing.T) ([]*entities.Node, mapLookup) {
	t.Helper()

	lookup := mapLookup{}
	nodes := []*entities.Node{}

	add := func(name, slug string, content entities.ToolContent) *entities.Node {
		record, err := entities.NewContentRecord(name, slug, content)
		require.NoError(t, err)
		lookup[record.ID()] = record

		pos, err := valueobjects.NewPosition(0, 0)
		require.NoError(t, err)
		node, err := entities.NewNode(record.ID(), pos)
		require.NoError(t, err)
		nodes = append(nodes, node)
		return node
	}

	add("Welcome message", "welcome", entities.MessageContent{Text: "Hello there!"})
	add("Plan picker", "plans", entities.QuestionContent{
		Text:    "Which plan?",
		Options: []string{"Starter", "Premium"},
	})
	add("Contact form", "contact", entities.FormContent{Fields: []entities.FormField{
		{Label: "Email address", Placeholder: "you@example.com", Kind: "email"},
	}})

	return nodes, lookup
}

func TestMatchingNodeIDs_CaseInsensitive(t *testing.T) {
	nodes, lookup := makeSearchFixture(t)
	searcher := NewContentSearcher()

	for _, query := range []string{"hello", "HELLO", "HeLLo"} {
		matches := searcher.MatchingNodeIDs(query, nodes, lookup)
		require.Len(t, matches, 1, "query %q", query)
		assert.True(t, matches[0].Equals(nodes[0].ID()))
	}
}

func TestMatchingNodeIDs_EmptyQueryMatchesNothing(t *testing.T) {
	nodes, lookup := makeSearchFixture(t)
	searcher := NewContentSearcher()

	assert.Empty(t, searcher.MatchingNodeIDs("", nodes, lookup))
	assert.Empty(t, searcher.MatchingNodeIDs("   ", nodes, lookup))
}

func TestMatchingNodeIDs_SearchesAllTextSurfaces(t *testing.T) {
	nodes, lookup := makeSearchFixture(t)
	searcher := NewContentSearcher()

	tests := []struct {
		name  string
		query string
		want  *entities.Node
	}{
		{name: "record name", query: "picker", want: nodes[1]},
		{name: "slug", query: "contact", want: nodes[2]},
		{name: "question option", query: "premium", want: nodes[1]},
		{name: "form placeholder", query: "example.com", want: nodes[2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := searcher.MatchingNodeIDs(tt.query, nodes, lookup)
			require.Len(t, matches, 1)
			assert.True(t, matches[0].Equals(tt.want.ID()))
		})
	}
}

func TestMatchingNodeIDs_NoMatch(t *testing.T) {
	nodes, lookup := makeSearchFixture(t)

	matches := NewContentSearcher().MatchingNodeIDs("zebra", nodes, lookup)

	assert.Empty(t, matches)
}

func TestMatchingNodeIDs_MissingRecordSkipsNode(t *testing.T) {
	nodes, _ := makeSearchFixture(t)

	matches := NewContentSearcher().MatchingNodeIDs("hello", nodes, mapLookup{})

	assert.Empty(t, matches)
}

func TestMatchingNodeIDs_PreservesNodeOrder(t *testing.T) {
	nodes, lookup := makeSearchFixture(t)
	searcher := NewContentSearcher()

	// "a" appears in every record's text surfaces
	matches := searcher.MatchingNodeIDs("a", nodes, lookup)

	require.Len(t, matches, 3)
	for i, match := range matches {
		assert.True(t, match.Equals(nodes[i].ID()))
	}
}
