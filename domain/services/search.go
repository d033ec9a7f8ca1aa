package services

import (
	"strings"

	"flowcanvas/domain/core/entities"
	"flowcanvas/domain/core/valueobjects"
)

// ContentLookup resolves a node's content record by id. A miss is not an
// error: the node simply cannot match.
type ContentLookup interface {
	ContentByID(id string) (*entities.ContentRecord, bool)
}

// ContentSearcher scans content records for a query string. Matching is
// recomputed in full on every call; at canvas scale there is nothing to
// gain from incremental indexing.
type ContentSearcher struct{}

// NewContentSearcher creates a content searcher
func NewContentSearcher() *ContentSearcher {
	return &ContentSearcher{}
}

// MatchingNodeIDs returns the ids of every node whose content record
// matches the query: a case-insensitive substring test against the record
// name, slug, and every populated text field of the tool variant. An empty
// or whitespace-only query matches nothing.
func (s *ContentSearcher) MatchingNodeIDs(
	query string,
	nodes []*entities.Node,
	lookup ContentLookup,
) []valueobjects.NodeID {
	matches := []valueobjects.NodeID{}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return matches
	}

	for _, node := range nodes {
		record, ok := lookup.ContentByID(node.ContentID())
		if !ok {
			continue
		}
		if s.recordMatches(record, needle) {
			matches = append(matches, node.ID())
		}
	}

	return matches
}

func (s *ContentSearcher) recordMatches(record *entities.ContentRecord, needle string) bool {
	if strings.Contains(strings.ToLower(record.Name()), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(record.Slug()), needle) {
		return true
	}
	for _, text := range record.Content().SearchText() {
		if text == "" {
			continue
		}
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}
