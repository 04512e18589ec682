package client

import (
	"sort"
	"strings"

	"docvault/internal/model"
)

// ViewState holds the UI inputs that scope the rendered list.
type ViewState struct {
	SearchText string
	Category   string
}

// Project filters and orders a document list for display. It is a pure
// function over its inputs: the input slice is never mutated and the
// result is a fresh slice.
//
// A document is included iff its category matches (an empty or "all"
// category matches everything) and the search text, when present, is a
// case-insensitive substring of the name or description. The result is
// ordered newest first; equal timestamps fall back to id descending so
// the order is deterministic.
func Project(docs []model.Document, ui ViewState) []model.Document {
	search := strings.ToLower(ui.SearchText)
	wildcard := ui.Category == "" || ui.Category == model.CategoryAll

	out := make([]model.Document, 0, len(docs))
	for _, doc := range docs {
		if !wildcard && doc.CategoryName != ui.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(doc.Name), search) &&
			!strings.Contains(strings.ToLower(doc.Description), search) {
			continue
		}
		out = append(out, doc)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out
}
