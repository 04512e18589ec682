package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docvault/internal/model"
)

func docAt(id int64, name, category, description string, createdAt time.Time) model.Document {
	return model.Document{
		ID:           id,
		Name:         name,
		CategoryName: category,
		Description:  description,
		CreatedAt:    createdAt,
	}
}

func TestProject(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := []model.Document{
		docAt(1, "Invoice Report", "rapport", "monthly numbers", base),
		docAt(2, "Contract A", "contrat", "Q1 terms", base.Add(2*time.Hour)),
		docAt(3, "Old Slide Deck", "presentation", "", base.Add(-48*time.Hour)),
		docAt(4, "Contract B", "contrat", "renewal", base.Add(time.Hour)),
	}

	t.Run("wildcard category with empty search keeps everything, newest first", func(t *testing.T) {
		got := Project(store, ViewState{Category: model.CategoryAll})

		assert.Len(t, got, len(store))
		ids := make([]int64, 0, len(got))
		for _, d := range got {
			ids = append(ids, d.ID)
		}
		assert.Equal(t, []int64{2, 4, 1, 3}, ids)
	})

	t.Run("empty category behaves like the wildcard", func(t *testing.T) {
		assert.Equal(t,
			Project(store, ViewState{Category: model.CategoryAll}),
			Project(store, ViewState{}),
		)
	})

	t.Run("category filter", func(t *testing.T) {
		got := Project(store, ViewState{Category: "contrat"})

		assert.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].ID)
		assert.Equal(t, int64(4), got[1].ID)
	})

	t.Run("search is case-insensitive over name", func(t *testing.T) {
		got := Project(store, ViewState{Category: model.CategoryAll, SearchText: "INVO"})

		assert.Len(t, got, 1)
		assert.Equal(t, "Invoice Report", got[0].Name)
	})

	t.Run("search matches description too", func(t *testing.T) {
		got := Project(store, ViewState{Category: model.CategoryAll, SearchText: "renewal"})

		assert.Len(t, got, 1)
		assert.Equal(t, int64(4), got[0].ID)
	})

	t.Run("search and category compose", func(t *testing.T) {
		got := Project(store, ViewState{Category: "contrat", SearchText: "q1"})

		assert.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("equal timestamps fall back to id descending", func(t *testing.T) {
		same := []model.Document{
			docAt(5, "a", "autre", "", base),
			docAt(9, "b", "autre", "", base),
			docAt(7, "c", "autre", "", base),
		}

		got := Project(same, ViewState{Category: model.CategoryAll})

		assert.Equal(t, int64(9), got[0].ID)
		assert.Equal(t, int64(7), got[1].ID)
		assert.Equal(t, int64(5), got[2].ID)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		before := make([]model.Document, len(store))
		copy(before, store)

		Project(store, ViewState{Category: model.CategoryAll})

		assert.Equal(t, before, store)
	})
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, categoryStyles["contrat"], StyleFor("contrat"))
	assert.Equal(t, categoryStyles["autre"], StyleFor("no-such-category"))
	assert.Equal(t, categoryStyles["autre"], StyleFor(""))
}

func TestTypeIcon(t *testing.T) {
	assert.Equal(t, typeIcons["pdf"], TypeIcon("pdf"))
	assert.Equal(t, typeIcons["other"], TypeIcon("weird"))
}

func TestStore(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Len())

	docs := []model.Document{docAt(1, "a", "autre", "", time.Now())}
	s.Replace(docs)
	assert.Equal(t, 1, s.Len())

	// Mutating the snapshot must not leak back into the store.
	snap := s.Snapshot()
	snap[0].Name = "changed"
	assert.Equal(t, "a", s.Snapshot()[0].Name)

	// Mutating the caller's slice after Replace must not either.
	docs[0].Name = "changed"
	assert.Equal(t, "a", s.Snapshot()[0].Name)
}
