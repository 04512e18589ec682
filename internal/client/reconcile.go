package client

import (
	"docvault/internal/model"
)

// Surface is the minimal rendering capability the reconciler drives.
// Implementations keep an ordered list of elements keyed by document
// id; the reconciler never inspects element internals, only keys.
type Surface interface {
	// Keys returns the keys of the rendered elements in display order.
	Keys() []int64
	// Create appends a new element for the document.
	Create(doc model.Document)
	// Update patches the mutable display fields of an existing element
	// without replacing it.
	Update(key int64, doc model.Document)
	// Move repositions the element for key so it occupies index
	// (insert-before semantics).
	Move(key int64, index int)
	// Remove destroys the element for key.
	Remove(key int64)
}

// display is the set of fields a card shows that can change without the
// key changing. The reconciler patches an element only when these
// differ from what it last rendered.
type display struct {
	name        string
	description string
	date        string
	size        string
	favorite    bool
}

func displayOf(doc model.Document) display {
	size := doc.FileSize
	if size == "" {
		size = "-"
	}
	return display{
		name:        doc.Name,
		description: doc.Description,
		date:        doc.CreatedAt.Format("2 Jan 2006"),
		size:        size,
		favorite:    doc.Favorite,
	}
}

// Reconciler patches a Surface so its element list matches a target
// document list, preserving element identity by key: an element whose
// key appears in both the previous and next target is updated and
// moved, never destroyed and recreated. Reconciling twice with the
// same target performs zero surface mutations on the second pass.
type Reconciler struct {
	rendered map[int64]display
}

// NewReconciler creates a reconciler with no rendering history.
func NewReconciler() *Reconciler {
	return &Reconciler{rendered: make(map[int64]display)}
}

// Apply mutates the surface to match target.
//
// The positional pass re-reads the surface order per element, which is
// worst-case quadratic for heavily reordered lists. List sizes are
// bounded by the server-side document cap, so this stays cheap in
// practice.
func (r *Reconciler) Apply(s Surface, target []model.Document) {
	// Index the currently rendered elements by key.
	existing := make(map[int64]struct{})
	for _, key := range s.Keys() {
		existing[key] = struct{}{}
	}

	// Update elements that survive, create the rest.
	for _, doc := range target {
		next := displayOf(doc)
		if _, ok := existing[doc.ID]; ok {
			if r.rendered[doc.ID] != next {
				s.Update(doc.ID, doc)
			}
			delete(existing, doc.ID)
		} else {
			s.Create(doc)
		}
		r.rendered[doc.ID] = next
	}

	// Whatever is left was removed from the target.
	for key := range existing {
		s.Remove(key)
		delete(r.rendered, key)
	}

	// Fix positions so surface order equals target order.
	for i, doc := range target {
		keys := s.Keys()
		if i < len(keys) && keys[i] == doc.ID {
			continue
		}
		s.Move(doc.ID, i)
	}
}
