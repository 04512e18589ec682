package cli

import (
	"fmt"
	"io"

	"docvault/internal/client"
	"docvault/internal/model"
)

// termSurface renders document cards as text lines. It satisfies
// client.Surface, so the reconciler drives it the same way it would a
// DOM-like target.
type termSurface struct {
	nodes []*card
}

type card struct {
	key  int64
	line string
}

func newTermSurface() *termSurface {
	return &termSurface{}
}

func cardLine(doc model.Document) string {
	style := client.StyleFor(doc.CategoryName)
	star := " "
	if doc.Favorite {
		star = "*"
	}
	size := doc.FileSize
	if size == "" {
		size = "-"
	}
	return fmt.Sprintf("%s [%d] %s %s (%s) %s %s",
		star, doc.ID, client.TypeIcon(doc.FileType), doc.Name,
		style.Icon+" "+doc.CategoryName,
		doc.CreatedAt.Format("2 Jan 2006"), size)
}

func (s *termSurface) Keys() []int64 {
	keys := make([]int64, len(s.nodes))
	for i, n := range s.nodes {
		keys[i] = n.key
	}
	return keys
}

func (s *termSurface) Create(doc model.Document) {
	s.nodes = append(s.nodes, &card{key: doc.ID, line: cardLine(doc)})
}

func (s *termSurface) Update(key int64, doc model.Document) {
	for _, n := range s.nodes {
		if n.key == key {
			n.line = cardLine(doc)
			return
		}
	}
}

func (s *termSurface) Move(key int64, index int) {
	from := -1
	for i, n := range s.nodes {
		if n.key == key {
			from = i
			break
		}
	}
	if from == -1 || from == index || index >= len(s.nodes) {
		return
	}
	n := s.nodes[from]
	s.nodes = append(s.nodes[:from], s.nodes[from+1:]...)
	s.nodes = append(s.nodes[:index], append([]*card{n}, s.nodes[index:]...)...)
}

func (s *termSurface) Remove(key int64) {
	for i, n := range s.nodes {
		if n.key == key {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return
		}
	}
}

// Render writes the current card list to w.
func (s *termSurface) Render(w io.Writer) {
	if len(s.nodes) == 0 {
		fmt.Fprintln(w, "no documents")
		return
	}
	for _, n := range s.nodes {
		fmt.Fprintln(w, n.line)
	}
}
