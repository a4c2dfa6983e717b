package tools

import (
	"sort"

	"github.com/pgeditor/editor/internal/core/ecs"
)

// Selection is the ordered set of props the user picked last.
type Selection struct {
	ids []ecs.EntityID
}

// Set replaces the selection. ids are sorted and deduplicated.
func (s *Selection) Set(ids []ecs.EntityID) {
	out := append([]ecs.EntityID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, id := range out {
		if i == 0 || id != out[n-1] {
			out[n] = id
			n++
		}
	}
	s.ids = out[:n]
}

func (s *Selection) Clear()              { s.ids = nil }
func (s *Selection) Len() int            { return len(s.ids) }
func (s *Selection) IDs() []ecs.EntityID { return s.ids }

func (s *Selection) Contains(id ecs.EntityID) bool {
	i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
	return i < len(s.ids) && s.ids[i] == id
}

// Prune drops ids for which alive reports false, such as props an undo removed.
func (s *Selection) Prune(alive func(ecs.EntityID) bool) {
	n := 0
	for _, id := range s.ids {
		if alive(id) {
			s.ids[n] = id
			n++
		}
	}
	s.ids = s.ids[:n]
}
