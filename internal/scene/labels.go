package scene

import (
	"sort"

	"github.com/globemeasure/measure/internal/measure"
	"github.com/globemeasure/measure/pkg/core"
)

// Label is a rendered text annotation.
type Label struct {
	Handle measure.LabelHandle
	Text   string
	Anchor core.WorldPoint
	Style  core.LabelStyle
}

// LabelCollection keeps labels in memory.
type LabelCollection struct {
	next   measure.LabelHandle
	labels map[measure.LabelHandle]Label
}

func newLabelCollection() *LabelCollection {
	return &LabelCollection{labels: make(map[measure.LabelHandle]Label)}
}

func (c *LabelCollection) Add(text string, anchor core.WorldPoint, style core.LabelStyle) measure.LabelHandle {
	c.next++
	c.labels[c.next] = Label{Handle: c.next, Text: text, Anchor: anchor, Style: style}
	return c.next
}

func (c *LabelCollection) Remove(h measure.LabelHandle) {
	delete(c.labels, h)
}

func (c *LabelCollection) RemoveAll() {
	clear(c.labels)
}

// Labels returns the labels in creation order.
func (c *LabelCollection) Labels() []Label {
	out := make([]Label, 0, len(c.labels))
	for _, l := range c.labels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Len returns the number of labels.
func (c *LabelCollection) Len() int {
	return len(c.labels)
}

// Scene holds the label collections of every measurement.
type Scene struct {
	collections []*LabelCollection
}

// AddLabelCollection creates and attaches a new collection.
func (s *Scene) AddLabelCollection() measure.LabelCollection {
	c := newLabelCollection()
	s.collections = append(s.collections, c)
	return c
}

// RemoveLabelCollection detaches c. Unknown collections are ignored.
func (s *Scene) RemoveLabelCollection(c measure.LabelCollection) {
	for i, own := range s.collections {
		if measure.LabelCollection(own) == c {
			s.collections = append(s.collections[:i], s.collections[i+1:]...)
			return
		}
	}
}

// Collections returns the attached collections.
func (s *Scene) Collections() []*LabelCollection {
	return s.collections
}

// Labels returns every label of every collection.
func (s *Scene) Labels() []Label {
	var out []Label
	for _, c := range s.collections {
		out = append(out, c.Labels()...)
	}
	return out
}
