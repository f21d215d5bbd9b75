package pattern

import "fmt"

// Layer is the output of one generator call: a named, ordered shape list.
type Layer struct {
	Name      string  `json:"name"`
	Generator string  `json:"generator"` // e.g. "koch-snowflake"
	Shapes    []Shape `json:"shapes"`
}

// Count returns the number of shapes of kind k in the layer.
func (l *Layer) Count(k ShapeKind) int {
	n := 0
	for _, s := range l.Shapes {
		if s.Kind() == k {
			n++
		}
	}
	return n
}

// Set is an ordered collection of layers. Scripts and jobs build a fresh Set
// per evaluation; it is never shared between evaluations.
type Set struct {
	Layers    []*Layer       `json:"layers"`
	NameIndex map[string]int `json:"name_index"`
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{NameIndex: make(map[string]int)}
}

// Add appends a layer. Adding a second layer with an existing name is an
// error; an empty name is rejected too.
func (s *Set) Add(l *Layer) error {
	if l.Name == "" {
		return fmt.Errorf("pattern: layer name must not be empty")
	}
	if _, ok := s.NameIndex[l.Name]; ok {
		return fmt.Errorf("pattern: duplicate layer name %q", l.Name)
	}
	s.NameIndex[l.Name] = len(s.Layers)
	s.Layers = append(s.Layers, l)
	return nil
}

// Lookup returns the layer with the given name, or nil.
func (s *Set) Lookup(name string) *Layer {
	i, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Layers[i]
}

// LayerCount returns the number of layers.
func (s *Set) LayerCount() int {
	return len(s.Layers)
}

// ShapeCount returns the total number of shapes over all layers.
func (s *Set) ShapeCount() int {
	n := 0
	for _, l := range s.Layers {
		n += len(l.Shapes)
	}
	return n
}
