package formdef

import (
	"sort"

	"github.com/goliatone/go-storefront/pkg/group"
)

// FieldDef is one text input in a group row.
type FieldDef struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Definition describes one repeated group.
type Definition struct {
	Name   string     `json:"name" yaml:"name"`
	Label  string     `json:"label,omitempty" yaml:"label,omitempty"`
	Fields []FieldDef `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Image marks groups whose rows carry a file input.
	Image bool `json:"image,omitempty" yaml:"image,omitempty"`
}

// FieldNames returns the field names in declaration order.
func (d Definition) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Blank returns an empty row for the group.
func (d Definition) Blank() group.Fields {
	return group.NewFields(d.FieldNames()...)
}

// NewGroup opens a store seeded with one blank row. Later options win, so
// callers can pass group.WithInitial to change the seed.
func (d Definition) NewGroup(opts ...group.Option) *group.Store[group.Fields] {
	all := append([]group.Option{group.WithName(d.Name), group.WithInitial(1)}, opts...)
	return group.NewStore(d.Blank, all...)
}

// Store holds definitions by name.
type Store struct {
	defs map[string]Definition
}

// Get returns the definition for name.
func (s *Store) Get(name string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.defs[name]
	return def, ok
}

// Names returns the definition names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.defs))
	for name := range s.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many definitions are stored.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.defs)
}

// Merge returns a store holding s overlaid with other; other wins on names
// present in both.
func (s *Store) Merge(other *Store) *Store {
	out := &Store{defs: make(map[string]Definition)}
	for _, src := range []*Store{s, other} {
		if src == nil {
			continue
		}
		for name, def := range src.defs {
			out.defs[name] = def
		}
	}
	return out
}

// Defaults returns the product form tabs.
func Defaults() *Store {
	defs := []Definition{
		{
			Name:  "specifications",
			Label: "Specifications",
			Fields: []FieldDef{
				{Name: "title", Label: "Title", Type: "text"},
				{Name: "content", Label: "Content", Type: "text"},
			},
		},
		{
			Name:  "sizes",
			Label: "Sizes",
			Fields: []FieldDef{
				{Name: "name", Label: "Size", Type: "text"},
				{Name: "price", Label: "Price", Type: "number"},
			},
		},
		{
			Name:  "colors",
			Label: "Colors",
			Fields: []FieldDef{
				{Name: "name", Label: "Name", Type: "text"},
				{Name: "color_code", Label: "Code", Type: "text"},
			},
		},
		{Name: "gallery", Label: "Gallery", Image: true},
	}
	store := &Store{defs: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		store.defs[def.Name] = def
	}
	return store
}
