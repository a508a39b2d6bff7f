package model

import (
	"slices"

	"github.com/google/uuid"
)

// Repository is the process-wide store of elements for one model. It acts
// as the element factory (assigning identities) and owns deletion,
// including the composite cascade.
//
// The repository is not safe for concurrent use; all mutations must come
// from a single goroutine, typically the UI event loop.
type Repository struct {
	schema   *Schema
	elements map[string]*Element
	order    []string // insertion order, for deterministic iteration
}

// NewRepository creates an empty repository over the given schema.
func NewRepository(s *Schema) *Repository {
	return &Repository{schema: s, elements: make(map[string]*Element)}
}

// Schema returns the schema the repository was created with.
func (r *Repository) Schema() *Schema { return r.schema }

// Create instantiates a new element of the given kind with a fresh id.
func (r *Repository) Create(kind string) (*Element, error) {
	return r.CreateWithID(kind, uuid.NewString())
}

// CreateWithID instantiates an element with an explicit id. This is the
// entry point for persistence loaders that restore saved identities.
func (r *Repository) CreateWithID(kind, id string) (*Element, error) {
	k, ok := r.schema.Kind(kind)
	if !ok {
		return nil, errf(CodeUnknownKind, "kind %s is not registered", kind)
	}
	if id == "" {
		return nil, errf(CodeInvalidValue, "element id must not be empty")
	}
	if _, exists := r.elements[id]; exists {
		return nil, errf(CodeDuplicate, "element id %s already in use", id)
	}
	e := &Element{
		id:    id,
		kind:  k,
		repo:  r,
		attrs: make(map[string]any),
		rels:  make(map[string][]*Element),
	}
	r.elements[id] = e
	r.order = append(r.order, id)
	return e, nil
}

// Element returns the element with the given id.
func (r *Repository) Element(id string) (*Element, bool) {
	e, ok := r.elements[id]
	return e, ok
}

// Elements returns all elements in creation order.
func (r *Repository) Elements() []*Element {
	out := make([]*Element, 0, len(r.elements))
	for _, id := range r.order {
		if e, ok := r.elements[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of elements in the repository.
func (r *Repository) Len() int { return len(r.elements) }

// Delete removes the element from the repository. Values of composite
// relations are deleted first, depth first, then every remaining link is
// cleared so no other element keeps a reference to the deleted one.
func (r *Repository) Delete(e *Element) error {
	if _, ok := r.elements[e.id]; !ok {
		return errf(CodeNotFound, "element %s is not in the repository", e.id)
	}
	r.cascade(e)
	return nil
}

func (r *Repository) cascade(e *Element) {
	rels := r.schema.RelationsFor(e.kind)
	for _, rel := range rels {
		if rel.Derived || !rel.Composite {
			continue
		}
		for _, child := range slices.Clone(e.rels[e.key(rel)]) {
			if _, ok := r.elements[child.id]; ok {
				r.cascade(child)
			}
		}
	}
	for _, rel := range rels {
		if rel.Derived {
			continue
		}
		for _, v := range slices.Clone(e.rels[e.key(rel)]) {
			e.unlink(rel, v)
		}
	}
	delete(r.elements, e.id)
	r.order = slices.DeleteFunc(r.order, func(id string) bool { return id == e.id })
}

// Validate checks graph integrity and returns nil if the repository is
// consistent. It verifies:
//
//  1. Referential symmetry: every bidirectional link is present on both
//     sides, and every stored value still lives in the repository.
//  2. Composite tree shape: self-referential composite relations (such as
//     a presentation's parent/children) contain no cycles.
//
// Mutations through [Element.Set], [Element.Add] and [Element.Remove]
// preserve these invariants; Validate exists as a safety net after bulk
// loads and for tests.
func (r *Repository) Validate() error {
	for _, e := range r.Elements() {
		for _, rel := range r.schema.RelationsFor(e.kind) {
			if rel.Derived {
				continue
			}
			opp := r.schema.opposite(rel)
			for _, v := range e.rels[e.key(rel)] {
				if _, ok := r.elements[v.id]; !ok {
					return errf(CodeInconsistent, "%s.%s references deleted element %s", e.id, rel.Name, v.id)
				}
				if opp != nil && !slices.Contains(v.rels[v.key(opp)], e) {
					return errf(CodeInconsistent, "link %s.%s -> %s has no inverse %s", e.id, rel.Name, v.id, opp.Name)
				}
			}
		}
	}
	return r.validateTrees()
}

// validateTrees runs cycle detection over every self-referential composite
// relation, coloring elements white/gray/black like a DFS.
func (r *Repository) validateTrees() error {
	for _, k := range r.schema.Kinds() {
		for _, name := range k.relOrder {
			rel := k.rels[name]
			if !rel.Composite || rel.Derived || !r.schema.IsSubtype(rel.Type, rel.Owner) {
				continue
			}
			if err := r.detectCycle(rel); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Repository) detectCycle(rel *Relation) error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[*Element]int, len(r.elements))
	var cyclic *Element

	var dfs func(e *Element)
	dfs = func(e *Element) {
		color[e] = gray
		for _, child := range e.rels[e.key(rel)] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				cyclic = child
				return
			}
		}
		color[e] = black
	}

	for _, e := range r.Elements() {
		if !e.IsKind(rel.Owner) {
			continue
		}
		if color[e] == white {
			dfs(e)
			if cyclic != nil {
				return errf(CodeInconsistent, "composite relation %s.%s contains a cycle through %s", rel.Owner, rel.Name, cyclic.id)
			}
		}
	}
	return nil
}
