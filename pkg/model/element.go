package model

import "slices"

// Element is an instance of a schema kind living in a [Repository].
//
// Relation values are stored per storage key as ordered slices; a to-one
// relation is a slice of length zero or one. Derived unions are never
// stored, they are recomputed from their contributors on every read.
type Element struct {
	id   string
	kind *Kind
	repo *Repository

	attrs map[string]any
	rels  map[string][]*Element
}

// ID returns the element's opaque identity.
func (e *Element) ID() string { return e.id }

// Kind returns the element's kind.
func (e *Element) Kind() *Kind { return e.kind }

// IsKind reports whether the element's kind equals name or inherits from it.
func (e *Element) IsKind(name string) bool {
	return e.repo.schema.IsSubtype(e.kind.Name, name)
}

// =============================================================================
// Attributes
// =============================================================================

// Attr returns the attribute value, or its declared default when unset.
func (e *Element) Attr(name string) (any, error) {
	a, ok := e.repo.schema.resolveAttr(e.kind, name)
	if !ok {
		return nil, errf(CodeUnknownAttribute, "kind %s has no attribute %s", e.kind.Name, name)
	}
	if v, ok := e.attrs[a.Name]; ok {
		return v, nil
	}
	return a.defaultValue(), nil
}

// AttrString returns a string or enum attribute value.
func (e *Element) AttrString(name string) (string, error) {
	v, err := e.Attr(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", errf(CodeTypeMismatch, "attribute %s.%s is not a string", e.kind.Name, name)
	}
	return s, nil
}

// AttrInt returns an integer attribute value.
func (e *Element) AttrInt(name string) (int, error) {
	v, err := e.Attr(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, errf(CodeTypeMismatch, "attribute %s.%s is not an int", e.kind.Name, name)
	}
	return n, nil
}

// SetAttr assigns an attribute value, validating the value type and, for
// enums, membership in the declared literal set.
func (e *Element) SetAttr(name string, v any) error {
	a, ok := e.repo.schema.resolveAttr(e.kind, name)
	if !ok {
		return errf(CodeUnknownAttribute, "kind %s has no attribute %s", e.kind.Name, name)
	}
	switch a.Type {
	case AttrString:
		if _, ok := v.(string); !ok {
			return errf(CodeTypeMismatch, "attribute %s.%s requires a string, got %T", e.kind.Name, name, v)
		}
	case AttrInt:
		if _, ok := v.(int); !ok {
			return errf(CodeTypeMismatch, "attribute %s.%s requires an int, got %T", e.kind.Name, name, v)
		}
	case AttrEnum:
		s, ok := v.(string)
		if !ok {
			return errf(CodeTypeMismatch, "attribute %s.%s requires a string, got %T", e.kind.Name, name, v)
		}
		if !slices.Contains(a.Values, s) {
			return errf(CodeInvalidValue, "attribute %s.%s does not allow %q (allowed: %v)", e.kind.Name, name, s, a.Values)
		}
	}
	e.attrs[a.Name] = v
	return nil
}

// =============================================================================
// Relation reads
// =============================================================================

// Get returns the current values of the relation. For derived unions the
// result is computed from the contributors; for stored relations it is a
// copy of the stored collection.
func (e *Element) Get(name string) ([]*Element, error) {
	r, ok := e.repo.schema.resolve(e.kind, name)
	if !ok {
		return nil, errf(CodeUnknownRelation, "kind %s has no relation %s", e.kind.Name, name)
	}
	if r.Derived {
		return e.union(r), nil
	}
	return slices.Clone(e.rels[e.key(r)]), nil
}

// GetOne returns the single value of a to-one relation, or nil when unset.
func (e *Element) GetOne(name string) (*Element, error) {
	r, ok := e.repo.schema.resolve(e.kind, name)
	if !ok {
		return nil, errf(CodeUnknownRelation, "kind %s has no relation %s", e.kind.Name, name)
	}
	if r.IsMany() {
		return nil, errf(CodeCardinality, "relation %s.%s holds a collection; use Get", e.kind.Name, name)
	}
	if r.Derived {
		if vals := e.union(r); len(vals) > 0 {
			return vals[0], nil
		}
		return nil, nil
	}
	if vals := e.rels[e.key(r)]; len(vals) > 0 {
		return vals[0], nil
	}
	return nil, nil
}

// union evaluates a derived union: contributors in registration order, each
// contributor's own iteration order preserved, duplicates removed by
// identity. Only contributors declared on the element's kind (or a
// supertype) apply.
func (e *Element) union(r *Relation) []*Element {
	var out []*Element
	seen := make(map[*Element]bool)
	for _, c := range r.contributors {
		if !e.repo.schema.IsSubtype(e.kind.Name, c.Owner) {
			continue
		}
		for _, v := range e.rels[e.key(c)] {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// =============================================================================
// Relation writes
// =============================================================================

// Set assigns the value of a to-one relation, replacing any previous value.
// The old link and, when the opposite side is to-one, the value's previous
// link are cleared first so both sides stay symmetric. A nil value clears
// the relation.
func (e *Element) Set(name string, v *Element) error {
	r, err := e.writableRelation(name)
	if err != nil {
		return err
	}
	if r.IsMany() {
		return errf(CodeCardinality, "relation %s.%s holds a collection; use Add", e.kind.Name, name)
	}
	if v == nil {
		if cur := first(e.rels[e.key(r)]); cur != nil {
			e.unlink(r, cur)
		}
		return nil
	}
	if err := e.checkTarget(r, v); err != nil {
		return err
	}
	if cur := first(e.rels[e.key(r)]); cur == v {
		return nil
	}
	if err := e.checkCycle(r, v); err != nil {
		return err
	}
	e.link(r, v)
	return nil
}

// Add appends a value to a to-many relation. Adding a value that is
// already present is a no-op. On a to-one relation Add only succeeds when
// the relation is empty; replacing requires an explicit Set.
func (e *Element) Add(name string, v *Element) error {
	r, err := e.writableRelation(name)
	if err != nil {
		return err
	}
	if v == nil {
		return errf(CodeInvalidValue, "cannot add nil to relation %s.%s", e.kind.Name, name)
	}
	if err := e.checkTarget(r, v); err != nil {
		return err
	}
	cur := e.rels[e.key(r)]
	if slices.Contains(cur, v) {
		return nil
	}
	if !r.IsMany() && len(cur) > 0 {
		return errf(CodeCardinality, "relation %s.%s already has a value; use Set to replace", e.kind.Name, name)
	}
	if err := e.checkCycle(r, v); err != nil {
		return err
	}
	e.link(r, v)
	return nil
}

// Remove removes a value from the relation, clearing the opposite side.
// Removing an absent value fails with CodeNotFound.
func (e *Element) Remove(name string, v *Element) error {
	r, err := e.writableRelation(name)
	if err != nil {
		return err
	}
	if v == nil || !slices.Contains(e.rels[e.key(r)], v) {
		return errf(CodeNotFound, "relation %s.%s does not contain the value", e.kind.Name, name)
	}
	e.unlink(r, v)
	return nil
}

// writableRelation resolves name and rejects writes to derived unions.
func (e *Element) writableRelation(name string) (*Relation, error) {
	r, ok := e.repo.schema.resolve(e.kind, name)
	if !ok {
		return nil, errf(CodeUnknownRelation, "kind %s has no relation %s", e.kind.Name, name)
	}
	if r.Derived {
		return nil, errf(CodeReadOnlyRelation, "relation %s.%s is derived and read-only", e.kind.Name, name)
	}
	return r, nil
}

// checkTarget validates the value's kind and repository membership.
func (e *Element) checkTarget(r *Relation, v *Element) error {
	if v.repo != e.repo {
		return errf(CodeTypeMismatch, "element %s belongs to a different repository", v.id)
	}
	if !e.repo.schema.IsSubtype(v.kind.Name, r.Type) {
		return errf(CodeTypeMismatch, "relation %s.%s requires %s, got %s", e.kind.Name, r.Name, r.Type, v.kind.Name)
	}
	return nil
}

// checkCycle rejects mutations that would make an element its own
// transitive composite owner (e.g. reparenting a presentation under one of
// its descendants). Only self-referential composite pairs are affected.
func (e *Element) checkCycle(r *Relation, v *Element) error {
	opp := e.repo.schema.opposite(r)
	if opp == nil {
		return nil
	}
	var parent, child *Element
	var parentKey string
	switch {
	case r.Composite && opp.Upper == 1:
		// e is the owner side (children-like): walking e's owners must not reach v.
		parent, child, parentKey = e, v, e.key(opp)
	case r.Upper == 1 && opp.Composite:
		// e picks its owner (parent-like): walking v's owners must not reach e.
		parent, child, parentKey = v, e, e.key(r)
	default:
		return nil
	}
	for cur := parent; cur != nil; cur = first(cur.rels[parentKey]) {
		if cur == child {
			return errf(CodeOwnershipCycle, "element %s would become its own owner", child.id)
		}
	}
	return nil
}

// key returns the storage key for the relation on this element.
func (e *Element) key(r *Relation) string { return e.repo.schema.storageKey(r) }

// link inserts v into r and e into r's opposite. Callers have validated the
// mutation; link itself cannot fail and applies both sides as one unit.
func (e *Element) link(r *Relation, v *Element) {
	if r.Upper == 1 {
		if cur := first(e.rels[e.key(r)]); cur != nil {
			e.unlink(r, cur)
		}
	}
	if opp := e.repo.schema.opposite(r); opp != nil && opp.Upper == 1 {
		if cur := first(v.rels[v.key(opp)]); cur != nil {
			v.unlink(opp, cur)
		}
	}
	e.rels[e.key(r)] = append(e.rels[e.key(r)], v)
	if opp := e.repo.schema.opposite(r); opp != nil {
		v.rels[v.key(opp)] = append(v.rels[v.key(opp)], e)
	}
}

// unlink removes v from r and e from r's opposite.
func (e *Element) unlink(r *Relation, v *Element) {
	k := e.key(r)
	e.rels[k] = deleteElem(e.rels[k], v)
	if opp := e.repo.schema.opposite(r); opp != nil {
		ok := v.key(opp)
		v.rels[ok] = deleteElem(v.rels[ok], e)
	}
}

func first(vals []*Element) *Element {
	if len(vals) > 0 {
		return vals[0]
	}
	return nil
}

func deleteElem(vals []*Element, v *Element) []*Element {
	return slices.DeleteFunc(vals, func(x *Element) bool { return x == v })
}
