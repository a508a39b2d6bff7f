package model

// AttrType is the value type of an attribute.
type AttrType int

const (
	// AttrString holds free text.
	AttrString AttrType = iota
	// AttrInt holds an integer flag or counter.
	AttrInt
	// AttrEnum holds one of a fixed set of string literals.
	AttrEnum
)

// Attribute describes a typed attribute of a kind.
type Attribute struct {
	Name    string
	Type    AttrType
	Default any      // zero value of the type when nil
	Values  []string // allowed literals, AttrEnum only
}

// defaultValue returns the declared default, or the type's zero value.
func (a *Attribute) defaultValue() any {
	if a.Default != nil {
		return a.Default
	}
	switch a.Type {
	case AttrInt:
		return 0
	default:
		return ""
	}
}

// Relation describes one end of an association between two kinds.
//
// A relation with a non-empty Opposite is bidirectional: linking a value
// through it also links the holder through the opposite relation on the
// target kind, and both sides are kept symmetric on every mutation.
type Relation struct {
	Owner     string // kind that declares the relation
	Name      string
	Type      string // target kind
	Upper     int    // 1 = at most one value, 0 = unbounded
	Composite bool   // holder owns the values; deletion cascades
	Opposite  string // relation name on the target kind, "" if one-way
	Derived   bool   // read-only union of contributor relations
	Redefines string // name of a supertype relation sharing storage

	contributors []*Relation // for derived unions, in registration order
}

// IsMany reports whether the relation holds a collection.
func (r *Relation) IsMany() bool { return r.Upper != 1 }

// Kind is an entity kind: a named schema entry with attributes and
// relations, optionally inheriting from a super kind.
type Kind struct {
	Name  string
	Super string // "" for the root kind

	schema    *Schema
	attrs     map[string]*Attribute
	attrOrder []string
	rels      map[string]*Relation
	relOrder  []string
}

// Schema is a registry of kinds. It is populated once at startup (see
// [CoreSchema]) and treated as immutable afterwards; registration order is
// preserved and determines iteration and derived-union evaluation order.
type Schema struct {
	kinds map[string]*Kind
	order []string
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{kinds: make(map[string]*Kind)}
}

// AddKind registers a new kind. The super kind must already be registered
// (or be "" for the root kind).
func (s *Schema) AddKind(name, super string) (*Kind, error) {
	if name == "" {
		return nil, errf(CodeUnknownKind, "kind name must not be empty")
	}
	if _, exists := s.kinds[name]; exists {
		return nil, errf(CodeDuplicate, "kind %s already registered", name)
	}
	if super != "" {
		if _, ok := s.kinds[super]; !ok {
			return nil, errf(CodeUnknownKind, "super kind %s of %s not registered", super, name)
		}
	}
	k := &Kind{
		Name:   name,
		Super:  super,
		schema: s,
		attrs:  make(map[string]*Attribute),
		rels:   make(map[string]*Relation),
	}
	s.kinds[name] = k
	s.order = append(s.order, name)
	return k, nil
}

// Kind returns the kind with the given name.
func (s *Schema) Kind(name string) (*Kind, bool) {
	k, ok := s.kinds[name]
	return k, ok
}

// Kinds returns all kinds in registration order.
func (s *Schema) Kinds() []*Kind {
	out := make([]*Kind, len(s.order))
	for i, name := range s.order {
		out[i] = s.kinds[name]
	}
	return out
}

// IsSubtype reports whether kind equals ancestor or inherits from it.
func (s *Schema) IsSubtype(kind, ancestor string) bool {
	for cur, ok := s.kinds[kind]; ok; cur, ok = s.kinds[cur.Super] {
		if cur.Name == ancestor {
			return true
		}
		if cur.Super == "" {
			return false
		}
	}
	return false
}

// AddAttribute declares an attribute on the kind.
func (k *Kind) AddAttribute(a Attribute) (*Attribute, error) {
	if _, exists := k.attrs[a.Name]; exists {
		return nil, errf(CodeDuplicate, "attribute %s.%s already registered", k.Name, a.Name)
	}
	if a.Type == AttrEnum && len(a.Values) == 0 {
		return nil, errf(CodeInvalidValue, "enum attribute %s.%s has no values", k.Name, a.Name)
	}
	attr := &a
	k.attrs[a.Name] = attr
	k.attrOrder = append(k.attrOrder, a.Name)
	return attr, nil
}

// AddRelation declares a relation on the kind. The target kind must already
// be registered; the opposite relation is resolved lazily since the two
// ends reference each other.
func (k *Kind) AddRelation(r Relation) (*Relation, error) {
	if _, exists := k.rels[r.Name]; exists {
		return nil, errf(CodeDuplicate, "relation %s.%s already registered", k.Name, r.Name)
	}
	if _, ok := k.schema.kinds[r.Type]; !ok {
		return nil, errf(CodeUnknownKind, "relation %s.%s targets unknown kind %s", k.Name, r.Name, r.Type)
	}
	if r.Redefines != "" {
		if _, ok := k.schema.resolve(k.schema.kinds[k.Super], r.Redefines); !ok {
			return nil, errf(CodeUnknownRelation, "relation %s.%s redefines unknown relation %s", k.Name, r.Name, r.Redefines)
		}
	}
	r.Owner = k.Name
	rel := &r
	k.rels[r.Name] = rel
	k.relOrder = append(k.relOrder, r.Name)
	return rel, nil
}

// AddContributor registers contrib as a contributor of the derived union.
// Reading the union yields the set union of all contributors, evaluated in
// the order they were added here.
func (s *Schema) AddContributor(union, contrib *Relation) error {
	if !union.Derived {
		return errf(CodeReadOnlyRelation, "relation %s.%s is not a derived union", union.Owner, union.Name)
	}
	if contrib.Derived {
		return errf(CodeInvalidValue, "contributor %s.%s must not itself be derived", contrib.Owner, contrib.Name)
	}
	union.contributors = append(union.contributors, contrib)
	return nil
}

// resolve finds the relation visible under name on the kind, walking the
// inheritance chain from the most derived kind upwards. A relation that
// redefines name (directly or through a chain) shadows the original
// declaration, so reads and writes through either name share storage.
func (s *Schema) resolve(k *Kind, name string) (*Relation, bool) {
	for cur := k; cur != nil; {
		for _, rn := range cur.relOrder {
			r := cur.rels[rn]
			if r.Name == name || s.redefinitionOf(r, name) {
				return r, true
			}
		}
		if cur.Super == "" {
			break
		}
		cur = s.kinds[cur.Super]
	}
	return nil, false
}

// redefinitionOf reports whether r (transitively) redefines name.
func (s *Schema) redefinitionOf(r *Relation, name string) bool {
	for cur := r; cur.Redefines != ""; {
		if cur.Redefines == name {
			return true
		}
		owner := s.kinds[cur.Owner]
		next, ok := s.resolve(s.kinds[owner.Super], cur.Redefines)
		if !ok {
			return false
		}
		cur = next
	}
	return false
}

// storageKey returns the name under which the relation's values are stored:
// the root of its redefinition chain. Redefining relations thereby share
// storage with the relation they redefine.
func (s *Schema) storageKey(r *Relation) string {
	cur := r
	for cur.Redefines != "" {
		owner := s.kinds[cur.Owner]
		next, ok := s.resolve(s.kinds[owner.Super], cur.Redefines)
		if !ok || next == cur {
			break
		}
		cur = next
	}
	return cur.Name
}

// resolveAttr finds the attribute visible under name on the kind, walking
// the inheritance chain.
func (s *Schema) resolveAttr(k *Kind, name string) (*Attribute, bool) {
	for cur := k; cur != nil; {
		if a, ok := cur.attrs[name]; ok {
			return a, true
		}
		if cur.Super == "" {
			break
		}
		cur = s.kinds[cur.Super]
	}
	return nil, false
}

// AttributesFor returns all attributes of the kind including inherited
// ones, root kind first, each in declaration order.
func (s *Schema) AttributesFor(k *Kind) []*Attribute {
	var chain []*Kind
	for cur := k; cur != nil; {
		chain = append(chain, cur)
		if cur.Super == "" {
			break
		}
		cur = s.kinds[cur.Super]
	}
	var out []*Attribute
	for i := len(chain) - 1; i >= 0; i-- {
		for _, name := range chain[i].attrOrder {
			out = append(out, chain[i].attrs[name])
		}
	}
	return out
}

// RelationsFor returns all relations visible on the kind including
// inherited ones, root kind first. When a subtype redefines a relation,
// only the most derived declaration is included.
func (s *Schema) RelationsFor(k *Kind) []*Relation {
	var chain []*Kind
	for cur := k; cur != nil; {
		chain = append(chain, cur)
		if cur.Super == "" {
			break
		}
		cur = s.kinds[cur.Super]
	}
	// First pass, most derived first: decide which declaration owns each
	// storage key, so redefinitions shadow the relation they redefine.
	claimed := make(map[string]*Relation)
	for _, kind := range chain {
		for _, name := range kind.relOrder {
			r := kind.rels[name]
			key := s.storageKey(r)
			if _, ok := claimed[key]; !ok {
				claimed[key] = r
			}
		}
	}
	// Second pass, root first, preserving declaration order.
	var out []*Relation
	for i := len(chain) - 1; i >= 0; i-- {
		for _, name := range chain[i].relOrder {
			r := chain[i].rels[name]
			if claimed[s.storageKey(r)] == r {
				out = append(out, r)
			}
		}
	}
	return out
}

// opposite resolves the opposite end of r on its target kind.
// Returns nil for one-way relations.
func (s *Schema) opposite(r *Relation) *Relation {
	if r.Opposite == "" {
		return nil
	}
	target, ok := s.kinds[r.Type]
	if !ok {
		return nil
	}
	opp, ok := s.resolve(target, r.Opposite)
	if !ok {
		return nil
	}
	return opp
}

// must unwraps a registration result; schema construction errors are
// programming errors, so they abort startup.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustOK(err error) {
	if err != nil {
		panic(err)
	}
}
