package model

import "testing"

// mustCreate is a test helper that fails the test on creation errors.
func mustCreate(t *testing.T, r *Repository, kind string) *Element {
	t.Helper()
	e, err := r.Create(kind)
	if err != nil {
		t.Fatalf("Create(%s): %v", kind, err)
	}
	return e
}

func TestSetAttr(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		attr     string
		value    any
		wantCode Code
	}{
		{
			name:  "String",
			kind:  KindComment,
			attr:  "body",
			value: "a note",
		},
		{
			name:  "Int",
			kind:  KindPendingChange,
			attr:  "applied",
			value: 1,
		},
		{
			name:  "EnumValid",
			kind:  KindPendingChange,
			attr:  "op",
			value: OpRemove,
		},
		{
			name:     "EnumOutsideValues",
			kind:     KindPendingChange,
			attr:     "op",
			value:    "rename",
			wantCode: CodeInvalidValue,
		},
		{
			name:     "StringGetsInt",
			kind:     KindComment,
			attr:     "body",
			value:    42,
			wantCode: CodeTypeMismatch,
		},
		{
			name:     "IntGetsString",
			kind:     KindPendingChange,
			attr:     "applied",
			value:    "yes",
			wantCode: CodeTypeMismatch,
		},
		{
			name:     "UnknownAttribute",
			kind:     KindComment,
			attr:     "title",
			value:    "x",
			wantCode: CodeUnknownAttribute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRepository(CoreSchema())
			e := mustCreate(t, r, tt.kind)

			err := e.SetAttr(tt.attr, tt.value)
			if tt.wantCode != "" {
				if !IsCode(err, tt.wantCode) {
					t.Fatalf("SetAttr error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetAttr: %v", err)
			}

			got, err := e.Attr(tt.attr)
			if err != nil {
				t.Fatalf("Attr: %v", err)
			}
			if got != tt.value {
				t.Errorf("Attr = %v, want %v", got, tt.value)
			}
		})
	}
}

func TestAttrDefaults(t *testing.T) {
	r := NewRepository(CoreSchema())

	c := mustCreate(t, r, KindComment)
	if body, _ := c.AttrString("body"); body != "" {
		t.Errorf("body = %q, want empty default", body)
	}

	p := mustCreate(t, r, KindValueChange)
	if applied, _ := p.AttrInt("applied"); applied != 0 {
		t.Errorf("applied = %d, want 0", applied)
	}
	if op, _ := p.AttrString("op"); op != OpAdd {
		t.Errorf("op = %q, want %q", op, OpAdd)
	}
}

func TestSetToOne(t *testing.T) {
	r := NewRepository(CoreSchema())
	e1 := mustCreate(t, r, KindElement)
	e2 := mustCreate(t, r, KindElement)
	p := mustCreate(t, r, KindPresentation)

	if err := p.Set("subject", e1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := p.GetOne("subject"); got != e1 {
		t.Fatalf("subject = %v, want e1", got)
	}
	if back, _ := e1.Get("presentation"); len(back) != 1 || back[0] != p {
		t.Fatalf("e1.presentation = %v, want [p]", back)
	}

	// Replacing moves the inverse link from e1 to e2.
	if err := p.Set("subject", e2); err != nil {
		t.Fatalf("Set replace: %v", err)
	}
	if got, _ := p.GetOne("subject"); got != e2 {
		t.Errorf("subject = %v, want e2", got)
	}
	if back, _ := e1.Get("presentation"); len(back) != 0 {
		t.Errorf("e1.presentation = %v, want empty after replace", back)
	}
	if back, _ := e2.Get("presentation"); len(back) != 1 || back[0] != p {
		t.Errorf("e2.presentation = %v, want [p]", back)
	}

	// Setting the current value again is a no-op.
	if err := p.Set("subject", e2); err != nil {
		t.Errorf("Set same value: %v", err)
	}

	// Nil clears both sides.
	if err := p.Set("subject", nil); err != nil {
		t.Fatalf("Set nil: %v", err)
	}
	if got, _ := p.GetOne("subject"); got != nil {
		t.Errorf("subject = %v, want nil", got)
	}
	if back, _ := e2.Get("presentation"); len(back) != 0 {
		t.Errorf("e2.presentation = %v, want empty after clear", back)
	}
}

func TestAddOnToOne(t *testing.T) {
	r := NewRepository(CoreSchema())
	d1 := mustCreate(t, r, KindDiagram)
	d2 := mustCreate(t, r, KindDiagram)
	p := mustCreate(t, r, KindPresentation)

	if err := p.Add("diagram", d1); err != nil {
		t.Fatalf("Add on empty to-one: %v", err)
	}
	// Re-adding the present value is a no-op.
	if err := p.Add("diagram", d1); err != nil {
		t.Fatalf("Add present value: %v", err)
	}
	// Adding a second value must not silently replace.
	if err := p.Add("diagram", d2); !IsCode(err, CodeCardinality) {
		t.Fatalf("Add on full to-one = %v, want code %s", err, CodeCardinality)
	}
	if got, _ := p.GetOne("diagram"); got != d1 {
		t.Errorf("diagram = %v, want d1 unchanged", got)
	}
}

func TestAddRemoveMany(t *testing.T) {
	r := NewRepository(CoreSchema())
	e := mustCreate(t, r, KindElement)
	c1 := mustCreate(t, r, KindComment)
	c2 := mustCreate(t, r, KindComment)

	for _, c := range []*Element{c1, c2} {
		if err := e.Add("comment", c); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if got, _ := e.Get("comment"); len(got) != 2 || got[0] != c1 || got[1] != c2 {
		t.Fatalf("comment = %v, want [c1 c2] in insertion order", got)
	}
	if back, _ := c1.Get("annotatedElement"); len(back) != 1 || back[0] != e {
		t.Fatalf("c1.annotatedElement = %v, want [e]", back)
	}

	// Duplicate add is a no-op.
	if err := e.Add("comment", c1); err != nil {
		t.Fatalf("duplicate Add: %v", err)
	}
	if got, _ := e.Get("comment"); len(got) != 2 {
		t.Fatalf("comment has %d values after duplicate add, want 2", len(got))
	}

	if err := e.Remove("comment", c1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got, _ := e.Get("comment"); len(got) != 1 || got[0] != c2 {
		t.Errorf("comment = %v, want [c2]", got)
	}
	if back, _ := c1.Get("annotatedElement"); len(back) != 0 {
		t.Errorf("c1.annotatedElement = %v, want empty", back)
	}

	// Removing again fails.
	if err := e.Remove("comment", c1); !IsCode(err, CodeNotFound) {
		t.Errorf("Remove absent = %v, want code %s", err, CodeNotFound)
	}
}

func TestAddNil(t *testing.T) {
	r := NewRepository(CoreSchema())
	e := mustCreate(t, r, KindElement)

	if err := e.Add("comment", nil); !IsCode(err, CodeInvalidValue) {
		t.Errorf("Add nil = %v, want code %s", err, CodeInvalidValue)
	}
}

func TestDerivedReadOnly(t *testing.T) {
	r := NewRepository(CoreSchema())
	e := mustCreate(t, r, KindElement)
	d := mustCreate(t, r, KindDiagram)

	if err := e.Add("ownedElement", d); !IsCode(err, CodeReadOnlyRelation) {
		t.Errorf("Add to union = %v, want code %s", err, CodeReadOnlyRelation)
	}
	if err := d.Set("owner", e); !IsCode(err, CodeReadOnlyRelation) {
		t.Errorf("Set on union = %v, want code %s", err, CodeReadOnlyRelation)
	}
	if err := e.Remove("ownedElement", d); !IsCode(err, CodeReadOnlyRelation) {
		t.Errorf("Remove from union = %v, want code %s", err, CodeReadOnlyRelation)
	}
}

func TestDerivedUnion(t *testing.T) {
	r := NewRepository(CoreSchema())
	e := mustCreate(t, r, KindElement)
	d1 := mustCreate(t, r, KindDiagram)
	d2 := mustCreate(t, r, KindDiagram)

	for _, d := range []*Element{d1, d2} {
		if err := e.Add("ownedDiagram", d); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	owned, err := e.Get("ownedElement")
	if err != nil {
		t.Fatalf("Get ownedElement: %v", err)
	}
	if len(owned) != 2 || owned[0] != d1 || owned[1] != d2 {
		t.Errorf("ownedElement = %v, want [d1 d2]", owned)
	}

	// owner is the inverse union, readable through GetOne.
	if got, _ := d1.GetOne("owner"); got != e {
		t.Errorf("d1.owner = %v, want e", got)
	}

	// The union reflects removals immediately.
	if err := e.Remove("ownedDiagram", d1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if owned, _ := e.Get("ownedElement"); len(owned) != 1 || owned[0] != d2 {
		t.Errorf("ownedElement = %v, want [d2]", owned)
	}
	if got, _ := d1.GetOne("owner"); got != nil {
		t.Errorf("d1.owner = %v, want nil", got)
	}
}

func TestTargetKindChecked(t *testing.T) {
	r := NewRepository(CoreSchema())
	p := mustCreate(t, r, KindPresentation)
	c := mustCreate(t, r, KindComment)

	// diagram requires a Diagram; Comment is a sibling kind.
	if err := p.Set("diagram", c); !IsCode(err, CodeTypeMismatch) {
		t.Errorf("Set wrong kind = %v, want code %s", err, CodeTypeMismatch)
	}
	if got, _ := p.GetOne("diagram"); got != nil {
		t.Errorf("diagram = %v, want nil after failed Set", got)
	}
}

func TestCrossRepositoryRejected(t *testing.T) {
	r1 := NewRepository(CoreSchema())
	r2 := NewRepository(CoreSchema())
	p := mustCreate(t, r1, KindPresentation)
	d := mustCreate(t, r2, KindDiagram)

	if err := p.Set("diagram", d); !IsCode(err, CodeTypeMismatch) {
		t.Errorf("Set foreign element = %v, want code %s", err, CodeTypeMismatch)
	}
}

func TestOwnershipCycleRejected(t *testing.T) {
	r := NewRepository(CoreSchema())
	p1 := mustCreate(t, r, KindPresentation)
	p2 := mustCreate(t, r, KindPresentation)
	p3 := mustCreate(t, r, KindPresentation)

	if err := p1.Add("children", p2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := p2.Add("children", p3); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Self-ownership.
	if err := p1.Add("children", p1); !IsCode(err, CodeOwnershipCycle) {
		t.Errorf("self Add = %v, want code %s", err, CodeOwnershipCycle)
	}
	// Closing the chain from the bottom.
	if err := p3.Add("children", p1); !IsCode(err, CodeOwnershipCycle) {
		t.Errorf("cyclic Add = %v, want code %s", err, CodeOwnershipCycle)
	}
	// Same cycle attempted from the parent end.
	if err := p1.Set("parent", p3); !IsCode(err, CodeOwnershipCycle) {
		t.Errorf("cyclic Set = %v, want code %s", err, CodeOwnershipCycle)
	}

	// Failed mutations leave no partial state behind.
	if got, _ := p3.Get("children"); len(got) != 0 {
		t.Errorf("p3.children = %v, want empty", got)
	}
	if got, _ := p1.GetOne("parent"); got != nil {
		t.Errorf("p1.parent = %v, want nil", got)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate after rejected mutations: %v", err)
	}
}

func TestGetOneOnCollection(t *testing.T) {
	r := NewRepository(CoreSchema())
	d := mustCreate(t, r, KindDiagram)

	if _, err := d.GetOne("ownedPresentation"); !IsCode(err, CodeCardinality) {
		t.Errorf("GetOne on to-many = %v, want code %s", err, CodeCardinality)
	}
}

func TestUnknownRelation(t *testing.T) {
	r := NewRepository(CoreSchema())
	e := mustCreate(t, r, KindElement)

	if _, err := e.Get("friends"); !IsCode(err, CodeUnknownRelation) {
		t.Errorf("Get = %v, want code %s", err, CodeUnknownRelation)
	}
	if err := e.Add("friends", e); !IsCode(err, CodeUnknownRelation) {
		t.Errorf("Add = %v, want code %s", err, CodeUnknownRelation)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	r := NewRepository(CoreSchema())
	e := mustCreate(t, r, KindElement)
	c := mustCreate(t, r, KindComment)

	if err := e.Add("comment", c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, _ := e.Get("comment")
	got[0] = nil
	if again, _ := e.Get("comment"); len(again) != 1 || again[0] != c {
		t.Errorf("stored collection changed through returned slice")
	}
}
