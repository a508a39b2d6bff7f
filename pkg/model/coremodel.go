package model

// Kind names of the built-in diagram model.
const (
	KindElement       = "Element"
	KindDiagram       = "Diagram"
	KindPresentation  = "Presentation"
	KindComment       = "Comment"
	KindStyleSheet    = "StyleSheet"
	KindPendingChange = "PendingChange"
	KindElementChange = "ElementChange"
	KindValueChange   = "ValueChange"
	KindRefChange     = "RefChange"
	KindPicture       = "Picture"
)

// Operations recorded by a pending change (the "op" enum attribute).
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpUpdate = "update"
)

// CoreSchema builds the schema of the diagram model. The registration
// order below is fixed: it determines kind iteration order, relation
// attachment order, and derived-union evaluation order.
//
// The structural rules it encodes:
//
//   - Element.ownedElement / Element.owner are derived unions, computed
//     from composite associations (ownedDiagram contributes, presentation
//     deliberately does not).
//   - An element's presentations and owned diagrams are composite: deleting
//     the element deletes them.
//   - A diagram owns the presentations placed on it; a presentation may
//     nest child presentations and refers to the model element it shows.
func CoreSchema() *Schema {
	s := NewSchema()

	element := must(s.AddKind(KindElement, ""))
	diagram := must(s.AddKind(KindDiagram, KindElement))
	presentation := must(s.AddKind(KindPresentation, KindElement))

	comment := must(s.AddKind(KindComment, KindElement))
	must(comment.AddAttribute(Attribute{Name: "body", Type: AttrString}))

	styleSheet := must(s.AddKind(KindStyleSheet, KindElement))
	must(styleSheet.AddAttribute(Attribute{Name: "styleSheet", Type: AttrString}))

	pending := must(s.AddKind(KindPendingChange, KindElement))
	must(pending.AddAttribute(Attribute{Name: "applied", Type: AttrInt, Default: 0}))
	must(pending.AddAttribute(Attribute{Name: "element_id", Type: AttrString}))
	must(pending.AddAttribute(Attribute{Name: "op", Type: AttrEnum, Values: []string{OpAdd, OpRemove, OpUpdate}, Default: OpAdd}))

	elementChange := must(s.AddKind(KindElementChange, KindPendingChange))
	must(elementChange.AddAttribute(Attribute{Name: "diagram_id", Type: AttrString}))
	must(elementChange.AddAttribute(Attribute{Name: "element_name", Type: AttrString}))
	must(elementChange.AddAttribute(Attribute{Name: "modeling_language", Type: AttrString}))

	valueChange := must(s.AddKind(KindValueChange, KindPendingChange))
	must(valueChange.AddAttribute(Attribute{Name: "property_name", Type: AttrString}))
	must(valueChange.AddAttribute(Attribute{Name: "property_value", Type: AttrString}))

	refChange := must(s.AddKind(KindRefChange, KindPendingChange))
	must(refChange.AddAttribute(Attribute{Name: "property_name", Type: AttrString}))
	must(refChange.AddAttribute(Attribute{Name: "property_ref", Type: AttrString}))

	picture := must(s.AddKind(KindPicture, KindElement))
	must(picture.AddAttribute(Attribute{Name: "content", Type: AttrString}))

	// Associations. Attachment order matters for derived-union evaluation.
	ownedElement := must(element.AddRelation(Relation{Name: "ownedElement", Type: KindElement, Derived: true}))
	owner := must(element.AddRelation(Relation{Name: "owner", Type: KindElement, Upper: 1, Derived: true}))
	must(element.AddRelation(Relation{Name: "presentation", Type: KindPresentation, Composite: true, Opposite: "subject"}))
	ownedDiagram := must(element.AddRelation(Relation{Name: "ownedDiagram", Type: KindDiagram, Composite: true, Opposite: "element"}))
	must(element.AddRelation(Relation{Name: "comment", Type: KindComment, Opposite: "annotatedElement"}))
	mustOK(s.AddContributor(ownedElement, ownedDiagram))

	must(diagram.AddRelation(Relation{Name: "ownedPresentation", Type: KindPresentation, Composite: true, Opposite: "diagram"}))
	diagramElement := must(diagram.AddRelation(Relation{Name: "element", Type: KindElement, Upper: 1, Opposite: "ownedDiagram"}))
	mustOK(s.AddContributor(owner, diagramElement))

	must(presentation.AddRelation(Relation{Name: "parent", Type: KindPresentation, Upper: 1, Opposite: "children"}))
	must(presentation.AddRelation(Relation{Name: "children", Type: KindPresentation, Composite: true, Opposite: "parent"}))
	must(presentation.AddRelation(Relation{Name: "diagram", Type: KindDiagram, Upper: 1, Opposite: "ownedPresentation"}))
	must(presentation.AddRelation(Relation{Name: "subject", Type: KindElement, Upper: 1, Opposite: "presentation"}))

	must(comment.AddRelation(Relation{Name: "annotatedElement", Type: KindElement, Opposite: "comment"}))

	return s
}

// ValidateModel checks the repository against the generic structural
// invariants plus the diagram-model rule that a nested presentation lives
// on the same diagram as its parent.
func ValidateModel(r *Repository) error {
	if err := r.Validate(); err != nil {
		return err
	}
	for _, e := range r.Elements() {
		if !e.IsKind(KindPresentation) {
			continue
		}
		parent, err := e.GetOne("parent")
		if err != nil || parent == nil {
			continue
		}
		childDiagram, _ := e.GetOne("diagram")
		parentDiagram, _ := parent.GetOne("diagram")
		if childDiagram != parentDiagram {
			return errf(CodeInconsistent, "presentation %s is on a different diagram than its parent %s", e.ID(), parent.ID())
		}
	}
	return nil
}
