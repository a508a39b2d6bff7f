package model

// Helpers for the pending-change records written by the synchronization
// subsystem. A change is created as a PendingChange subtype (ElementChange,
// ValueChange, RefChange), consumed by the editor, and marked applied.

// PendingChanges returns all unapplied change records in creation order.
func PendingChanges(r *Repository) []*Element {
	var out []*Element
	for _, e := range r.Elements() {
		if !e.IsKind(KindPendingChange) {
			continue
		}
		applied, err := e.AttrInt("applied")
		if err == nil && applied == 0 {
			out = append(out, e)
		}
	}
	return out
}

// MarkApplied flags a change record as processed. Marking an already
// applied change is a no-op.
func MarkApplied(e *Element) error {
	if !e.IsKind(KindPendingChange) {
		return errf(CodeTypeMismatch, "element %s is a %s, not a change record", e.ID(), e.Kind().Name)
	}
	return e.SetAttr("applied", 1)
}
