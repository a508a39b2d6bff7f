// Package model implements the entity/relationship core of a diagram editor.
//
// The model is a typed graph: entity kinds (Element, Diagram, Presentation,
// Comment, change records) are declared in a [Schema] together with their
// attributes and relations, and instances live in a [Repository]. Relations
// are bidirectional: every add or remove keeps the opposite side in sync, so
// the graph is never observed in a half-linked state.
//
// # Schema
//
// A schema is a fixed table of kinds built once at startup. [CoreSchema]
// returns the built-in diagram model:
//
//	s := model.CoreSchema()
//	repo := model.NewRepository(s)
//
//	d, _ := repo.Create(model.KindDiagram)
//	p, _ := repo.Create(model.KindPresentation)
//	_ = p.Set("diagram", d) // also appears in d.Get("ownedPresentation")
//
// # Relations
//
// Relations declare a target kind, an upper bound (one or many), whether
// they are composite (ownership: deleting the owner deletes the values), and
// the name of the opposite relation on the target kind. Derived unions are
// read-only relations computed as the union of registered contributor
// relations; they are recomputed on every read.
//
// # Mutation semantics
//
//   - Set replaces the value of a to-one relation, clearing the previous
//     link on both sides first.
//   - Add appends to a to-many relation (a no-op if the value is already
//     present) and fails with CodeCardinality on an occupied to-one.
//   - Remove fails with CodeNotFound when the value is absent.
//
// All mutations validate before touching any state, so a failed call leaves
// the graph exactly as it was.
package model
