// Package storage saves and loads model repositories.
//
// Elements are serialized by schema name: each record carries its kind,
// attribute values, and the ids referenced by its non-derived relations.
// Derived unions are never written, they are recomputed after load. Two
// codecs share the same document shape: JSON (readable, diff-friendly) and
// msgpack (compact binary); the file extension picks the codec.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vellum/pkg/model"
)

// File extensions recognized by [SaveFile] and [LoadFile].
const (
	ExtJSON    = ".json"
	ExtMsgpack = ".vmod"
)

// document is the serialized form of a repository.
type document struct {
	Elements []record `json:"elements" msgpack:"elements"`
}

// record is one serialized element. Relations map relation names to target
// element ids, in storage order.
type record struct {
	ID        string              `json:"id" msgpack:"id"`
	Kind      string              `json:"kind" msgpack:"kind"`
	Attrs     map[string]any      `json:"attrs,omitempty" msgpack:"attrs,omitempty"`
	Relations map[string][]string `json:"relations,omitempty" msgpack:"relations,omitempty"`
}

// Save writes the repository to w using the given codec.
func Save(r *model.Repository, w io.Writer, c Codec) error {
	doc, err := marshalRepository(r)
	if err != nil {
		return err
	}
	return c.encode(w, doc)
}

// Load reads a repository from r using the given codec. The schema must
// match the one the document was written with; unknown kinds, attributes,
// or relations fail the load.
func Load(src io.Reader, s *model.Schema, c Codec) (*model.Repository, error) {
	var doc document
	if err := c.decode(src, &doc); err != nil {
		return nil, err
	}
	return unmarshalRepository(doc, s)
}

// SaveFile writes the repository to path, picking the codec from the file
// extension.
func SaveFile(r *model.Repository, path string) error {
	c, err := CodecFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := Save(r, f, c); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// LoadFile reads a repository from path, picking the codec from the file
// extension.
func LoadFile(path string, s *model.Schema) (*model.Repository, error) {
	c, err := CodecFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	repo, err := Load(f, s, c)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return repo, nil
}

// CodecFor returns the codec for a file path based on its extension.
func CodecFor(path string) (Codec, error) {
	switch filepath.Ext(path) {
	case ExtJSON:
		return JSON{}, nil
	case ExtMsgpack:
		return Msgpack{}, nil
	}
	return nil, fmt.Errorf("unsupported model file extension %q (want %s or %s)", filepath.Ext(path), ExtJSON, ExtMsgpack)
}

func marshalRepository(r *model.Repository) (document, error) {
	s := r.Schema()
	doc := document{Elements: make([]record, 0, r.Len())}
	for _, e := range r.Elements() {
		rec := record{ID: e.ID(), Kind: e.Kind().Name}
		for _, a := range s.AttributesFor(e.Kind()) {
			v, err := e.Attr(a.Name)
			if err != nil {
				return document{}, fmt.Errorf("element %s: %w", e.ID(), err)
			}
			if v == a.Default || (a.Default == nil && isZero(v)) {
				continue
			}
			if rec.Attrs == nil {
				rec.Attrs = make(map[string]any)
			}
			rec.Attrs[a.Name] = v
		}
		for _, rel := range s.RelationsFor(e.Kind()) {
			if rel.Derived {
				continue
			}
			vals, err := e.Get(rel.Name)
			if err != nil {
				return document{}, fmt.Errorf("element %s: %w", e.ID(), err)
			}
			if len(vals) == 0 {
				continue
			}
			ids := make([]string, len(vals))
			for i, v := range vals {
				ids[i] = v.ID()
			}
			if rec.Relations == nil {
				rec.Relations = make(map[string][]string)
			}
			rec.Relations[rel.Name] = ids
		}
		doc.Elements = append(doc.Elements, rec)
	}
	return doc, nil
}

func unmarshalRepository(doc document, s *model.Schema) (*model.Repository, error) {
	repo := model.NewRepository(s)

	// First pass: create every element so relation targets resolve.
	for _, rec := range doc.Elements {
		e, err := repo.CreateWithID(rec.Kind, rec.ID)
		if err != nil {
			return nil, fmt.Errorf("element %s: %w", rec.ID, err)
		}
		for name, v := range rec.Attrs {
			if err := e.SetAttr(name, normalizeAttr(v)); err != nil {
				return nil, fmt.Errorf("element %s: %w", rec.ID, err)
			}
		}
	}

	// Second pass: link through the normal mutation path. Both directions
	// of a bidirectional relation are in the document; re-adding an
	// existing link is a no-op, so symmetry comes out intact.
	for _, rec := range doc.Elements {
		e, _ := repo.Element(rec.ID)
		for name, ids := range rec.Relations {
			for _, id := range ids {
				target, ok := repo.Element(id)
				if !ok {
					return nil, fmt.Errorf("element %s: relation %s references unknown id %s", rec.ID, name, id)
				}
				if err := addLink(e, name, target); err != nil {
					return nil, fmt.Errorf("element %s: relation %s: %w", rec.ID, name, err)
				}
			}
		}
	}
	return repo, nil
}

// addLink restores one stored link. Add already treats a present value as
// a no-op; a to-one relation that was filled from the opposite direction
// with the same target counts as present, anything else is a real
// conflict and fails.
func addLink(e *model.Element, name string, target *model.Element) error {
	cur, err := e.GetOne(name)
	if err == nil && cur == target {
		return nil
	}
	return e.Add(name, target)
}

// normalizeAttr undoes codec widening: JSON decodes every number as
// float64, msgpack as int64/uint64, while int attributes expect int.
func normalizeAttr(v any) any {
	switch n := v.(type) {
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	}
	return v
}

func isZero(v any) bool {
	switch t := v.(type) {
	case string:
		return t == ""
	case int:
		return t == 0
	}
	return false
}
