package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes the storage document. The two implementations
// write the same logical structure; a model written with one codec and
// rewritten with the other round-trips unchanged.
type Codec interface {
	// Name is the codec's short identifier ("json", "msgpack").
	Name() string

	encode(w io.Writer, doc document) error
	decode(r io.Reader, doc *document) error
}

// JSON is the human-readable codec, indented for stable diffs.
type JSON struct{}

// Name implements [Codec].
func (JSON) Name() string { return "json" }

func (JSON) encode(w io.Writer, doc document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (JSON) decode(r io.Reader, doc *document) error {
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// Msgpack is the compact binary codec.
type Msgpack struct{}

// Name implements [Codec].
func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) encode(w io.Writer, doc document) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode msgpack: %w", err)
	}
	return nil
}

func (Msgpack) decode(r io.Reader, doc *document) error {
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("decode msgpack: %w", err)
	}
	return nil
}
