package styles

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Sheet maps entity kind names to resolved text styles. Lookups fall back
// to the sheet's defaults, so a sheet loaded from an empty file behaves
// like [DefaultStyle] for every kind.
type Sheet struct {
	defaults Style
	kinds    map[string]Style
}

// Style returns the style for the given entity kind.
func (s *Sheet) Style(kind string) Style {
	if st, ok := s.kinds[kind]; ok {
		return st
	}
	return s.defaults
}

// Defaults returns the sheet-wide default style.
func (s *Sheet) Defaults() Style { return s.defaults }

// sheetDoc is the TOML shape of a stylesheet:
//
//	[defaults]
//	font-family = "sans"
//	font-size = 14.0
//
//	[kind.Comment]
//	font-style = "italic"
//	text-align = "left"
type sheetDoc struct {
	Defaults entryDoc            `toml:"defaults"`
	Kinds    map[string]entryDoc `toml:"kind"`
}

type entryDoc struct {
	FontFamily     string   `toml:"font-family"`
	FontSize       *float64 `toml:"font-size"`
	FontWeight     string   `toml:"font-weight"`
	FontStyle      string   `toml:"font-style"`
	TextDecoration string   `toml:"text-decoration"`
	TextAlign      string   `toml:"text-align"`
}

// LoadSheet reads a TOML stylesheet from the given path.
func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stylesheet %s: %w", path, err)
	}
	return ParseSheet(string(data))
}

// ParseSheet parses TOML stylesheet text. Kind entries inherit every field
// they do not set from the defaults section, which in turn inherits from
// [DefaultStyle].
func ParseSheet(text string) (*Sheet, error) {
	var doc sheetDoc
	if _, err := toml.Decode(text, &doc); err != nil {
		return nil, fmt.Errorf("parse stylesheet: %w", err)
	}

	defaults, err := mergeEntry(DefaultStyle(), doc.Defaults)
	if err != nil {
		return nil, fmt.Errorf("stylesheet defaults: %w", err)
	}

	sheet := &Sheet{defaults: defaults, kinds: make(map[string]Style, len(doc.Kinds))}
	for kind, entry := range doc.Kinds {
		st, err := mergeEntry(defaults, entry)
		if err != nil {
			return nil, fmt.Errorf("stylesheet kind %s: %w", kind, err)
		}
		sheet.kinds[kind] = st
	}
	return sheet, nil
}

func mergeEntry(base Style, e entryDoc) (Style, error) {
	out := base
	if e.FontFamily != "" {
		out.Font.Family = e.FontFamily
	}
	if e.FontSize != nil {
		if *e.FontSize <= 0 {
			return out, fmt.Errorf("font-size must be positive, got %v", *e.FontSize)
		}
		out.Font.Size = *e.FontSize
	}
	if e.FontWeight != "" {
		w, err := ParseFontWeight(e.FontWeight)
		if err != nil {
			return out, err
		}
		out.Font.Weight = w
	}
	if e.FontStyle != "" {
		fs, err := ParseFontStyle(e.FontStyle)
		if err != nil {
			return out, err
		}
		out.Font.Style = fs
	}
	if e.TextDecoration != "" {
		d, err := ParseTextDecoration(e.TextDecoration)
		if err != nil {
			return out, err
		}
		out.Font.Decoration = d
	}
	if e.TextAlign != "" {
		a, err := ParseTextAlign(e.TextAlign)
		if err != nil {
			return out, err
		}
		out.TextAlign = a
	}
	return out, nil
}
