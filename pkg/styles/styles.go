// Package styles defines the text style vocabulary shared by measurement
// and placement: alignment, font weight/style/decoration enums and the
// Font value that bundles them. Stylesheets mapping entity kinds to fonts
// are loaded from TOML files (see [LoadSheet]).
package styles

import "fmt"

// TextAlign positions text relative to a box or line.
type TextAlign int

const (
	AlignCenter TextAlign = iota
	AlignLeft
	AlignRight
)

// String returns the stylesheet literal for the alignment.
func (a TextAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// FontWeight selects the stroke weight of a font.
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

func (w FontWeight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "normal"
}

// FontStyle selects the slant of a font.
type FontStyle int

const (
	StyleNormal FontStyle = iota
	StyleItalic
)

func (s FontStyle) String() string {
	if s == StyleItalic {
		return "italic"
	}
	return "normal"
}

// TextDecoration adds drawing on top of the glyphs.
type TextDecoration int

const (
	DecorationNone TextDecoration = iota
	DecorationUnderline
)

func (d TextDecoration) String() string {
	if d == DecorationUnderline {
		return "underline"
	}
	return "none"
}

// Font is a complete font description: what a text shaping backend needs
// to measure and draw a label.
type Font struct {
	Family     string
	Size       float64 // absolute size in pixels
	Weight     FontWeight
	Style      FontStyle
	Decoration TextDecoration
}

// Default font applied when a stylesheet does not override it.
const (
	DefaultFamily = "sans"
	DefaultSize   = 14.0
)

// DefaultFont returns the font used when no stylesheet entry matches.
func DefaultFont() Font {
	return Font{Family: DefaultFamily, Size: DefaultSize}
}

// Style is the resolved text style for one entity kind.
type Style struct {
	Font      Font
	TextAlign TextAlign
}

// DefaultStyle returns the style used when no stylesheet entry matches.
func DefaultStyle() Style {
	return Style{Font: DefaultFont(), TextAlign: AlignCenter}
}

// ParseTextAlign parses a stylesheet alignment literal.
func ParseTextAlign(s string) (TextAlign, error) {
	switch s {
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignCenter, fmt.Errorf("invalid text-align %q (want left, center, or right)", s)
}

// ParseFontWeight parses a stylesheet weight literal.
func ParseFontWeight(s string) (FontWeight, error) {
	switch s {
	case "normal", "":
		return WeightNormal, nil
	case "bold":
		return WeightBold, nil
	}
	return WeightNormal, fmt.Errorf("invalid font-weight %q (want normal or bold)", s)
}

// ParseFontStyle parses a stylesheet slant literal.
func ParseFontStyle(s string) (FontStyle, error) {
	switch s {
	case "normal", "":
		return StyleNormal, nil
	case "italic":
		return StyleItalic, nil
	}
	return StyleNormal, fmt.Errorf("invalid font-style %q (want normal or italic)", s)
}

// ParseTextDecoration parses a stylesheet decoration literal.
func ParseTextDecoration(s string) (TextDecoration, error) {
	switch s {
	case "none", "":
		return DecorationNone, nil
	case "underline":
		return DecorationUnderline, nil
	}
	return DecorationNone, fmt.Errorf("invalid text-decoration %q (want none or underline)", s)
}
