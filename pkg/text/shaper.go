package text

import (
	"strings"
	"unicode/utf8"

	"vellum/pkg/styles"
)

// Metric ratios for the estimating shaper. The char width is the average
// advance of a glyph relative to the font size; bold runs a little wider.
const (
	charWidthRatio  = 0.55
	lineHeightRatio = 1.2
	boldWidthFactor = 1.05
)

// Estimator is a toolkit-free [Shaper]: it derives text dimensions from
// average glyph metrics instead of shaping real glyphs. Good enough for
// headless layout and tests; a real editor injects a toolkit-backed shaper
// instead.
type Estimator struct {
	font      FontID
	text      string
	underline bool
	width     float64
	align     styles.TextAlign
}

// NewEstimator creates an estimating shaper with no wrap width.
func NewEstimator() *Estimator {
	return &Estimator{width: -1, font: FontID{Family: styles.DefaultFamily, Size: styles.DefaultSize}}
}

// ApplyFont implements [Shaper].
func (e *Estimator) ApplyFont(id FontID) { e.font = id }

// SetText implements [Shaper].
func (e *Estimator) SetText(text string, underline bool) {
	e.text = text
	e.underline = underline
}

// SetWidth implements [Shaper].
func (e *Estimator) SetWidth(w float64) { e.width = w }

// SetAlignment implements [Shaper].
func (e *Estimator) SetAlignment(a styles.TextAlign) { e.align = a }

// PixelSize implements [Shaper]. The width is the longest line's estimated
// advance, after wrapping when a wrap width is set; the height is the line
// count times the line height.
func (e *Estimator) PixelSize() Size {
	if e.text == "" {
		return Size{}
	}
	lines := e.wrappedLines()
	charW := e.charWidth()
	var maxW float64
	for _, line := range lines {
		if w := float64(utf8.RuneCountInString(line)) * charW; w > maxW {
			maxW = w
		}
	}
	return Size{W: maxW, H: float64(len(lines)) * e.font.Size * lineHeightRatio}
}

// Draw implements [Shaper].
func (e *Estimator) Draw(target Surface, at Point) {
	target.DrawText(at, e.text)
}

func (e *Estimator) charWidth() float64 {
	w := e.font.Size * charWidthRatio
	if e.font.Weight == styles.WeightBold {
		w *= boldWidthFactor
	}
	return w
}

// wrappedLines splits the text on newlines and, when a wrap width is set,
// greedily breaks lines at word boundaries to fit.
func (e *Estimator) wrappedLines() []string {
	raw := strings.Split(e.text, "\n")
	if e.width < 0 {
		return raw
	}
	maxChars := int(e.width / e.charWidth())
	if maxChars < 1 {
		maxChars = 1
	}
	var out []string
	for _, line := range raw {
		out = append(out, wrapLine(line, maxChars)...)
	}
	return out
}

func wrapLine(line string, maxChars int) []string {
	if utf8.RuneCountInString(line) <= maxChars {
		return []string{line}
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{line}
	}
	var out []string
	cur := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(word) <= maxChars {
			cur += " " + word
			continue
		}
		out = append(out, cur)
		cur = word
	}
	return append(out, cur)
}
