package text

import "vellum/pkg/styles"

// FontID identifies an applied font description. Two equal FontIDs shape
// identically, so re-applying an equal one can be skipped.
type FontID struct {
	Family string
	Size   float64
	Weight styles.FontWeight
	Style  styles.FontStyle
}

// Surface is the minimal drawing capability a layout needs: place a run of
// already-shaped text at a point. Concrete surfaces (screen painter,
// bounding-box tracer) are chosen by the caller, never probed at runtime.
type Surface interface {
	DrawText(at Point, text string)
}

// Shaper measures and draws styled text. Implementations wrap a concrete
// text toolkit; [Layout] guarantees every setter is invoked only when the
// value actually changed, so implementations need no own caching.
type Shaper interface {
	// ApplyFont rebuilds the backend font description.
	ApplyFont(id FontID)
	// SetText replaces the shaped text, with or without underline.
	SetText(text string, underline bool)
	// SetWidth sets the wrap width in pixels; -1 disables wrapping.
	SetWidth(w float64)
	// SetAlignment sets the paragraph alignment for wrapped text.
	SetAlignment(a styles.TextAlign)
	// PixelSize returns the dimensions of the current text.
	PixelSize() Size
	// Draw renders the current text onto the surface at the given point.
	Draw(target Surface, at Point)
}

// Layout positions styled text through a Shaper backend. It caches the
// last-applied font description, text, width, and alignment, and forwards
// only actual changes; layout runs once per frame per visible label, so
// redundant font-description rebuilds matter.
type Layout struct {
	shaper      Shaper
	defaultSize Size

	fontID    FontID
	hasFont   bool
	underline bool
	text      string
	width     float64
	align     styles.TextAlign
	hasAlign  bool
}

// NewLayout creates a layout over the given backend. The default size is
// reported for empty text, so call sites can reserve space for blank
// labels.
func NewLayout(s Shaper, defaultSize Size) *Layout {
	return &Layout{shaper: s, defaultSize: defaultSize, width: -1}
}

// SetFont applies a font. Re-applying an identical font is a no-op; the
// backend font description is rebuilt only when family, size, weight, or
// style changed. An underline change reshapes the current text.
func (l *Layout) SetFont(f styles.Font) {
	id := FontID{Family: f.Family, Size: f.Size, Weight: f.Weight, Style: f.Style}
	if !l.hasFont || id != l.fontID {
		l.fontID = id
		l.hasFont = true
		l.shaper.ApplyFont(id)
	}
	underline := f.Decoration == styles.DecorationUnderline
	if underline != l.underline {
		l.underline = underline
		l.shaper.SetText(l.text, l.underline)
	}
}

// SetText replaces the text. Setting the current text again is a no-op.
func (l *Layout) SetText(text string) {
	if text != l.text {
		l.text = text
		l.shaper.SetText(text, l.underline)
	}
}

// SetWidth sets the wrap width; -1 disables wrapping.
func (l *Layout) SetWidth(w float64) {
	if w != l.width {
		l.width = w
		l.shaper.SetWidth(w)
	}
}

// SetAlignment sets the paragraph alignment.
func (l *Layout) SetAlignment(a styles.TextAlign) {
	if !l.hasAlign || a != l.align {
		l.align = a
		l.hasAlign = true
		l.shaper.SetAlignment(a)
	}
}

// Text returns the current text.
func (l *Layout) Text() string { return l.text }

// Size returns the pixel dimensions of the current text. Empty text
// reports the configured default size, not (0, 0).
func (l *Layout) Size() Size {
	if l.text == "" {
		return l.defaultSize
	}
	return l.shaper.PixelSize()
}

// Show draws the text onto the surface at the given anchor and returns the
// drawn size. Empty text draws nothing and returns the default size.
func (l *Layout) Show(target Surface, at Point) Size {
	if l.text == "" {
		return l.defaultSize
	}
	l.shaper.Draw(target, at)
	return l.shaper.PixelSize()
}
