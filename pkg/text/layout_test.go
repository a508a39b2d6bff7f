package text

import (
	"math"
	"testing"

	"vellum/pkg/styles"
)

// recordingShaper counts backend calls so tests can assert that the layout
// forwards only actual changes.
type recordingShaper struct {
	applyFont    int
	setText      int
	setWidth     int
	setAlignment int
	draws        int

	lastText      string
	lastUnderline bool
	size          Size
}

func (s *recordingShaper) ApplyFont(FontID) { s.applyFont++ }

func (s *recordingShaper) SetText(text string, underline bool) {
	s.setText++
	s.lastText = text
	s.lastUnderline = underline
}

func (s *recordingShaper) SetWidth(float64) { s.setWidth++ }

func (s *recordingShaper) SetAlignment(styles.TextAlign) { s.setAlignment++ }

func (s *recordingShaper) PixelSize() Size { return s.size }

func (s *recordingShaper) Draw(Surface, Point) { s.draws++ }

// drawRecorder is a Surface that remembers the last draw call.
type drawRecorder struct {
	at   Point
	text string
	n    int
}

func (d *drawRecorder) DrawText(at Point, text string) {
	d.at = at
	d.text = text
	d.n++
}

func TestLayoutSetFontIdempotent(t *testing.T) {
	s := &recordingShaper{}
	l := NewLayout(s, Size{})
	font := styles.DefaultFont()

	l.SetFont(font)
	l.SetFont(font)
	if s.applyFont != 1 {
		t.Errorf("ApplyFont called %d times, want 1", s.applyFont)
	}

	font.Size = 18
	l.SetFont(font)
	if s.applyFont != 2 {
		t.Errorf("ApplyFont called %d times after size change, want 2", s.applyFont)
	}
}

func TestLayoutUnderlineReshapesText(t *testing.T) {
	s := &recordingShaper{}
	l := NewLayout(s, Size{})
	l.SetText("label")

	font := styles.DefaultFont()
	font.Decoration = styles.DecorationUnderline
	l.SetFont(font)

	if !s.lastUnderline || s.lastText != "label" {
		t.Errorf("shaper text = %q underline=%v, want label underlined", s.lastText, s.lastUnderline)
	}

	// An underline-only change must not rebuild the font description.
	if s.applyFont != 1 {
		t.Errorf("ApplyFont called %d times, want 1", s.applyFont)
	}
}

func TestLayoutSettersForwardOnlyChanges(t *testing.T) {
	s := &recordingShaper{}
	l := NewLayout(s, Size{})

	l.SetText("a")
	l.SetText("a")
	l.SetText("b")
	if s.setText != 2 {
		t.Errorf("SetText called %d times, want 2", s.setText)
	}

	l.SetWidth(120)
	l.SetWidth(120)
	if s.setWidth != 1 {
		t.Errorf("SetWidth called %d times, want 1", s.setWidth)
	}

	l.SetAlignment(styles.AlignCenter)
	l.SetAlignment(styles.AlignCenter)
	l.SetAlignment(styles.AlignLeft)
	if s.setAlignment != 2 {
		t.Errorf("SetAlignment called %d times, want 2", s.setAlignment)
	}
}

func TestLayoutEmptyTextDefaultSize(t *testing.T) {
	s := &recordingShaper{size: Size{W: 99, H: 99}}
	def := Size{W: 30, H: 16}
	l := NewLayout(s, def)

	if got := l.Size(); got != def {
		t.Errorf("Size = %v, want default %v", got, def)
	}

	var surface drawRecorder
	if got := l.Show(&surface, Point{}); got != def {
		t.Errorf("Show = %v, want default %v", got, def)
	}
	if s.draws != 0 {
		t.Errorf("Draw called %d times for empty text, want 0", s.draws)
	}

	l.SetText("x")
	if got := l.Size(); got != s.size {
		t.Errorf("Size = %v, want shaper size %v", got, s.size)
	}
}

func TestLayoutShowDraws(t *testing.T) {
	s := &recordingShaper{size: Size{W: 10, H: 5}}
	l := NewLayout(s, Size{})
	l.SetText("hi")

	var surface drawRecorder
	got := l.Show(&surface, Point{X: 3, Y: 4})
	if got != s.size {
		t.Errorf("Show = %v, want %v", got, s.size)
	}
	if s.draws != 1 {
		t.Errorf("Draw called %d times, want 1", s.draws)
	}
}

func TestEstimatorPixelSize(t *testing.T) {
	const tol = 1e-9

	tests := []struct {
		name   string
		font   FontID
		text   string
		width  float64
		want   Size
	}{
		{
			name:  "Empty",
			font:  FontID{Family: "sans", Size: 14},
			text:  "",
			width: -1,
			want:  Size{},
		},
		{
			name:  "SingleLine",
			font:  FontID{Family: "sans", Size: 10},
			text:  "abc",
			width: -1,
			want:  Size{W: 3 * 5.5, H: 12},
		},
		{
			name:  "Bold",
			font:  FontID{Family: "sans", Size: 10, Weight: styles.WeightBold},
			text:  "abc",
			width: -1,
			want:  Size{W: 3 * 5.5 * 1.05, H: 12},
		},
		{
			name:  "MultiLine",
			font:  FontID{Family: "sans", Size: 10},
			text:  "ab\ncdef",
			width: -1,
			want:  Size{W: 4 * 5.5, H: 24},
		},
		{
			name:  "Wrapped",
			font:  FontID{Family: "sans", Size: 10},
			text:  "hello world",
			width: 30, // fits 5 chars per line at size 10
			want:  Size{W: 5 * 5.5, H: 24},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEstimator()
			e.ApplyFont(tt.font)
			e.SetText(tt.text, false)
			e.SetWidth(tt.width)

			got := e.PixelSize()
			if math.Abs(got.W-tt.want.W) > tol || math.Abs(got.H-tt.want.H) > tol {
				t.Errorf("PixelSize = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimatorDraw(t *testing.T) {
	e := NewEstimator()
	e.SetText("node", false)

	var surface drawRecorder
	e.Draw(&surface, Point{X: 1, Y: 2})
	if surface.n != 1 || surface.text != "node" || !pointsEqual(surface.at, Point{1, 2}) {
		t.Errorf("DrawText(%v, %q) called %d times", surface.at, surface.text, surface.n)
	}
}
