// Package text measures styled text and computes label anchor points.
//
// The placement functions are pure geometry: they take points, sizes, and
// an alignment, and return the top-left anchor for a label so that it sits
// next to a line segment or inside a box without crossing the line. The
// measurement side ([Layout]) wraps an injected [Shaper] backend and caches
// the applied font description so per-frame layout stays cheap.
package text

import (
	"errors"
	"fmt"
	"math"

	"vellum/pkg/styles"
)

// ErrInvalidGeometry is returned when placement input is degenerate:
// fewer than two line points, or non-finite coordinates. Placement never
// produces NaN anchors.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Point is a coordinate pair in diagram space.
type Point struct {
	X, Y float64
}

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X, Y, W, H float64
}

// FocusBoxPos returns the top-left anchor for text of the given size inside
// a bounding box. The horizontal offset follows the alignment; vertically
// the text is always centered.
func FocusBoxPos(box Rect, text Size, align styles.TextAlign) (Point, error) {
	if !finite(box.X, box.Y, box.W, box.H, text.W, text.H) {
		return Point{}, fmt.Errorf("%w: non-finite box or text size", ErrInvalidGeometry)
	}
	x, y := box.X, box.Y
	switch align {
	case styles.AlignCenter:
		x += (box.W - text.W) / 2
	case styles.AlignRight:
		x += box.W - text.W
	}
	y += (box.H - text.H) / 2
	return Point{x, y}, nil
}

// TextPointAtLine returns the anchor for a label of the given size placed
// close to a polyline. The alignment selects the segment: AlignLeft anchors
// near the first point, AlignRight near the last, and AlignCenter next to
// the middle segment.
func TextPointAtLine(points []Point, size Size, align styles.TextAlign) (Point, error) {
	if len(points) < 2 {
		return Point{}, fmt.Errorf("%w: need at least 2 line points, got %d", ErrInvalidGeometry, len(points))
	}
	for _, p := range points {
		if !finite(p.X, p.Y) {
			return Point{}, fmt.Errorf("%w: non-finite line point", ErrInvalidGeometry)
		}
	}
	if !finite(size.W, size.H) {
		return Point{}, fmt.Errorf("%w: non-finite text size", ErrInvalidGeometry)
	}

	switch align {
	case styles.AlignLeft:
		return textPointAtLineEnd(size, points[0], points[1]), nil
	case styles.AlignRight:
		last := len(points) - 1
		return textPointAtLineEnd(size, points[last], points[last-1]), nil
	case styles.AlignCenter:
		p0, p1, err := MiddleSegment(points)
		if err != nil {
			return Point{}, err
		}
		return textPointAtLineCenter(size, p0, p1), nil
	}
	return Point{}, fmt.Errorf("%w: unknown alignment %v", ErrInvalidGeometry, align)
}

// MiddleSegment returns the middle segment of a polyline: for n points,
// the segment from index floor(n/2)-1 to floor(n/2).
func MiddleSegment(points []Point) (Point, Point, error) {
	m := len(points) / 2
	if m < 1 || m >= len(points) {
		return Point{}, Point{}, fmt.Errorf("%w: polyline with %d points has no middle segment", ErrInvalidGeometry, len(points))
	}
	return points[m-1], points[m], nil
}

// textPointAtLineEnd places text next to the line end p1, on the side of
// the segment p1-p2 where it does not overlap the line. The slope is
// classified by the inverted ratio rc = dx/dy: above 6 the segment counts
// as horizontal, at or below 0.2 as vertical, anything between as diagonal.
func textPointAtLineEnd(size Size, p1, p2 Point) Point {
	const ofs = 5.0

	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	w, h := size.W, size.H

	rc := 1000.0 // dy == 0: steeper than any horizontal threshold
	if dy != 0 {
		rc = dx / dy
	}
	absRC := math.Abs(rc)
	right := dx > 0
	bottom := dy > 0

	var nameDX, nameDY float64
	switch {
	case absRC > 6:
		// horizontal line: above it, before or past p1 depending on direction
		if right {
			nameDX = ofs
		} else {
			nameDX = -ofs - w
		}
		nameDY = -ofs - h
	case absRC <= 0.2:
		// vertical line: always left of it
		nameDX = -ofs - w
		if bottom {
			nameDY = ofs
		} else {
			nameDY = -ofs - h
		}
	default:
		// diagonal: pick the side so text and line do not overlap
		r := absRC < 1.0
		alignLeft := right != r
		alignBottom := bottom != r
		if alignLeft {
			nameDX = ofs
		} else {
			nameDX = -ofs - w
		}
		if alignBottom {
			nameDY = -ofs - h
		} else {
			nameDY = ofs
		}
	}
	return Point{p1.X + nameDX, p1.Y + nameDY}
}

// epsilon below which a segment delta counts as axis-aligned.
const epsilon = 1e-6

// nearHorizontal is tan(30°): slopes below it place text under the
// midpoint, steeper slopes place it beside the line by quadrant.
const nearHorizontal = 0.5774

// textPointAtLineCenter places text next to the midpoint of the segment
// p1-p2. Near-horizontal lines get the text centered below the midpoint;
// steeper lines shift it sideways by quadrant-dependent width and padding
// hints so it clears the line.
func textPointAtLineCenter(size Size, p1, p2 Point) Point {
	const ofs = 3.0

	x0 := (p1.X + p2.X) / 2
	y0 := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y

	var d1, d2 float64
	switch {
	case math.Abs(dx) < epsilon:
		d1, d2 = -1.0, 1.0
	case math.Abs(dy) < epsilon:
		d1, d2 = 0.0, 0.0
	default:
		d1 = dy / dx
		d2 = math.Abs(d1)
	}

	w, h := size.W, size.H

	if d2 < nearHorizontal {
		w2 := w / 2
		return Point{x0 - w2, y0 + w2*d2 + ofs}
	}

	h2 := h / 2
	q := sign(d1)
	hint := 0.0
	if math.Abs(dx) >= epsilon {
		hint = h2 / d2
	}
	x := x0 - (ofs+hint)*paddingHint(q) + w*widthHint(q)
	return Point{x, y0 - h2}
}

// widthHint shifts the text left by its full width in the quadrants where
// the line ascends to the right.
func widthHint(q int) float64 {
	if q < 0 {
		return 0
	}
	return -1
}

// paddingHint flips the padding direction for descending lines.
func paddingHint(q int) float64 {
	if q < 0 {
		return -1
	}
	return 1
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
