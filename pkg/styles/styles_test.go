package styles

import "testing"

func TestParseTextAlign(t *testing.T) {
	tests := []struct {
		input   string
		want    TextAlign
		wantErr bool
	}{
		{input: "left", want: AlignLeft},
		{input: "center", want: AlignCenter},
		{input: "right", want: AlignRight},
		{input: "middle", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTextAlign(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTextAlign(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTextAlign(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTextAlign(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFontLiterals(t *testing.T) {
	// Empty literals mean "not set" and parse to the zero style.
	if w, err := ParseFontWeight(""); err != nil || w != WeightNormal {
		t.Errorf("ParseFontWeight(\"\") = %v, %v", w, err)
	}
	if w, err := ParseFontWeight("bold"); err != nil || w != WeightBold {
		t.Errorf("ParseFontWeight(bold) = %v, %v", w, err)
	}
	if _, err := ParseFontWeight("heavy"); err == nil {
		t.Error("ParseFontWeight(heavy): expected error")
	}

	if s, err := ParseFontStyle("italic"); err != nil || s != StyleItalic {
		t.Errorf("ParseFontStyle(italic) = %v, %v", s, err)
	}
	if _, err := ParseFontStyle("oblique"); err == nil {
		t.Error("ParseFontStyle(oblique): expected error")
	}

	if d, err := ParseTextDecoration("underline"); err != nil || d != DecorationUnderline {
		t.Errorf("ParseTextDecoration(underline) = %v, %v", d, err)
	}
	if _, err := ParseTextDecoration("strike"); err == nil {
		t.Error("ParseTextDecoration(strike): expected error")
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, a := range []TextAlign{AlignCenter, AlignLeft, AlignRight} {
		got, err := ParseTextAlign(a.String())
		if err != nil || got != a {
			t.Errorf("ParseTextAlign(%q) = %v, %v", a.String(), got, err)
		}
	}
}
