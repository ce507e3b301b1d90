package display

import (
	"strings"
	"testing"
)

func TestGlyphWidth(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		scale int
		want  int
	}{
		{"single digit scale 1", "7", 1, 3},
		{"single digit scale 3", "7", 3, 9},
		{"two digits scale 1", "42", 1, 7},
		{"two digits scale 2", "42", 2, 14},
		{"empty", "", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GlyphWidth(tt.text, tt.scale); got != tt.want {
				t.Errorf("GlyphWidth(%q, %d) = %d, want %d", tt.text, tt.scale, got, tt.want)
			}
		})
	}
}

func TestGlyphHeight(t *testing.T) {
	if got := GlyphHeight(1); got != 5 {
		t.Errorf("GlyphHeight(1) = %d, want 5", got)
	}
	if got := GlyphHeight(3); got != 15 {
		t.Errorf("GlyphHeight(3) = %d, want 15", got)
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxWidth  int
		maxHeight int
		want      int
	}{
		{"plenty of room", "42", 200, 100, MaxGlyphScale},
		{"height bound", "42", 200, 12, 2},
		{"width bound", "42", 21, 100, 3},
		{"tight fit", "42", 7, 5, 1},
		{"nothing fits, floor is 1", "123456", 4, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitScale(tt.text, tt.maxWidth, tt.maxHeight)
			if got != tt.want {
				t.Errorf("FitScale(%q, %d, %d) = %d, want %d", tt.text, tt.maxWidth, tt.maxHeight, got, tt.want)
			}
		})
	}
}

func TestFitScaleNeverExceedsBounds(t *testing.T) {
	// Whatever scale comes back above 1 must actually fit.
	for width := 5; width < 60; width += 7 {
		for height := 3; height < 30; height += 5 {
			scale := FitScale("42", width, height)
			if scale == 1 {
				continue
			}
			if GlyphWidth("42", scale) > width {
				t.Errorf("scale %d overflows width %d", scale, width)
			}
			if GlyphHeight(scale) > height {
				t.Errorf("scale %d overflows height %d", scale, height)
			}
		}
	}
}

func TestRenderGlyphsShape(t *testing.T) {
	out := RenderGlyphs("42", 2)
	lines := strings.Split(out, "\n")

	if len(lines) != GlyphHeight(2) {
		t.Fatalf("got %d lines, want %d", len(lines), GlyphHeight(2))
	}

	want := GlyphWidth("42", 2)
	for i, line := range lines {
		if n := len([]rune(line)); n != want {
			t.Errorf("line %d width = %d, want %d", i, n, want)
		}
	}
}

func TestRenderGlyphsUnknownRune(t *testing.T) {
	// Unmapped runes fall back to the '?' glyph instead of panicking.
	out := RenderGlyphs("x", 1)
	if out != RenderGlyphs("?", 1) {
		t.Error("unknown rune should render as '?'")
	}
}

func TestRenderGlyphsEmpty(t *testing.T) {
	if got := RenderGlyphs("", 3); got != "" {
		t.Errorf("RenderGlyphs(\"\", 3) = %q, want empty", got)
	}
}
