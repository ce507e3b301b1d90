package display

import "strings"

// Glyph geometry: every glyph is drawn on a 3x5 pixel grid. At scale
// s each pixel becomes an s-wide, s-tall block and glyphs are
// separated by an s-wide gap.
const (
	glyphPixelWidth  = 3
	glyphPixelHeight = 5

	// MaxGlyphScale caps the scale the fitting loop starts from.
	MaxGlyphScale = 8
)

// glyphRows maps each drawable rune to its pixel rows. '#' is a lit
// pixel, anything else is blank.
var glyphRows = map[rune][glyphPixelHeight]string{
	'0': {"###", "# #", "# #", "# #", "###"},
	'1': {" # ", "## ", " # ", " # ", "###"},
	'2': {"###", "  #", "###", "#  ", "###"},
	'3': {"###", "  #", "###", "  #", "###"},
	'4': {"# #", "# #", "###", "  #", "  #"},
	'5': {"###", "#  ", "###", "  #", "###"},
	'6': {"###", "#  ", "###", "# #", "###"},
	'7': {"###", "  #", "  #", "  #", "  #"},
	'8': {"###", "# #", "###", "# #", "###"},
	'9': {"###", "# #", "###", "  #", "###"},
	'-': {"   ", "   ", "###", "   ", "   "},
	'?': {"###", "  #", " ##", "   ", " # "},
}

// GlyphWidth returns the rendered width in terminal cells of text at
// the given scale.
func GlyphWidth(text string, scale int) int {
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	return n*glyphPixelWidth*scale + (n-1)*scale
}

// GlyphHeight returns the rendered height in terminal rows at the
// given scale.
func GlyphHeight(scale int) int {
	return glyphPixelHeight * scale
}

// FitScale returns the largest scale, starting from MaxGlyphScale and
// shrinking, at which text fits inside maxWidth x maxHeight. The
// floor is 1 even when nothing fits.
func FitScale(text string, maxWidth, maxHeight int) int {
	for scale := MaxGlyphScale; scale > 1; scale-- {
		if GlyphWidth(text, scale) <= maxWidth && GlyphHeight(scale) <= maxHeight {
			return scale
		}
	}
	return 1
}

// RenderGlyphs draws text as block digits at the given scale.
// Unmapped runes render as '?'.
func RenderGlyphs(text string, scale int) string {
	runes := []rune(text)
	if len(runes) == 0 || scale < 1 {
		return ""
	}

	lit := strings.Repeat("█", scale)
	blank := strings.Repeat(" ", scale)
	gap := strings.Repeat(" ", scale)

	var b strings.Builder
	for pixelRow := 0; pixelRow < glyphPixelHeight; pixelRow++ {
		var row strings.Builder
		for i, r := range runes {
			rows, ok := glyphRows[r]
			if !ok {
				rows = glyphRows['?']
			}
			if i > 0 {
				row.WriteString(gap)
			}
			for _, pixel := range rows[pixelRow] {
				if pixel == '#' {
					row.WriteString(lit)
				} else {
					row.WriteString(blank)
				}
			}
		}
		line := row.String()
		for repeat := 0; repeat < scale; repeat++ {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
