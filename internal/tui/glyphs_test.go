package tui

import "testing"

func TestGlyphs_ConfigAndEnv(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	t.Setenv("SEZNAM_TUI_GLYPHS", "")
	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii from config; got %v", got)
	}
	if glyphCheckbox(true) != "[x]" || glyphGrip() != "=" {
		t.Fatalf("unexpected ascii glyphs")
	}

	t.Setenv("SEZNAM_TUI_GLYPHS", "unicode")
	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected env to win; got %v", got)
	}

	// Unknown values keep the current set.
	setGlyphs(glyphSetASCII)
	t.Setenv("SEZNAM_TUI_GLYPHS", "bogus")
	applyGlyphPreference("unicode")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}
}

func TestVisibleRange(t *testing.T) {
	cases := []struct {
		n, cursor, height int
		start, end        int
	}{
		{n: 3, cursor: 0, height: 0, start: 0, end: 3},
		{n: 10, cursor: 0, height: 12, start: 0, end: 4},
		{n: 10, cursor: 9, height: 12, start: 6, end: 10},
		{n: 10, cursor: 5, height: 2, start: 5, end: 6},
	}
	for _, tc := range cases {
		start, end := visibleRange(tc.n, tc.cursor, tc.height, listChromeBottom)
		if start != tc.start || end != tc.end {
			t.Fatalf("visibleRange(%d,%d,%d) = %d,%d; want %d,%d", tc.n, tc.cursor, tc.height, start, end, tc.start, tc.end)
		}
	}
}
