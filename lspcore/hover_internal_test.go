package lspcore

import "testing"

// TestHoverTieBreakPrefersLaterEntry exercises lookup's tie-break
// directly: two stored ranges of equal size both containing pos must
// resolve to the later-listed one (spec.md §4.5, "prefer the row
// occurring later in the list when ranges are equal under containment").
func TestHoverTieBreakPrefersLaterEntry(t *testing.T) {
	h := newHoverIndex(4)
	r := Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 0, Character: 5}}
	h.put("file:///a.inf", 1, []HoverEntry{
		{Range: r, Text: "first"},
		{Range: r, Text: "second"},
	})

	entry, ok := h.lookup("file:///a.inf", Position{Line: 0, Character: 2})
	if !ok {
		t.Fatal("expected a hover entry")
	}
	if entry.Text != "second" {
		t.Errorf("got %q, want the later-listed entry on a size tie", entry.Text)
	}
}
