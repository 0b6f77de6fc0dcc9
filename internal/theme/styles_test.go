package theme

import (
	"reflect"
	"strings"
	"testing"
)

func TestStyles_ReferentiallyPure(t *testing.T) {
	p := PaletteByName("dark")

	a := Styles(p)
	b := Styles(p)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two calls with the same palette produced different descriptors")
	}
	if !reflect.DeepEqual(a.MessageBubble(true), b.MessageBubble(true)) {
		t.Fatalf("bubble styles differ across calls")
	}
	if CSS(a) != CSS(b) {
		t.Fatalf("CSS output is not deterministic")
	}
}

func TestMessageBubble_DirectionsNeverShareColors(t *testing.T) {
	for name := range palettes {
		s := Styles(PaletteByName(name))
		out := s.MessageBubble(true)
		in := s.MessageBubble(false)

		if out["background-color"] == in["background-color"] && out["color"] == in["color"] {
			t.Fatalf("palette %q: outgoing and incoming bubbles share the same color pair", name)
		}
	}
}

func TestStyles_UsePaletteColors(t *testing.T) {
	p := Palette{
		BgPrimary:     "#000001",
		BgSecondary:   "#000002",
		BgTertiary:    "#000003",
		TextPrimary:   "#000004",
		TextSecondary: "#000005",
		TextMuted:     "#000006",
		Accent:        "#000007",
		Border:        "#000008",
	}

	s := Styles(p)
	if s.Card["background-color"] != "#000002" {
		t.Fatalf("card should sit on the secondary background: %+v", s.Card)
	}
	if s.Input["color"] != "#000004" {
		t.Fatalf("input text should use the primary text tier: %+v", s.Input)
	}
	if s.Muted["color"] != "#000006" {
		t.Fatalf("muted text should use the muted tier: %+v", s.Muted)
	}
	if s.MessageBubble(true)["background-color"] != "#000007" {
		t.Fatalf("outgoing bubble should use the accent color")
	}
	if !strings.Contains(s.Textarea["border"], "#000008") {
		t.Fatalf("textarea border should use the border color: %+v", s.Textarea)
	}
}

func TestPaletteByName_FallsBackToDark(t *testing.T) {
	if !KnownPalette("dark") || !KnownPalette("light") {
		t.Fatalf("built-in palettes missing")
	}
	if KnownPalette("solarized") {
		t.Fatalf("unexpected palette")
	}
	if PaletteByName("solarized") != PaletteByName("dark") {
		t.Fatalf("unknown palette names should resolve to dark")
	}
}

func TestCSS_EmitsAllDescriptors(t *testing.T) {
	css := CSS(Styles(PaletteByName("dark")))

	for _, selector := range []string{".mv-bubble-out", ".mv-bubble-in", ".mv-textarea", ".mv-card", ".mv-input", ".mv-border", ".mv-text", ".mv-muted"} {
		if !strings.Contains(css, selector+" {") {
			t.Fatalf("stylesheet missing %s", selector)
		}
	}
}
