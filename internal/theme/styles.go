// Package theme maps a color palette to the named style descriptors the
// dashboard pages are rendered with. Everything here is a pure function of
// its inputs: no state, no memoization, safe to call per request.
package theme

import (
	"fmt"
	"sort"
	"strings"
)

// Palette groups the semantic colors a theme is built from.
type Palette struct {
	// Background tiers, darkest surface first.
	BgPrimary   string
	BgSecondary string
	BgTertiary  string

	// Text tiers.
	TextPrimary   string
	TextSecondary string
	TextMuted     string

	Accent string
	Border string
}

// Style is one named style descriptor: CSS property -> value.
type Style map[string]string

// StyleSet is the fixed set of descriptors the pages consume. MessageBubble
// is a function of direction: outgoing bubbles use the accent pair, incoming
// ones the neutral surface pair.
type StyleSet struct {
	Textarea Style
	Card     Style
	Input    Style
	Border   Style
	Text     Style
	Muted    Style

	outgoing Style
	incoming Style
}

// MessageBubble selects the bubble style for the given direction.
func (s StyleSet) MessageBubble(outgoing bool) Style {
	if outgoing {
		return s.outgoing
	}
	return s.incoming
}

// Styles derives the full descriptor set from a palette.
func Styles(p Palette) StyleSet {
	return StyleSet{
		Textarea: Style{
			"background-color": p.BgTertiary,
			"color":            p.TextPrimary,
			"border":           "1px solid " + p.Border,
			"border-radius":    "8px",
		},
		Card: Style{
			"background-color": p.BgSecondary,
			"border":           "1px solid " + p.Border,
			"border-radius":    "12px",
			"color":            p.TextPrimary,
		},
		Input: Style{
			"background-color": p.BgTertiary,
			"color":            p.TextPrimary,
			"border":           "1px solid " + p.Border,
			"border-radius":    "6px",
		},
		Border: Style{
			"border-color": p.Border,
		},
		Text: Style{
			"color": p.TextSecondary,
		},
		Muted: Style{
			"color": p.TextMuted,
		},
		outgoing: Style{
			"background-color": p.Accent,
			"color":            p.BgPrimary,
		},
		incoming: Style{
			"background-color": p.BgTertiary,
			"color":            p.TextPrimary,
		},
	}
}

// Built-in palettes. The backend does not know about theming; palette choice
// is a gateway-side preference.
var palettes = map[string]Palette{
	"dark": {
		BgPrimary:     "#0b0f14",
		BgSecondary:   "#121821",
		BgTertiary:    "#1b2430",
		TextPrimary:   "#e6edf3",
		TextSecondary: "#9fb0c0",
		TextMuted:     "#5c6b7a",
		Accent:        "#2f81f7",
		Border:        "#27313d",
	},
	"light": {
		BgPrimary:     "#ffffff",
		BgSecondary:   "#f5f7fa",
		BgTertiary:    "#e9edf2",
		TextPrimary:   "#1c2733",
		TextSecondary: "#42515f",
		TextMuted:     "#8494a3",
		Accent:        "#0b5cd6",
		Border:        "#d4dbe3",
	},
}

// KnownPalette reports whether name is a built-in palette.
func KnownPalette(name string) bool {
	_, ok := palettes[name]
	return ok
}

// PaletteByName returns the named palette, defaulting to dark.
func PaletteByName(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["dark"]
}

// CSS renders the descriptor set as a stylesheet, one class per descriptor.
// Properties are emitted in sorted order so output is deterministic.
func CSS(s StyleSet) string {
	var b strings.Builder
	writeRule(&b, ".mv-bubble-out", s.outgoing)
	writeRule(&b, ".mv-bubble-in", s.incoming)
	writeRule(&b, ".mv-textarea", s.Textarea)
	writeRule(&b, ".mv-card", s.Card)
	writeRule(&b, ".mv-input", s.Input)
	writeRule(&b, ".mv-border", s.Border)
	writeRule(&b, ".mv-text", s.Text)
	writeRule(&b, ".mv-muted", s.Muted)
	return b.String()
}

func writeRule(b *strings.Builder, selector string, style Style) {
	props := make([]string, 0, len(style))
	for k := range style {
		props = append(props, k)
	}
	sort.Strings(props)

	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, k := range props {
		fmt.Fprintf(b, "  %s: %s;\n", k, style[k])
	}
	b.WriteString("}\n")
}
