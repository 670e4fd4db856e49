package rewrite

import (
	"strings"
	"unicode/utf16"
)

// Rewrite is the decoded and emitted form of a ParsedToken.
type Rewrite struct {
	// Property is the canonical utility prefix with any sign hyphen removed.
	Property string `json:"property"`
	// Negative is set when the property carried a trailing hyphen.
	Negative bool `json:"negative"`
	// Magnitude is the digit run, unsigned.
	Magnitude string `json:"magnitude"`
	// Unit is the resolved CSS unit.
	Unit string `json:"unit"`
	// Text is the replacement class, e.g. "top-[-20px]".
	Text string `json:"text"`
}

// Value returns the bracket content without brackets, e.g. "-20px".
func (r Rewrite) Value() string {
	if r.Negative {
		return "-" + r.Magnitude + r.Unit
	}
	return r.Magnitude + r.Unit
}

// Emit normalizes and assembles the replacement class for tok. It never fails:
// unknown properties and units pass through as text.
func (t *AliasTable) Emit(tok ParsedToken) Rewrite {
	property := t.Normalize(tok.Property)
	unit := ResolveUnit(tok.Unit)

	negative := strings.HasSuffix(property, "-") && !strings.HasPrefix(tok.Magnitude, "-")
	if negative {
		property = strings.TrimSuffix(property, "-")
	}

	r := Rewrite{
		Property:  property,
		Negative:  negative,
		Magnitude: tok.Magnitude,
		Unit:      unit,
	}
	r.Text = property + "-[" + r.Value() + "]"
	return r
}

// Emit assembles the replacement class for tok using the built-in aliases.
func Emit(tok ParsedToken) Rewrite {
	return defaultAliases.Emit(tok)
}

// Position is a zero-based line and UTF-16 character offset.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span between two positions on the same document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// CompletionItem is one suggestion offered to the host.
type CompletionItem struct {
	Label      string `json:"label"`
	Kind       string `json:"kind"`
	InsertText string `json:"insert_text"`
	Detail     string `json:"detail"`
	Range      Range  `json:"range"`
	Preselect  bool   `json:"preselect"`
}

// detailPrefix starts the human-readable description of a suggestion.
const detailPrefix = "Tailwind arbitrary value: "

// Suggest emits tok and wraps it as a completion item replacing the fragment
// that ends at cursor on line.
func (t *AliasTable) Suggest(tok ParsedToken, line, cursor int) CompletionItem {
	r := t.Emit(tok)
	start := cursor - UTF16Len(tok.Fragment)
	if start < 0 {
		start = 0
	}
	return CompletionItem{
		Label:      r.Text,
		Kind:       "text",
		InsertText: r.Text,
		Detail:     detailPrefix + r.Value(),
		Range: Range{
			Start: Position{Line: line, Character: start},
			End:   Position{Line: line, Character: cursor},
		},
		Preselect: true,
	}
}

// Suggest is Suggest on the built-in aliases.
func Suggest(tok ParsedToken, line, cursor int) CompletionItem {
	return defaultAliases.Suggest(tok, line, cursor)
}

// UTF16Len returns the length of s in UTF-16 code units, the unit editors
// count columns in.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
