// Package rewrite turns shorthand utility tokens such as "w20p" into Tailwind
// arbitrary-value classes such as "w-[20px]".
//
// The package is pure: tables are built once and never mutated, and every
// function is safe for concurrent use.
package rewrite

import "strings"

// builtinAliases maps a lowercase shorthand property to its Tailwind utility
// prefix. Hyphenated utility names map to themselves so they survive
// normalization unchanged.
var builtinAliases = map[string]string{
	// Layout
	"w":      "w",
	"h":      "h",
	"minw":   "min-w",
	"minh":   "min-h",
	"maxw":   "max-w",
	"maxh":   "max-h",
	"width":  "w",
	"height": "h",

	// Padding
	"p":       "p",
	"px":      "px",
	"py":      "py",
	"pt":      "pt",
	"pb":      "pb",
	"pl":      "pl",
	"pr":      "pr",
	"padding": "p",

	// Margin
	"m":      "m",
	"mx":     "mx",
	"my":     "my",
	"mt":     "mt",
	"mb":     "mb",
	"ml":     "ml",
	"mr":     "mr",
	"margin": "m",

	// Gap
	"g":    "gap",
	"gap":  "gap",
	"gapx": "gap-x",
	"gapy": "gap-y",

	// Position
	"top":    "top",
	"right":  "right",
	"bottom": "bottom",
	"left":   "left",
	"inset":  "inset",
	"insetx": "inset-x",
	"insety": "inset-y",

	// Space, borders, radius
	"spacex":       "space-x",
	"spacey":       "space-y",
	"border":       "border",
	"bordert":      "border-t",
	"borderr":      "border-r",
	"borderb":      "border-b",
	"borderl":      "border-l",
	"rounded":      "rounded",
	"roundedt":     "rounded-t",
	"roundedr":     "rounded-r",
	"roundedb":     "rounded-b",
	"roundedl":     "rounded-l",
	"borderradius": "rounded",

	// Effects
	"opacity": "opacity",
	"shadow":  "shadow",

	// Transforms and transitions
	"translatex": "translate-x",
	"translatey": "translate-y",
	"rotate":     "rotate",
	"scale":      "scale",
	"scalex":     "scale-x",
	"scaley":     "scale-y",
	"skewx":      "skew-x",
	"skewy":      "skew-y",
	"duration":   "duration",
	"delay":      "delay",

	// Grid
	"colspan":  "col-span",
	"rowspan":  "row-span",
	"colstart": "col-start",
	"colend":   "col-end",
	"rowstart": "row-start",
	"rowend":   "row-end",

	// Misc and filters
	"z":             "z",
	"order":         "order",
	"origin":        "origin",
	"outline":       "outline",
	"outlineoffset": "outline-offset",
	"blur":          "blur",
	"brightness":    "brightness",
	"contrast":      "contrast",
	"saturate":      "saturate",
	"huerotate":     "hue-rotate",
	"dropshadow":    "drop-shadow",
	"grayscale":     "grayscale",
	"invert":        "invert",
	"sepia":         "sepia",

	// Already hyphenated
	"min-w":          "min-w",
	"min-h":          "min-h",
	"max-w":          "max-w",
	"max-h":          "max-h",
	"gap-x":          "gap-x",
	"gap-y":          "gap-y",
	"inset-x":        "inset-x",
	"inset-y":        "inset-y",
	"space-x":        "space-x",
	"space-y":        "space-y",
	"border-t":       "border-t",
	"border-r":       "border-r",
	"border-b":       "border-b",
	"border-l":       "border-l",
	"rounded-t":      "rounded-t",
	"rounded-r":      "rounded-r",
	"rounded-b":      "rounded-b",
	"rounded-l":      "rounded-l",
	"translate-x":    "translate-x",
	"translate-y":    "translate-y",
	"scale-x":        "scale-x",
	"scale-y":        "scale-y",
	"skew-x":         "skew-x",
	"skew-y":         "skew-y",
	"col-span":       "col-span",
	"row-span":       "row-span",
	"col-start":      "col-start",
	"col-end":        "col-end",
	"row-start":      "row-start",
	"row-end":        "row-end",
	"outline-offset": "outline-offset",
	"hue-rotate":     "hue-rotate",
	"drop-shadow":    "drop-shadow",
}

// AliasTable is an immutable property alias lookup.
type AliasTable struct {
	entries map[string]string
}

// NewAliasTable builds a table from the built-in aliases plus extra entries.
// Extra keys are lowercased; a key that collides with a built-in alias is
// ignored so the built-in mapping always wins.
func NewAliasTable(extra map[string]string) *AliasTable {
	entries := make(map[string]string, len(builtinAliases)+len(extra))
	for k, v := range builtinAliases {
		entries[k] = v
	}
	for k, v := range extra {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" || v == "" {
			continue
		}
		if _, exists := entries[key]; exists {
			continue
		}
		entries[key] = v
	}
	return &AliasTable{entries: entries}
}

// Normalize lowercases name and maps it through the table. Unknown names are
// returned lowercased.
func (t *AliasTable) Normalize(name string) string {
	lower := strings.ToLower(name)
	if canonical, ok := t.entries[lower]; ok {
		return canonical
	}
	return lower
}

// Len returns the number of aliases.
func (t *AliasTable) Len() int {
	return len(t.entries)
}

var defaultAliases = NewAliasTable(nil)

// DefaultAliases returns the table holding only the built-in aliases.
func DefaultAliases() *AliasTable {
	return defaultAliases
}

// Normalize maps name through the built-in alias table.
func Normalize(name string) string {
	return defaultAliases.Normalize(name)
}
