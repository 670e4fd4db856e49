package rewrite

import "strings"

// unitAliases maps the short unit codes accepted after a magnitude to CSS units.
var unitAliases = map[string]string{
	"p":  "px",
	"px": "px",
	"r":  "rem",
	"e":  "em",
	"vw": "vw",
	"vh": "vh",
	"%":  "%",
}

// ResolveUnit lowercases code and maps it to a CSS unit. Unknown codes are
// returned as-is (lowercased), so "vh" or "ch" typed directly pass through.
func ResolveUnit(code string) string {
	lower := strings.ToLower(code)
	if unit, ok := unitAliases[lower]; ok {
		return unit
	}
	return lower
}

// cssUnits lists the CSS length, time and angle units recognized when no
// short code applies.
var cssUnits = map[string]bool{
	"px": true, "rem": true, "em": true, "%": true,
	"vw": true, "vh": true, "vmin": true, "vmax": true,
	"dvw": true, "dvh": true, "svw": true, "svh": true, "lvw": true, "lvh": true,
	"ch": true, "ex": true, "cm": true, "mm": true, "in": true, "pt": true, "pc": true,
	"fr": true, "deg": true, "ms": true, "s": true,
}

// KnownUnit reports whether code is a short unit code or a CSS unit.
func KnownUnit(code string) bool {
	return cssUnits[ResolveUnit(code)]
}
