// Package twconfig finds tailwind.config files in workspace folders and
// scrapes numeric spacing overrides out of them.
//
// The scrape is pattern matching, not evaluation: blocks are delimited by the
// first closing brace, so a nested object inside a spacing block truncates it.
package twconfig

import "regexp"

var (
	spacingBlockPattern = regexp.MustCompile(`spacing\s*:\s*\{([^}]*)\}`)
	extendBlockPattern  = regexp.MustCompile(`extend\s*:\s*\{([^}]*)spacing\s*:\s*\{([^}]*)\}`)
	spacingEntryPattern = regexp.MustCompile(`'(\d+)':\s*'([^']+)'`)
)

// ExtractOverrides returns the numeric spacing entries found in a config
// file's text. Entries of theme.spacing are read first, then those of
// theme.extend.spacing, which win on key collision. The result is never nil.
func ExtractOverrides(text string) map[string]string {
	overrides := make(map[string]string)

	if m := spacingBlockPattern.FindStringSubmatch(text); m != nil {
		collectEntries(m[1], overrides)
	}

	if m := extendBlockPattern.FindStringSubmatch(text); m != nil {
		collectEntries(m[2], overrides)
	}

	return overrides
}

func collectEntries(block string, into map[string]string) {
	for _, m := range spacingEntryPattern.FindAllStringSubmatch(block, -1) {
		into[m[1]] = m[2]
	}
}
