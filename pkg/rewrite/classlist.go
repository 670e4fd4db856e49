package rewrite

import (
	"strings"
	"unicode"
)

// RewriteClassList rewrites every class in value whose trailing word is a
// shorthand token with a known unit. Variant prefixes ("hover:", "md:") and
// surrounding whitespace are preserved. Unknown units are left alone so scale
// classes such as "text-2xl" are never touched. It returns the new value and
// how many classes were rewritten.
func (t *AliasTable) RewriteClassList(value string) (string, int) {
	var b strings.Builder
	b.Grow(len(value) + 8)

	count := 0
	i := 0
	for i < len(value) {
		if isSpace(value[i]) {
			b.WriteByte(value[i])
			i++
			continue
		}

		j := i
		for j < len(value) && !isSpace(value[j]) {
			j++
		}
		class := value[i:j]
		i = j

		word, start, ok := WordBeforeCursor(class)
		if !ok {
			b.WriteString(class)
			continue
		}
		tok, ok := Classify(word)
		if !ok || !KnownUnit(tok.Unit) {
			b.WriteString(class)
			continue
		}
		b.WriteString(class[:start])
		b.WriteString(t.Emit(tok).Text)
		count++
	}

	if count == 0 {
		return value, 0
	}
	return b.String(), count
}

// RewriteClassList rewrites value using the built-in aliases.
func RewriteClassList(value string) (string, int) {
	return defaultAliases.RewriteClassList(value)
}

func isSpace(c byte) bool {
	return c < 0x80 && unicode.IsSpace(rune(c))
}
