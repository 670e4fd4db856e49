package rewrite

import "regexp"

var (
	// classAttrPattern matches a line prefix that ends inside an open
	// class="..." or className="..." attribute value.
	classAttrPattern = regexp.MustCompile(`(class|className)=["'][^"']*$`)

	// trailingWordPattern extracts the fragment immediately before the cursor.
	trailingWordPattern = regexp.MustCompile(`[\w\-%.]+$`)

	// tokenPattern splits a fragment into property, magnitude and unit. The
	// property is lazy so that a trailing hyphen stays attached to it
	// ("top-20p" -> "top-", "20", "p").
	tokenPattern = regexp.MustCompile(`^([a-zA-Z][-a-zA-Z]*?)(\d+)([a-z%]+)$`)

	// retriggerPattern is the "letters after the digits" shape that makes the
	// host re-open the suggestion widget while typing.
	retriggerPattern = regexp.MustCompile(`^[a-zA-Z][-a-zA-Z]*\d+[a-z%]+$`)
)

// ParsedToken is one classified fragment.
type ParsedToken struct {
	// Fragment is the full text that was classified, e.g. "maxH40vh".
	Fragment string
	// Property is the raw property text, possibly mixed case or ending in "-".
	Property string
	// Magnitude is the decimal digit run.
	Magnitude string
	// Unit is the raw unit code, e.g. "p", "vh", "%".
	Unit string
}

// Classify splits word into property, magnitude and unit. It reports false
// when word is not a complete PROPERTY MAGNITUDE UNIT token: a bare property
// ("w") or digits without a unit ("w20") never classify.
func Classify(word string) (ParsedToken, bool) {
	m := tokenPattern.FindStringSubmatch(word)
	if m == nil {
		return ParsedToken{}, false
	}
	return ParsedToken{
		Fragment:  word,
		Property:  m[1],
		Magnitude: m[2],
		Unit:      m[3],
	}, true
}

// InClassAttribute reports whether linePrefix ends inside an unterminated
// class or className attribute value.
func InClassAttribute(linePrefix string) bool {
	return classAttrPattern.MatchString(linePrefix)
}

// WordBeforeCursor returns the trailing word of linePrefix and its byte offset.
func WordBeforeCursor(linePrefix string) (word string, start int, ok bool) {
	loc := trailingWordPattern.FindStringIndex(linePrefix)
	if loc == nil {
		return "", 0, false
	}
	return linePrefix[loc[0]:loc[1]], loc[0], true
}

// ClassifyLine applies the activation gate to linePrefix and classifies the
// word before the cursor. Outside a class attribute nothing classifies.
func ClassifyLine(linePrefix string) (ParsedToken, bool) {
	if !InClassAttribute(linePrefix) {
		return ParsedToken{}, false
	}
	word, _, ok := WordBeforeCursor(linePrefix)
	if !ok {
		return ParsedToken{}, false
	}
	return Classify(word)
}

// ShouldRetrigger reports whether a text change leaving the cursor after
// linePrefix should make the host show suggestions again.
func ShouldRetrigger(linePrefix string) bool {
	if !InClassAttribute(linePrefix) {
		return false
	}
	word, _, ok := WordBeforeCursor(linePrefix)
	if !ok {
		return false
	}
	return retriggerPattern.MatchString(word)
}
