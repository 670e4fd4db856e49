package provider

import (
	"strings"
	"unicode/utf16"

	"github.com/gnana997/twbracket/pkg/rewrite"
)

// LinePrefix returns the text of line pos.Line up to pos.Character, where
// Character counts UTF-16 code units. ok is false when the position lies
// outside the text or splits a surrogate pair.
func LinePrefix(text string, pos rewrite.Position) (string, bool) {
	if pos.Line < 0 || pos.Character < 0 {
		return "", false
	}
	line, ok := LineText(text, pos.Line)
	if !ok {
		return "", false
	}
	off, ok := byteOffset(line, pos.Character)
	if !ok {
		return "", false
	}
	return line[:off], true
}

// LineText returns line n of text without its line terminator.
func LineText(text string, n int) (string, bool) {
	if n < 0 {
		return "", false
	}
	for i := 0; i < n; i++ {
		nl := strings.IndexByte(text, '\n')
		if nl < 0 {
			return "", false
		}
		text = text[nl+1:]
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[:nl]
	}
	return strings.TrimSuffix(text, "\r"), true
}

func byteOffset(line string, character int) (int, bool) {
	units := 0
	for i, r := range line {
		if units == character {
			return i, true
		}
		units += utf16.RuneLen(r)
		if units > character {
			return 0, false
		}
	}
	if units == character {
		return len(line), true
	}
	return 0, false
}
