package fixer

import (
	"bytes"
	"sort"

	"github.com/gnana997/twbracket/pkg/rewrite"
)

// edit replaces src[start:end] with text.
type edit struct {
	start, end int
	text       string
	rewrites   int
}

// classListEdit rewrites the class list at src[start:end]. ok is false when
// nothing in it changes.
func classListEdit(aliases *rewrite.AliasTable, src []byte, start, end int) (edit, bool) {
	if start < 0 || end > len(src) || start >= end {
		return edit{}, false
	}
	out, n := aliases.RewriteClassList(string(src[start:end]))
	if n == 0 {
		return edit{}, false
	}
	return edit{start: start, end: end, text: out, rewrites: n}, true
}

// applyEdits applies edits back to front so earlier offsets stay valid. An
// edit overlapping one that starts before it is dropped.
func applyEdits(src []byte, edits []edit) ([]byte, int) {
	if len(edits) == 0 {
		return src, 0
	}
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	kept := edits[:0:0]
	end := 0
	for _, e := range edits {
		if e.start < end {
			continue
		}
		kept = append(kept, e)
		end = e.end
	}

	out := bytes.Clone(src)
	total := 0
	for i := len(kept) - 1; i >= 0; i-- {
		e := kept[i]
		out = append(out[:e.start], append([]byte(e.text), out[e.end:]...)...)
		total += e.rewrites
	}
	return out, total
}

// locator finds lexer tokens in the unmodified source. Lexers may lowercase
// names in their own buffer, so matching is done on a lowercased copy.
type locator struct {
	lower  []byte
	cursor int
}

func newLocator(src []byte) *locator {
	return &locator{lower: bytes.ToLower(src)}
}

// next returns the offset of data at or after the cursor and moves the
// cursor past it.
func (l *locator) next(data []byte) (int, bool) {
	if len(data) == 0 {
		return l.cursor, true
	}
	idx := bytes.Index(l.lower[l.cursor:], bytes.ToLower(data))
	if idx < 0 {
		return 0, false
	}
	start := l.cursor + idx
	l.cursor = start + len(data)
	return start, true
}
