package fixer

import (
	"regexp"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/twbracket/pkg/rewrite"
)

// recoveredClassAttr finds quoted class attributes in text the grammar could
// not parse. "class" is a reserved word, so <div class="..."> in a script
// file always ends up inside an ERROR node.
var recoveredClassAttr = regexp.MustCompile(`\b(?:class|className)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// jsxEdits collects edits for class and className attributes in a parsed
// script file.
func jsxEdits(aliases *rewrite.AliasTable, root *ts.Node, src []byte) []edit {
	var edits []edit
	add := func(start, end int) {
		if e, ok := classListEdit(aliases, src, start, end); ok {
			edits = append(edits, e)
		}
	}

	walk(root, func(n *ts.Node) bool {
		switch {
		case n.IsError():
			errorNodeEdits(n, src, add)
			return true
		case n.Kind() == "jsx_attribute":
			start, end, ok := classValueSpan(n, src)
			if !ok {
				// Other attributes may hold JSX, e.g. icon={<Icon />}.
				return true
			}
			add(start, end)
			return false
		}
		return true
	})
	return edits
}

// errorNodeEdits scans the direct text of an ERROR node, skipping nested
// ERROR children which the walk visits on its own.
func errorNodeEdits(n *ts.Node, src []byte, add func(start, end int)) {
	from := int(n.StartByte())
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if !child.IsError() {
			continue
		}
		scanRecovered(src, from, int(child.StartByte()), add)
		from = int(child.EndByte())
	}
	scanRecovered(src, from, int(n.EndByte()), add)
}

func scanRecovered(src []byte, start, end int, add func(start, end int)) {
	if start >= end || end > len(src) {
		return
	}
	for _, m := range recoveredClassAttr.FindAllSubmatchIndex(src[start:end], -1) {
		for g := 2; g <= 4; g += 2 {
			if m[g] >= 0 {
				add(start+m[g], start+m[g+1])
			}
		}
	}
}

func walk(n *ts.Node, visit func(*ts.Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		walk(n.Child(i), visit)
	}
}

// classValueSpan returns the byte span of the literal class list of a
// jsx_attribute, excluding quotes.
func classValueSpan(attr *ts.Node, src []byte) (int, int, bool) {
	if attr.ChildCount() < 3 {
		return 0, 0, false
	}
	name := attr.Child(0)
	if name == nil || name.Kind() != "property_identifier" {
		return 0, 0, false
	}
	switch name.Utf8Text(src) {
	case "class", "className":
	default:
		return 0, 0, false
	}

	value := attr.Child(attr.ChildCount() - 1)
	if value == nil {
		return 0, 0, false
	}
	switch value.Kind() {
	case "string":
		return literalSpan(value)
	case "jsx_expression":
		for i := uint(0); i < value.ChildCount(); i++ {
			inner := value.Child(i)
			switch inner.Kind() {
			case "string":
				return literalSpan(inner)
			case "template_string":
				if hasSubstitution(inner) {
					return 0, 0, false
				}
				return literalSpan(inner)
			}
		}
	}
	return 0, 0, false
}

func literalSpan(n *ts.Node) (int, int, bool) {
	start, end := int(n.StartByte())+1, int(n.EndByte())-1
	if end <= start {
		return 0, 0, false
	}
	return start, end, true
}

func hasSubstitution(n *ts.Node) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		if n.Child(i).Kind() == "template_substitution" {
			return true
		}
	}
	return false
}
