package fixer

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"

	"github.com/gnana997/twbracket/pkg/rewrite"
)

// markupEdits collects edits for class attributes in HTML and Vue templates.
func markupEdits(aliases *rewrite.AliasTable, src []byte) []edit {
	var edits []edit

	// The lexer may write into its buffer, so it gets a copy.
	lexer := html.NewLexer(parse.NewInputBytes(bytes.Clone(src)))
	loc := newLocator(src)

	for {
		tt, data := lexer.Next()
		if tt == html.ErrorToken {
			return edits
		}

		start, ok := loc.next(data)
		if !ok || tt != html.AttributeToken {
			continue
		}
		if !strings.EqualFold(string(lexer.Text()), "class") {
			continue
		}

		val := lexer.AttrVal()
		if len(val) < 2 || (val[0] != '"' && val[0] != '\'') || val[len(val)-1] != val[0] {
			continue
		}
		valStart := start + len(data) - len(val)
		if valStart < start || !bytes.Equal(src[valStart:valStart+len(val)], val) {
			continue
		}
		if e, ok := classListEdit(aliases, src, valStart+1, valStart+len(val)-1); ok {
			edits = append(edits, e)
		}
	}
}
