package fixer

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/gnana997/twbracket/pkg/rewrite"
)

// stylesheetEdits collects edits for the class lists of @apply rules.
func stylesheetEdits(aliases *rewrite.AliasTable, src []byte) []edit {
	var edits []edit

	lexer := css.NewLexer(parse.NewInputBytes(bytes.Clone(src)))
	loc := newLocator(src)

	applyEnd := -1
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if applyEnd >= 0 {
				if e, ok := classListEdit(aliases, src, applyEnd, len(src)); ok {
					edits = append(edits, e)
				}
			}
			return edits
		}

		start, ok := loc.next(data)
		if !ok {
			continue
		}

		switch {
		case tt == css.AtKeywordToken && strings.EqualFold(string(data), "@apply"):
			applyEnd = start + len(data)
		case applyEnd >= 0 && (tt == css.SemicolonToken || tt == css.RightBraceToken || tt == css.LeftBraceToken):
			if e, ok := classListEdit(aliases, src, applyEnd, start); ok {
				edits = append(edits, e)
			}
			applyEnd = -1
		case applyEnd >= 0 && tt == css.CommentToken:
			// Split the list around the comment so its text stays as written.
			if e, ok := classListEdit(aliases, src, applyEnd, start); ok {
				edits = append(edits, e)
			}
			applyEnd = start + len(data)
		}
	}
}
