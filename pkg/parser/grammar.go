// Package parser wraps tree-sitter for the script files the fixer rewrites.
//
// Three grammars are supported: JavaScript (which covers JSX), TypeScript and
// TSX. Parsers are pooled per grammar so concurrent fixer workers never
// share one.
package parser

import (
	"path/filepath"
	"strings"
	"unsafe"

	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Grammar selects a tree-sitter grammar.
type Grammar int

const (
	GrammarUnknown Grammar = iota
	GrammarJavaScript
	GrammarTypeScript
	GrammarTSX
)

func (g Grammar) String() string {
	switch g {
	case GrammarJavaScript:
		return "javascript"
	case GrammarTypeScript:
		return "typescript"
	case GrammarTSX:
		return "tsx"
	default:
		return "unknown"
	}
}

// GrammarForPath picks the grammar from a file extension.
// .jsx goes through the JavaScript grammar, which parses JSX natively.
func GrammarForPath(path string) Grammar {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return GrammarJavaScript
	case ".ts", ".mts", ".cts":
		return GrammarTypeScript
	case ".tsx":
		return GrammarTSX
	default:
		return GrammarUnknown
	}
}

func (g Grammar) language() unsafe.Pointer {
	switch g {
	case GrammarJavaScript:
		return ts_javascript.Language()
	case GrammarTypeScript:
		return ts_typescript.LanguageTypescript()
	case GrammarTSX:
		return ts_typescript.LanguageTSX()
	default:
		return nil
	}
}
