package provider

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/twbracket/pkg/rewrite"
	"github.com/gnana997/twbracket/pkg/twconfig"
	"github.com/gnana997/twbracket/pkg/util"
)

func newTestProvider(t *testing.T, opts Options) *Provider {
	t.Helper()
	opts.Logger = util.NopLogger()
	p, err := New(opts)
	require.NoError(t, err)
	return p
}

func completeLine(p *Provider, lang, line string) []rewrite.CompletionItem {
	return p.Complete(CompletionRequest{
		LanguageID: lang,
		Text:       line,
		Position:   rewrite.Position{Line: 0, Character: rewrite.UTF16Len(line)},
	})
}

func TestComplete_SingleSuggestion(t *testing.T) {
	p := newTestProvider(t, Options{})

	items := completeLine(p, "javascriptreact", `<div className="w20p`)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "w-[20px]", item.Label)
	assert.Equal(t, "w-[20px]", item.InsertText)
	assert.Equal(t, "text", item.Kind)
	assert.Equal(t, "Tailwind arbitrary value: 20px", item.Detail)
	assert.True(t, item.Preselect)
	assert.Equal(t, rewrite.Range{
		Start: rewrite.Position{Line: 0, Character: 16},
		End:   rewrite.Position{Line: 0, Character: 20},
	}, item.Range)
}

func TestComplete_Examples(t *testing.T) {
	tests := []struct {
		name string
		lang string
		line string
		want string
	}{
		{"max height", "html", `<div class="flex maxH40vh`, "max-h-[40vh]"},
		{"negative", "vue", `<div class='top-20p`, "top-[-20px]"},
		{"unknown unit", "typescriptreact", `<p className="w5q`, "w-[5q]"},
		{"rem", "javascript", `<p className="p-4 g4r`, "gap-[4rem]"},
		{"variant", "css", `<p class="hover:h10r`, "h-[10rem]"},
	}

	p := newTestProvider(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := completeLine(p, tt.lang, tt.line)
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].Label)
		})
	}
}

func TestComplete_NoSuggestion(t *testing.T) {
	tests := []struct {
		name string
		lang string
		line string
	}{
		{"outside class attribute", "javascript", `const size = "w20p`},
		{"closed attribute", "html", `<div class="w20p" id="w20p`},
		{"no unit", "html", `<div class="w20`},
		{"bare property", "html", `<div class="w`},
		{"unrecognized language", "python", `<div class="w20p`},
		{"empty language", "", `<div class="w20p`},
	}

	p := newTestProvider(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := completeLine(p, tt.lang, tt.line)
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestComplete_Position(t *testing.T) {
	p := newTestProvider(t, Options{})
	text := "<div>\r\n  <span className=\"h10r\">\n</div>"

	items := p.Complete(CompletionRequest{
		LanguageID: "javascriptreact",
		Text:       text,
		Position:   rewrite.Position{Line: 1, Character: 23},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "h-[10rem]", items[0].Label)
	assert.Equal(t, 1, items[0].Range.Start.Line)
	assert.Equal(t, 19, items[0].Range.Start.Character)

	// Past the end of the line.
	items = p.Complete(CompletionRequest{
		LanguageID: "javascriptreact",
		Text:       text,
		Position:   rewrite.Position{Line: 1, Character: 80},
	})
	assert.Empty(t, items)

	// Past the last line.
	items = p.Complete(CompletionRequest{
		LanguageID: "javascriptreact",
		Text:       text,
		Position:   rewrite.Position{Line: 9, Character: 0},
	})
	assert.Empty(t, items)
}

func TestComplete_UTF16Columns(t *testing.T) {
	p := newTestProvider(t, Options{})
	line := `<p class="😀 w20p`

	items := completeLine(p, "html", line)
	require.Len(t, items, 1)
	// The emoji is two UTF-16 units.
	assert.Equal(t, 17, items[0].Range.End.Character)
	assert.Equal(t, 13, items[0].Range.Start.Character)
}

func TestComplete_ByURI(t *testing.T) {
	p := newTestProvider(t, Options{})
	p.DocumentOpened(ChangeEvent{Document: Document{
		URI:        "file:///app.tsx",
		LanguageID: "typescriptreact",
		Text:       "const a = 1;\n<div className=\"minw12r\">",
		Version:    1,
	}})

	items := p.Complete(CompletionRequest{
		URI:      "file:///app.tsx",
		Position: rewrite.Position{Line: 1, Character: 23},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "min-w-[12rem]", items[0].Label)

	items = p.Complete(CompletionRequest{
		URI:      "file:///missing.tsx",
		Position: rewrite.Position{Line: 0, Character: 0},
	})
	assert.Empty(t, items)

	p.DocumentClosed("file:///app.tsx")
	_, ok := p.Document("file:///app.tsx")
	assert.False(t, ok)
	assert.Equal(t, 0, p.OpenDocuments())
}

func TestComplete_ExtraAliases(t *testing.T) {
	p := newTestProvider(t, Options{
		Aliases: rewrite.NewAliasTable(map[string]string{"bw": "border"}),
	})
	items := completeLine(p, "html", `<i class="bw2p`)
	require.Len(t, items, 1)
	assert.Equal(t, "border-[2px]", items[0].Label)
}

func TestDocumentChanged_Retrigger(t *testing.T) {
	line := `<div className="w20p`
	base := ChangeEvent{
		Document:       Document{URI: "file:///a.jsx", LanguageID: "javascriptreact", Text: line, Version: 1},
		ContentChanges: 1,
		Active:         true,
		Cursor:         rewrite.Position{Line: 0, Character: rewrite.UTF16Len(line)},
	}

	tests := []struct {
		name   string
		mutate func(*ChangeEvent)
		want   bool
	}{
		{"complete token", func(*ChangeEvent) {}, true},
		{"no content changes", func(e *ChangeEvent) { e.ContentChanges = 0 }, false},
		{"inactive editor", func(e *ChangeEvent) { e.Active = false }, false},
		{"unrecognized language", func(e *ChangeEvent) { e.LanguageID = "markdown" }, false},
		{"digits only", func(e *ChangeEvent) {
			e.Text = `<div className="w20`
			e.Cursor.Character = rewrite.UTF16Len(e.Text)
		}, false},
		{"outside attribute", func(e *ChangeEvent) {
			e.Text = `let w = "w20p`
			e.Cursor.Character = rewrite.UTF16Len(e.Text)
		}, false},
		{"cursor past line", func(e *ChangeEvent) { e.Cursor.Character = 99 }, false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, Options{})
			ev := base
			ev.Version = i + 1
			tt.mutate(&ev)
			assert.Equal(t, tt.want, p.DocumentChanged(ev))
		})
	}
}

func TestDocumentChanged_StoresLatestVersion(t *testing.T) {
	p := newTestProvider(t, Options{})
	p.DocumentChanged(ChangeEvent{Document: Document{URI: "u", LanguageID: "html", Text: "v2", Version: 2}})
	p.DocumentChanged(ChangeEvent{Document: Document{URI: "u", LanguageID: "html", Text: "v1", Version: 1}})

	doc, ok := p.Document("u")
	require.True(t, ok)
	assert.Equal(t, "v2", doc.Text)
}

func TestDocumentStore_Evicts(t *testing.T) {
	p := newTestProvider(t, Options{DocumentCacheSize: 2})
	for _, uri := range []string{"a", "b", "c"} {
		p.DocumentOpened(ChangeEvent{Document: Document{URI: uri, LanguageID: "html"}})
	}
	assert.Equal(t, 2, p.OpenDocuments())
	_, ok := p.Document("a")
	assert.False(t, ok)
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWorkspaceFoldersChanged(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeConfig(t, first, "tailwind.config.ts", "spacing: { '1': 'first' }")
	writeConfig(t, second, "tailwind.config.js", "spacing: { '1': 'second', '2': 'x' }")

	var hooked []string
	p := newTestProvider(t, Options{
		FoldersChanged: func(folders []string) error {
			hooked = folders
			return errors.New("watch failed")
		},
	})

	result := p.WorkspaceFoldersChanged([]string{first, second})

	assert.Equal(t, filepath.Join(first, "tailwind.config.ts"), result.Path)
	assert.Equal(t, map[string]string{"1": "first"}, p.Spacing())
	assert.Equal(t, []string{first, second}, hooked)
	assert.Equal(t, []string{first, second}, p.Folders())
	assert.Equal(t, result.Path, p.SpacingSource())

	result = p.WorkspaceFoldersChanged([]string{second})
	assert.Equal(t, 2, result.Entries)

	result = p.WorkspaceFoldersChanged(nil)
	assert.Equal(t, twconfig.ScanResult{}, result)
	assert.Empty(t, p.Spacing())
}

func TestFileSaved(t *testing.T) {
	dir := t.TempDir()
	p := newTestProvider(t, Options{})
	p.WorkspaceFoldersChanged([]string{dir})
	assert.Empty(t, p.Spacing())

	path := writeConfig(t, dir, "tailwind.config.js", "spacing: { '72': '18rem' }")

	_, rescanned := p.FileSaved(filepath.Join(dir, "src", "App.tsx"))
	assert.False(t, rescanned)
	assert.Empty(t, p.Spacing())

	result, rescanned := p.FileSaved(path)
	assert.True(t, rescanned)
	assert.Equal(t, 1, result.Entries)
	assert.Equal(t, map[string]string{"72": "18rem"}, p.Spacing())
}

func TestTriggerCharacters(t *testing.T) {
	p := newTestProvider(t, Options{})
	chars := p.TriggerCharacters()

	assert.Len(t, chars, 65)
	seen := map[string]bool{}
	for _, c := range chars {
		assert.False(t, seen[c], "duplicate %q", c)
		seen[c] = true
	}
	for _, c := range []string{"a", "Z", "0", "9", "-", "%", "."} {
		assert.True(t, seen[c], c)
	}
}

func TestLanguages(t *testing.T) {
	p := newTestProvider(t, Options{Languages: []string{"svelte"}})
	assert.Equal(t, []string{"svelte"}, p.Languages())
	assert.True(t, p.Recognized("svelte"))
	assert.False(t, p.Recognized("html"))
}

func TestDispatch(t *testing.T) {
	dir := t.TempDir()
	config := writeConfig(t, dir, "tailwind.config.js", "spacing: { '4': '1rem' }")
	p := newTestProvider(t, Options{})

	scan := p.Dispatch(WorkspaceFoldersChangedEvent{Folders: []string{dir}})
	assert.Equal(t, twconfig.ScanResult{Path: config, Entries: 1}, scan)

	line := `<a className="p4r`
	change := ChangeEvent{
		Document:       Document{URI: "u", LanguageID: "javascriptreact", Text: line, Version: 1},
		ContentChanges: 1,
		Active:         true,
		Cursor:         rewrite.Position{Character: rewrite.UTF16Len(line)},
	}
	assert.Equal(t, RetriggerResult{Retrigger: true}, p.Dispatch(DocumentOpenedEvent{change}))
	change.Version = 2
	assert.Equal(t, RetriggerResult{Retrigger: true}, p.Dispatch(DocumentChangedEvent{change}))

	items, ok := p.Dispatch(CompletionRequest{URI: "u", Position: change.Cursor}).([]rewrite.CompletionItem)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "p-[4rem]", items[0].Label)

	assert.Equal(t, SaveResult{}, p.Dispatch(FileSavedEvent{Path: filepath.Join(dir, "index.html")}))
	assert.Equal(t, SaveResult{Rescanned: true, Path: config, Entries: 1}, p.Dispatch(FileSavedEvent{Path: config}))

	p.Dispatch(DocumentClosedEvent{URI: "u"})
	assert.Equal(t, 0, p.OpenDocuments())

	assert.Nil(t, p.Dispatch(nil))
}

func TestLinePrefix(t *testing.T) {
	tests := []struct {
		text string
		pos  rewrite.Position
		want string
		ok   bool
	}{
		{"abc", rewrite.Position{Line: 0, Character: 2}, "ab", true},
		{"abc", rewrite.Position{Line: 0, Character: 3}, "abc", true},
		{"abc", rewrite.Position{Line: 0, Character: 4}, "", false},
		{"a\r\nbc", rewrite.Position{Line: 1, Character: 2}, "bc", true},
		{"a\r\nbc", rewrite.Position{Line: 0, Character: 2}, "", false},
		{"a\nb", rewrite.Position{Line: 2, Character: 0}, "", false},
		{"😀x", rewrite.Position{Line: 0, Character: 1}, "", false},
		{"😀x", rewrite.Position{Line: 0, Character: 2}, "😀", true},
		{"é", rewrite.Position{Line: 0, Character: 1}, "é", true},
		{"", rewrite.Position{Line: 0, Character: 0}, "", true},
		{"abc", rewrite.Position{Line: -1, Character: 0}, "", false},
	}

	for _, tt := range tests {
		got, ok := LinePrefix(tt.text, tt.pos)
		assert.Equal(t, tt.ok, ok, "%q %+v", tt.text, tt.pos)
		assert.Equal(t, tt.want, got, "%q %+v", tt.text, tt.pos)
	}
}


func TestRewrite(t *testing.T) {
	p := newTestProvider(t, Options{})

	r, ok := p.Rewrite("maxH40vh")
	require.True(t, ok)
	assert.Equal(t, "max-h-[40vh]", r.Text)

	r, ok = p.Rewrite("top-20p")
	require.True(t, ok)
	assert.True(t, r.Negative)
	assert.Equal(t, "top-[-20px]", r.Text)

	_, ok = p.Rewrite("w20")
	assert.False(t, ok)
}
