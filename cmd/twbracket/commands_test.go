package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/twbracket/pkg/rewrite"
)

// execute runs the CLI with args inside a fresh working directory.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--log-level", "error"}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestCompleteCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "complete", `<div class="flex w20p`)
	require.NoError(t, err)
	assert.Equal(t, "w-[20px]\tTailwind arbitrary value: 20px\n", out)
}

func TestCompleteCommand_JSON(t *testing.T) {
	out, err := execute(t, t.TempDir(), "complete", "--json", `<a className="top-20p`)
	require.NoError(t, err)

	var items []rewrite.CompletionItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "top-[-20px]", items[0].Label)
	assert.Equal(t, 14, items[0].Range.Start.Character)
	assert.Equal(t, 21, items[0].Range.End.Character)
}

func TestCompleteCommand_NoSuggestion(t *testing.T) {
	_, err := execute(t, t.TempDir(), "complete", `<div id="w20p`)
	assert.ErrorIs(t, err, errNoSuggestion)

	out, err := execute(t, t.TempDir(), "complete", "--json", `<div id="w20p`)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestCompleteCommand_UnknownLanguage(t *testing.T) {
	_, err := execute(t, t.TempDir(), "complete", "--language", "python", `<div class="w20p`)
	assert.ErrorIs(t, err, errNoSuggestion)
}

func TestCursorPosition(t *testing.T) {
	pos, err := cursorPosition("a\nbcd", -1, -1)
	require.NoError(t, err)
	assert.Equal(t, rewrite.Position{Line: 1, Character: 3}, pos)

	pos, err = cursorPosition("a\nbcd", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, rewrite.Position{Line: 0, Character: 1}, pos)

	_, err = cursorPosition("a", 3, -1)
	assert.Error(t, err)

	_, err = cursorPosition("abc", 0, 9)
	assert.Error(t, err)
}

func TestFixCommand(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(page, []byte(`<div class="w20p mt4r"></div>`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "pkg"), 0o755))
	vendored := filepath.Join(dir, "node_modules", "pkg", "a.html")
	require.NoError(t, os.WriteFile(vendored, []byte(`<p class="w20p"></p>`), 0o644))

	out, err := execute(t, dir, "fix")
	require.NoError(t, err)
	assert.Contains(t, out, "would rewrite index.html (2)")

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, `<div class="w20p mt4r"></div>`, string(data), "dry run must not write")

	out, err = execute(t, dir, "fix", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "rewrote index.html (2)")

	data, err = os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, `<div class="w-[20px] mt-[4rem]"></div>`, string(data))

	data, err = os.ReadFile(vendored)
	require.NoError(t, err)
	assert.Equal(t, `<p class="w20p"></p>`, string(data))
}

func TestFixCommand_MissingPath(t *testing.T) {
	_, err := execute(t, t.TempDir(), "fix", "nope")
	assert.Error(t, err)
}

func TestSpacingCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tailwind.config.js"), []byte(`module.exports = {
  theme: {
    spacing: { '72': '18rem', '84': '21rem' },
  },
}`), 0o644))

	out, err := execute(t, dir, "spacing", "--json")
	require.NoError(t, err)

	var report spacingReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "tailwind.config.js", filepath.Base(report.Source))
	assert.Equal(t, map[string]string{"72": "18rem", "84": "21rem"}, report.Entries)

	out, err = execute(t, t.TempDir(), "spacing")
	require.NoError(t, err)
	assert.Equal(t, "no tailwind config found\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "twbracket "+version))
}

func TestProjectConfigAliases(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".twbracket"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".twbracket", "config.yaml"),
		[]byte("aliases:\n  bw: border\n"), 0o644))

	out, err := execute(t, dir, "complete", `<i class="bw2p`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "border-[2px]\t"))
}
