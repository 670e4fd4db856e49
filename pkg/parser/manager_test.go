package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/twbracket/pkg/util"
)

func TestGrammarForPath(t *testing.T) {
	tests := []struct {
		path string
		want Grammar
	}{
		{"app.js", GrammarJavaScript},
		{"App.JSX", GrammarJavaScript},
		{"config.mjs", GrammarJavaScript},
		{"config.cjs", GrammarJavaScript},
		{"lib.ts", GrammarTypeScript},
		{"lib.mts", GrammarTypeScript},
		{"App.tsx", GrammarTSX},
		{"index.html", GrammarUnknown},
		{"README", GrammarUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, GrammarForPath(tt.path))
		})
	}
}

func TestGrammarString(t *testing.T) {
	assert.Equal(t, "javascript", GrammarJavaScript.String())
	assert.Equal(t, "typescript", GrammarTypeScript.String())
	assert.Equal(t, "tsx", GrammarTSX.String())
	assert.Equal(t, "unknown", GrammarUnknown.String())
}

func TestManager_ParseJSX(t *testing.T) {
	manager := NewManager(2, util.NopLogger())
	defer manager.Close()

	src := []byte(`export const App = () => <div className="w20p">hi</div>;`)
	tree, err := manager.ParseFile(src, "App.jsx")
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "program", root.Kind())
	assert.False(t, root.HasError())
	assert.Contains(t, root.ToSexp(), "jsx_attribute")
}

func TestManager_ParseTSX(t *testing.T) {
	manager := NewManager(2, util.NopLogger())
	defer manager.Close()

	src := []byte(`const App = (p: { n: number }) => <span className={"h10r"} />;`)
	tree, err := manager.Parse(src, GrammarTSX)
	require.NoError(t, err)
	defer tree.Close()

	assert.Contains(t, tree.RootNode().ToSexp(), "jsx_self_closing_element")
}

func TestManager_ParseTypeScript(t *testing.T) {
	manager := NewManager(2, util.NopLogger())
	defer manager.Close()

	tree, err := manager.Parse([]byte("const x: number = 1;"), GrammarTypeScript)
	require.NoError(t, err)
	defer tree.Close()
	assert.Equal(t, "program", tree.RootNode().Kind())
}

func TestManager_SyntaxErrorsStillReturnTree(t *testing.T) {
	manager := NewManager(1, util.NopLogger())
	defer manager.Close()

	tree, err := manager.Parse([]byte("const = <div className="), GrammarJavaScript)
	require.NoError(t, err)
	defer tree.Close()
	assert.True(t, tree.RootNode().HasError())
}

func TestManager_UnknownGrammar(t *testing.T) {
	manager := NewManager(1, util.NopLogger())
	defer manager.Close()

	_, err := manager.Parse([]byte("x"), GrammarUnknown)
	assert.Error(t, err)

	_, err = manager.ParseFile([]byte("x"), "styles.css")
	assert.Error(t, err)
}

func TestManager_Closed(t *testing.T) {
	manager := NewManager(1, util.NopLogger())
	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())

	_, err := manager.Parse([]byte("x"), GrammarJavaScript)
	assert.Error(t, err)
}

func TestManager_ConcurrentParsing(t *testing.T) {
	manager := NewManager(4, util.NopLogger())
	defer manager.Close()

	const goroutines = 50
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			grammar := []Grammar{GrammarJavaScript, GrammarTypeScript, GrammarTSX}[i%3]
			tree, err := manager.Parse([]byte(`const a = <b className="p4r" />;`), grammar)
			if err != nil {
				errs <- err
				return
			}
			tree.Close()
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	stats := manager.Stats()
	assert.Equal(t, goroutines, stats.Parses)
	assert.LessOrEqual(t, stats.ParsersCreated, 12)
	assert.Greater(t, stats.ParsersCreated, 0)
}
