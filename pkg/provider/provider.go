// Package provider answers completion requests for shorthand Tailwind tokens
// and reacts to the editor events that keep its state current.
//
// It is host neutral: the MCP server and the CLI both drive it through plain
// method calls or the Dispatch event feed.
package provider

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/gnana997/twbracket/pkg/rewrite"
	"github.com/gnana997/twbracket/pkg/twconfig"
)

// DefaultLanguages are the document language identifiers that get
// completions.
var DefaultLanguages = []string{"javascript", "typescriptreact", "javascriptreact", "html", "css", "vue"}

const triggerSource = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-%.pxremvwh"

// Options configures a Provider. Zero values pick defaults.
type Options struct {
	Aliases           *rewrite.AliasTable
	Scanner           *twconfig.Scanner
	Languages         []string
	DocumentCacheSize int

	// FoldersChanged is called with the new folder list before the rescan,
	// typically to re-point a config watcher.
	FoldersChanged func(folders []string) error

	Logger *slog.Logger
}

// Provider is safe for concurrent use.
type Provider struct {
	aliases        *rewrite.AliasTable
	scanner        *twconfig.Scanner
	languages      []string
	documents      *documentStore
	foldersChanged func([]string) error
	logger         *slog.Logger

	mu      sync.RWMutex
	folders []string
}

// New creates a Provider.
func New(opts Options) (*Provider, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Aliases == nil {
		opts.Aliases = rewrite.DefaultAliases()
	}
	if opts.Scanner == nil {
		opts.Scanner = twconfig.NewScanner(twconfig.NewOverrides(), nil, nil, opts.Logger)
	}
	if len(opts.Languages) == 0 {
		opts.Languages = DefaultLanguages
	}

	docs, err := newDocumentStore(opts.DocumentCacheSize)
	if err != nil {
		return nil, err
	}

	return &Provider{
		aliases:        opts.Aliases,
		scanner:        opts.Scanner,
		languages:      slices.Clone(opts.Languages),
		documents:      docs,
		foldersChanged: opts.FoldersChanged,
		logger:         opts.Logger,
	}, nil
}

// Recognized reports whether languageID gets completions.
func (p *Provider) Recognized(languageID string) bool {
	return slices.Contains(p.languages, languageID)
}

// Languages returns the recognized language identifiers.
func (p *Provider) Languages() []string {
	return slices.Clone(p.languages)
}

// TriggerCharacters returns the characters after which a host should ask for
// completions, without duplicates.
func (p *Provider) TriggerCharacters() []string {
	seen := make(map[rune]bool, len(triggerSource))
	chars := make([]string, 0, len(triggerSource))
	for _, c := range triggerSource {
		if seen[c] {
			continue
		}
		seen[c] = true
		chars = append(chars, string(c))
	}
	return chars
}

// Complete returns at most one suggestion. It never fails: anything that
// prevents a suggestion yields an empty, non-nil list.
func (p *Provider) Complete(req CompletionRequest) []rewrite.CompletionItem {
	items := []rewrite.CompletionItem{}

	text, lang := req.Text, req.LanguageID
	if text == "" && req.URI != "" {
		doc, ok := p.documents.get(req.URI)
		if !ok {
			p.logger.Debug("completion for unknown document", "uri", req.URI)
			return items
		}
		text = doc.Text
		if lang == "" {
			lang = doc.LanguageID
		}
	}
	if !p.Recognized(lang) {
		return items
	}

	prefix, ok := LinePrefix(text, req.Position)
	if !ok {
		return items
	}
	tok, ok := rewrite.ClassifyLine(prefix)
	if !ok {
		return items
	}

	item := p.aliases.Suggest(tok, req.Position.Line, req.Position.Character)
	p.logger.Debug("suggestion", "fragment", tok.Fragment, "label", item.Label)
	return append(items, item)
}

// Rewrite classifies a single fragment such as "maxH40vh" and emits its
// bracketed form. No class attribute context is required.
func (p *Provider) Rewrite(fragment string) (rewrite.Rewrite, bool) {
	tok, ok := rewrite.Classify(fragment)
	if !ok {
		return rewrite.Rewrite{}, false
	}
	return p.aliases.Emit(tok), true
}

// DocumentOpened stores the document. It returns whether the host should
// show suggestions again, with the same rules as DocumentChanged.
func (p *Provider) DocumentOpened(ev ChangeEvent) bool {
	return p.DocumentChanged(ev)
}

// DocumentChanged stores the new text and reports whether the host should
// re-invoke suggestion display: the edit changed content in the active
// editor of a recognized language and the cursor sits right after a complete
// shorthand token inside a class attribute.
func (p *Provider) DocumentChanged(ev ChangeEvent) bool {
	if ev.URI != "" && !p.documents.put(ev.Document) {
		p.logger.Debug("stale document version ignored", "uri", ev.URI, "version", ev.Version)
		return false
	}

	if ev.ContentChanges <= 0 || !ev.Active || !p.Recognized(ev.LanguageID) {
		return false
	}
	prefix, ok := LinePrefix(ev.Text, ev.Cursor)
	if !ok {
		return false
	}
	return rewrite.ShouldRetrigger(prefix)
}

// DocumentClosed forgets a document.
func (p *Provider) DocumentClosed(uri string) {
	p.documents.remove(uri)
}

// Document returns a stored document.
func (p *Provider) Document(uri string) (Document, bool) {
	return p.documents.get(uri)
}

// OpenDocuments returns how many documents are stored.
func (p *Provider) OpenDocuments() int {
	return p.documents.len()
}

// FileSaved rescans when path is a config file. The bool reports whether a
// rescan happened.
func (p *Provider) FileSaved(path string) (twconfig.ScanResult, bool) {
	if !p.scanner.IsConfigFile(path) {
		return twconfig.ScanResult{}, false
	}
	return p.Rescan(), true
}

// WorkspaceFoldersChanged replaces the folder list and rescans.
func (p *Provider) WorkspaceFoldersChanged(folders []string) twconfig.ScanResult {
	p.mu.Lock()
	p.folders = slices.Clone(folders)
	p.mu.Unlock()

	if p.foldersChanged != nil {
		if err := p.foldersChanged(slices.Clone(folders)); err != nil {
			p.logger.Warn("folder change hook failed", "error", err)
		}
	}
	return p.Rescan()
}

// Folders returns the current workspace folders.
func (p *Provider) Folders() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.folders)
}

// Rescan reloads overrides from the current folders.
func (p *Provider) Rescan() twconfig.ScanResult {
	return p.scanner.Scan(p.Folders())
}

// Spacing returns a copy of the current spacing overrides.
func (p *Provider) Spacing() map[string]string {
	return p.scanner.Overrides().Snapshot()
}

// SpacingSource returns the config file the overrides came from.
func (p *Provider) SpacingSource() string {
	return p.scanner.Overrides().Source()
}

// Dispatch routes one event and returns its result:
// []rewrite.CompletionItem for a CompletionRequest, RetriggerResult for
// document events, SaveResult for saves and twconfig.ScanResult for folder
// changes. Unknown events return nil.
func (p *Provider) Dispatch(ev Event) any {
	switch e := ev.(type) {
	case CompletionRequest:
		return p.Complete(e)
	case DocumentOpenedEvent:
		return RetriggerResult{Retrigger: p.DocumentOpened(e.ChangeEvent)}
	case DocumentChangedEvent:
		return RetriggerResult{Retrigger: p.DocumentChanged(e.ChangeEvent)}
	case DocumentClosedEvent:
		p.DocumentClosed(e.URI)
		return RetriggerResult{}
	case FileSavedEvent:
		result, rescanned := p.FileSaved(e.Path)
		return SaveResult{Rescanned: rescanned, Path: result.Path, Entries: result.Entries}
	case WorkspaceFoldersChangedEvent:
		return p.WorkspaceFoldersChanged(e.Folders)
	default:
		p.logger.Warn("unknown event", "event", ev)
		return nil
	}
}
