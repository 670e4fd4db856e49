package provider

import "github.com/gnana997/twbracket/pkg/rewrite"

// Event is anything the host feeds into Dispatch.
type Event interface {
	eventKind() string
}

// CompletionRequest asks for suggestions at a position. Text, when set, is
// used as the document text; otherwise the open document URI is looked up.
// An empty LanguageID takes the stored document's language.
type CompletionRequest struct {
	LanguageID string           `json:"language_id"`
	URI        string           `json:"uri,omitempty"`
	Text       string           `json:"text,omitempty"`
	Position   rewrite.Position `json:"position"`
}

// ChangeEvent reports the full new text of a document after an edit.
type ChangeEvent struct {
	Document
	// ContentChanges is the number of edits the host applied.
	ContentChanges int `json:"content_changes"`
	// Active is set when the document is shown in the focused editor.
	Active bool `json:"active"`
	// Cursor is the primary cursor of the active editor.
	Cursor rewrite.Position `json:"cursor"`
}

// DocumentOpenedEvent wraps ChangeEvent for a newly opened document.
type DocumentOpenedEvent struct{ ChangeEvent }

// DocumentChangedEvent wraps ChangeEvent for an edited document.
type DocumentChangedEvent struct{ ChangeEvent }

// DocumentClosedEvent drops a document from the store.
type DocumentClosedEvent struct {
	URI string `json:"uri"`
}

// FileSavedEvent reports a saved file path.
type FileSavedEvent struct {
	Path string `json:"path"`
}

// WorkspaceFoldersChangedEvent carries the complete new folder list, in the
// host's order.
type WorkspaceFoldersChangedEvent struct {
	Folders []string `json:"folders"`
}

func (CompletionRequest) eventKind() string            { return "completion" }
func (DocumentOpenedEvent) eventKind() string          { return "document_opened" }
func (DocumentChangedEvent) eventKind() string         { return "document_changed" }
func (DocumentClosedEvent) eventKind() string          { return "document_closed" }
func (FileSavedEvent) eventKind() string               { return "file_saved" }
func (WorkspaceFoldersChangedEvent) eventKind() string { return "workspace_folders_changed" }

// RetriggerResult is the Dispatch result for document events.
type RetriggerResult struct {
	Retrigger bool `json:"retrigger"`
}

// SaveResult is the Dispatch result for FileSavedEvent.
type SaveResult struct {
	Rescanned bool   `json:"rescanned"`
	Path      string `json:"path,omitempty"`
	Entries   int    `json:"entries"`
}
