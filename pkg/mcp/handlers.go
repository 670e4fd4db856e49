package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/twbracket/pkg/fixer"
	"github.com/gnana997/twbracket/pkg/provider"
	"github.com/gnana997/twbracket/pkg/rewrite"
)

type completeResult struct {
	Items []rewrite.CompletionItem `json:"items"`
}

type rewriteTokenResult struct {
	Token   string           `json:"token"`
	Matched bool             `json:"matched"`
	Rewrite *rewrite.Rewrite `json:"rewrite,omitempty"`
}

type rewriteSourceResult struct {
	Path     string `json:"path"`
	Rewrites int    `json:"rewrites"`
	Changed  bool   `json:"changed"`
	Code     string `json:"code"`
}

type documentClosedResult struct {
	URI    string `json:"uri"`
	Closed bool   `json:"closed"`
}

type spacingResult struct {
	Source  string            `json:"source"`
	Entries map[string]string `json:"entries"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// endOfLine returns the UTF-16 length of line n of text, 0 when out of range.
func endOfLine(text string, n int) int {
	line, ok := provider.LineText(text, n)
	if !ok {
		return 0
	}
	return rewrite.UTF16Len(line)
}

func (s *Server) handleComplete(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	uri := req.GetString("uri", "")
	if text == "" && uri == "" {
		return mcp.NewToolResultError("text or uri is required"), nil
	}

	line := req.GetInt("line", 0)
	if line < 0 {
		return mcp.NewToolResultError("line must not be negative"), nil
	}
	character := req.GetInt("character", -1)
	if character < 0 {
		src := text
		if src == "" {
			if doc, ok := s.provider.Document(uri); ok {
				src = doc.Text
			}
		}
		character = endOfLine(src, line)
	}

	items := s.provider.Complete(provider.CompletionRequest{
		LanguageID: req.GetString("language_id", ""),
		URI:        uri,
		Text:       text,
		Position:   rewrite.Position{Line: line, Character: character},
	})
	return jsonResult(completeResult{Items: items})
}

func (s *Server) handleRewriteToken(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := req.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := rewriteTokenResult{Token: token}
	if r, ok := s.provider.Rewrite(token); ok {
		result.Matched = true
		result.Rewrite = &r
	}
	return jsonResult(result)
}

func (s *Server) handleRewriteSource(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	code, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.fixer == nil {
		return mcp.NewToolResultError("source rewriting is not available"), nil
	}
	if !fixer.Supported(path) {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported file type: %s", path)), nil
	}

	fixed, err := s.fixer.FixSource(path, []byte(code))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rewriteSourceResult{
		Path:     path,
		Rewrites: fixed.Rewrites,
		Changed:  fixed.Changed,
		Code:     string(fixed.Output),
	})
}

// changeEvent reads the document arguments shared by document_opened and
// document_changed. A non-nil result is the tool error to return.
func changeEvent(req mcp.CallToolRequest, defaultChanges int) (provider.ChangeEvent, *mcp.CallToolResult) {
	var ev provider.ChangeEvent
	for _, key := range []string{"uri", "language_id", "text"} {
		if _, err := req.RequireString(key); err != nil {
			return ev, mcp.NewToolResultError(err.Error())
		}
	}
	text := req.GetString("text", "")

	line := req.GetInt("line", -1)
	character := req.GetInt("character", -1)
	if line >= 0 && character < 0 {
		character = endOfLine(text, line)
	}

	ev.Document = provider.Document{
		URI:        req.GetString("uri", ""),
		LanguageID: req.GetString("language_id", ""),
		Text:       text,
		Version:    req.GetInt("version", 0),
	}
	ev.ContentChanges = req.GetInt("content_changes", defaultChanges)
	ev.Active = req.GetBool("active", true)
	ev.Cursor = rewrite.Position{Line: line, Character: character}
	return ev, nil
}

func (s *Server) handleDocumentOpened(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ev, errResult := changeEvent(req, 0)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(s.provider.Dispatch(provider.DocumentOpenedEvent{ChangeEvent: ev}))
}

func (s *Server) handleDocumentChanged(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ev, errResult := changeEvent(req, 1)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(s.provider.Dispatch(provider.DocumentChangedEvent{ChangeEvent: ev}))
}

func (s *Server) handleDocumentClosed(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uri, err := req.RequireString("uri")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.provider.Dispatch(provider.DocumentClosedEvent{URI: uri})
	return jsonResult(documentClosedResult{URI: uri, Closed: true})
}

func (s *Server) handleFileSaved(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.provider.Dispatch(provider.FileSavedEvent{Path: path}))
}

func (s *Server) handleWorkspaceFoldersChanged(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folders, err := req.RequireStringSlice("folders")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, f := range folders {
		if f == "" {
			return mcp.NewToolResultError("folders must not contain empty paths"), nil
		}
	}
	return jsonResult(s.provider.Dispatch(provider.WorkspaceFoldersChangedEvent{Folders: folders}))
}

func (s *Server) handleGetSpacing(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(spacingResult{
		Source:  s.provider.SpacingSource(),
		Entries: s.provider.Spacing(),
	})
}
