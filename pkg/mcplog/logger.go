// Package mcplog records MCP tool calls, one JSON object per line.
package mcplog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// Call is one line of the log.
type Call struct {
	Time     time.Time      `json:"ts"`
	Tool     string         `json:"tool"`
	Args     map[string]any `json:"args"`
	Duration int64          `json:"duration_ms"`
	Bytes    int            `json:"response_bytes"`
	Failed   bool           `json:"tool_error"`
	Err      string         `json:"error,omitempty"`
}

// Logger writes calls to an io.Writer. Each call goes out as a single Write,
// so concurrent callers never interleave lines. A nil *Logger drops
// everything.
type Logger struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// New logs to w. Close does not close w.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Open appends to the file at path, creating it and its directory. An empty
// path disables logging and yields a nil Logger.
func Open(path string) (*Logger, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mcplog: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mcplog: %w", err)
	}
	return &Logger{w: f, closer: f}, nil
}

// Record writes c.
func (l *Logger) Record(c Call) error {
	if l == nil {
		return nil
	}
	line, err := json.Marshal(c)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.w.Write(line)
	return err
}

// Start begins timing a call and returns the function that records it once
// the handler has returned. Write failures are dropped so the log can never
// fail a tool call.
func (l *Logger) Start(tool string, args map[string]any) func(*mcp.CallToolResult, error) {
	if l == nil {
		return func(*mcp.CallToolResult, error) {}
	}
	begun := now()
	return func(result *mcp.CallToolResult, err error) {
		c := Call{
			Time:     begun.UTC().Truncate(time.Second),
			Tool:     tool,
			Args:     Redact(args),
			Duration: now().Sub(begun).Milliseconds(),
			Bytes:    ContentSize(result),
			Failed:   result != nil && result.IsError,
		}
		if err != nil {
			c.Err = err.Error()
		}
		_ = l.Record(c)
	}
}

// Close closes the file opened by Open.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closer.Close()
}

// maxArgLen bounds string arguments kept verbatim; document text and source
// code are logged by length only.
const maxArgLen = 64

// Redact copies args, replacing each string longer than maxArgLen by a
// "<key>_len" entry.
func Redact(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		s, ok := v.(string)
		if !ok || len(s) <= maxArgLen {
			out[k] = v
			continue
		}
		out[k+"_len"] = len(s)
	}
	return out
}

// ContentSize is the encoded size of result's content, 0 when result is nil.
func ContentSize(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	b, err := json.Marshal(result.Content)
	if err != nil {
		return 0
	}
	return len(b)
}

var now = time.Now
