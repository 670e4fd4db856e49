package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/twbracket/pkg/util"
)

// Manager owns one parser pool per grammar.
//
// Callers own the returned trees and must Close them. The Manager itself must
// be closed once no parse is in flight.
//
// Example:
//
//	manager := NewManager(0, logger)
//	defer manager.Close()
//
//	tree, err := manager.ParseFile(src, "src/App.tsx")
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type Manager struct {
	poolSize int
	logger   *slog.Logger

	mu     sync.RWMutex
	pools  map[Grammar]*grammarPool
	parses int
	closed bool
}

// NewManager creates a manager whose pools hold up to poolSize parsers each.
// Zero picks util.GetOptimalPoolSize so the fixer's workers never wait on a
// parser.
func NewManager(poolSize int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		poolSize: util.GetOptimalPoolSizeWithOverride(poolSize),
		logger:   logger,
		pools:    make(map[Grammar]*grammarPool),
	}
}

// Parse parses source with grammar. Trees with syntax errors are still
// returned; tree-sitter recovers and the rest of the file stays usable.
func (m *Manager) Parse(source []byte, grammar Grammar) (*ts.Tree, error) {
	if grammar == GrammarUnknown {
		return nil, errors.New("cannot parse unknown grammar")
	}

	pool, err := m.pool(grammar)
	if err != nil {
		return nil, err
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("%s parser returned no tree", grammar)
	}
	if tree.RootNode().HasError() {
		m.logger.Debug("parse tree contains errors", "grammar", grammar.String())
	}
	return tree, nil
}

// ParseFile parses source with the grammar chosen by GrammarForPath.
func (m *Manager) ParseFile(source []byte, path string) (*ts.Tree, error) {
	grammar := GrammarForPath(path)
	if grammar == GrammarUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", path)
	}
	return m.Parse(source, grammar)
}

func (m *Manager) pool(grammar Grammar) (*grammarPool, error) {
	m.mu.RLock()
	pool, ok := m.pools[grammar]
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return nil, errors.New("parser manager closed")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.parses++
	if ok {
		return pool, nil
	}
	if pool, ok = m.pools[grammar]; ok {
		return pool, nil
	}

	pool = newGrammarPool(grammar, m.poolSize, m.logger)
	m.pools[grammar] = pool
	m.logger.Debug("created parser pool", "grammar", grammar.String(), "max_size", m.poolSize)
	return pool, nil
}

// Close frees all pooled parsers.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	closed := 0
	for _, pool := range m.pools {
		closed += pool.close()
	}
	m.pools = make(map[Grammar]*grammarPool)

	m.logger.Debug("parser manager closed", "parsers_closed", closed, "parses", m.parses)
	return nil
}

// Stats returns parser usage counters.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	created := 0
	for _, pool := range m.pools {
		created += pool.createdCount()
	}
	return Stats{ParsersCreated: created, Parses: m.parses}
}

// Stats contains parser usage counters.
type Stats struct {
	ParsersCreated int
	Parses         int
}
