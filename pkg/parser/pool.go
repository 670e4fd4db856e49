package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// grammarPool hands out parsers for one grammar. Parsers are created lazily
// up to maxSize; past that, acquire blocks until one is released.
type grammarPool struct {
	grammar Grammar
	idle    chan *ts.Parser
	maxSize int
	logger  *slog.Logger

	mu      sync.Mutex
	created int
}

func newGrammarPool(grammar Grammar, maxSize int, logger *slog.Logger) *grammarPool {
	return &grammarPool{
		grammar: grammar,
		idle:    make(chan *ts.Parser, maxSize),
		maxSize: maxSize,
		logger:  logger,
	}
}

func (p *grammarPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.idle:
		return parser, nil
	default:
	}

	p.mu.Lock()
	if p.created >= p.maxSize {
		p.mu.Unlock()
		return <-p.idle, nil
	}

	parser := ts.NewParser()
	if parser == nil {
		p.mu.Unlock()
		return nil, errors.New("failed to create parser")
	}
	if err := parser.SetLanguage(ts.NewLanguage(p.grammar.language())); err != nil {
		parser.Close()
		p.mu.Unlock()
		return nil, fmt.Errorf("failed to set %s grammar: %w", p.grammar, err)
	}
	p.created++
	size := p.created
	p.mu.Unlock()

	p.logger.Debug("created parser", "grammar", p.grammar.String(), "pool_size", size)
	return parser, nil
}

func (p *grammarPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.idle <- parser:
	default:
		parser.Close()
		p.logger.Warn("parser pool full, closing excess parser", "grammar", p.grammar.String())
	}
}

// close frees every idle parser. Parsers still checked out are not seen, so
// callers must stop parsing first.
func (p *grammarPool) close() int {
	closed := 0
	for {
		select {
		case parser := <-p.idle:
			parser.Close()
			closed++
		default:
			return closed
		}
	}
}

func (p *grammarPool) createdCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}
