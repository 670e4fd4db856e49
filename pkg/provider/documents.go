package provider

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultDocumentCacheSize bounds the open documents kept in memory.
const DefaultDocumentCacheSize = 256

// Document is an open text document as last reported by the host.
type Document struct {
	URI        string `json:"uri"`
	LanguageID string `json:"language_id"`
	Text       string `json:"text"`
	Version    int    `json:"version"`
}

// documentStore keeps the most recently touched documents. Evicted documents
// are simply forgotten; a completion for them falls back to the request text.
type documentStore struct {
	cache *lru.Cache[string, Document]
}

func newDocumentStore(size int) (*documentStore, error) {
	if size <= 0 {
		size = DefaultDocumentCacheSize
	}
	cache, err := lru.New[string, Document](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create document cache: %w", err)
	}
	return &documentStore{cache: cache}, nil
}

// put stores doc unless a newer version is already present.
func (s *documentStore) put(doc Document) bool {
	if cur, ok := s.cache.Peek(doc.URI); ok && doc.Version != 0 && cur.Version > doc.Version {
		return false
	}
	s.cache.Add(doc.URI, doc)
	return true
}

func (s *documentStore) get(uri string) (Document, bool) {
	return s.cache.Get(uri)
}

func (s *documentStore) remove(uri string) bool {
	return s.cache.Remove(uri)
}

func (s *documentStore) len() int {
	return s.cache.Len()
}
