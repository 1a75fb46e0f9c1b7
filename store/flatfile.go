package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FlatFileStore keeps the entire keyspace in a single JSON document
// on disk. Every operation reads, parses, mutates, serializes and
// rewrites the whole document, even for a single-key change.
//
// Document layout:
//
//	{
//	  "currentUsers":   { "current_user_<id>": ... },
//	  "availabilities": { "availability_<member>_<y>_<m>": {...} },
//	  "concerts":       [...],
//	  "links":          [...],
//	  "extra":          { ... }   # keys outside the known families
//	}
//
// The mutex serializes individual operations within this process, but a
// read-modify-write done as separate Get and Put calls (list append,
// delete-by-index) still races: two such sequences can both read the
// same snapshot and one write back a list missing the other's change.
type FlatFileStore struct {
	mu   sync.RWMutex
	path string
}

// document is the on-disk shape. Concerts and Links are nil until the
// first write to their key, which is how "absent" is represented.
type document struct {
	CurrentUsers   map[string]any `json:"currentUsers"`
	Availabilities map[string]any `json:"availabilities"`
	Concerts       any            `json:"concerts,omitempty"`
	Links          any            `json:"links,omitempty"`
	Extra          map[string]any `json:"extra,omitempty"`
}

func emptyDocument() *document {
	return &document{
		CurrentUsers:   map[string]any{},
		Availabilities: map[string]any{},
	}
}

// NewFlatFileStore creates the document with an empty structure only if
// the file does not already exist; existing content is left alone.
func NewFlatFileStore(path string) (*FlatFileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &FlatFileStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(emptyDocument()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return s, nil
}

// load reads and parses the document. An unparseable file falls back to
// the empty structure rather than failing the request; the bad content
// is replaced wholesale on the next write, never merged.
func (s *FlatFileStore) load() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return emptyDocument(), nil
		}
		return nil, fmt.Errorf("read %s: %w: %v", s.path, ErrUnavailable, err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return emptyDocument(), nil
	}
	if doc.CurrentUsers == nil {
		doc.CurrentUsers = map[string]any{}
	}
	if doc.Availabilities == nil {
		doc.Availabilities = map[string]any{}
	}
	return &doc, nil
}

func (s *FlatFileStore) save(doc *document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w: %v", s.path, ErrUnavailable, err)
	}
	return nil
}

func (s *FlatFileStore) Get(key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	switch {
	case key == KeyConcerts:
		return doc.Concerts, nil
	case key == KeyLinks:
		return doc.Links, nil
	case strings.HasPrefix(key, currentUserPrefix):
		return doc.CurrentUsers[key], nil
	case strings.HasPrefix(key, availabilityPrefix):
		return doc.Availabilities[key], nil
	default:
		return doc.Extra[key], nil
	}
}

func (s *FlatFileStore) Put(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	switch {
	case key == KeyConcerts:
		doc.Concerts = value
	case key == KeyLinks:
		doc.Links = value
	case strings.HasPrefix(key, currentUserPrefix):
		doc.CurrentUsers[key] = value
	case strings.HasPrefix(key, availabilityPrefix):
		doc.Availabilities[key] = value
	default:
		if doc.Extra == nil {
			doc.Extra = map[string]any{}
		}
		doc.Extra[key] = value
	}
	return s.save(doc)
}

func (s *FlatFileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	switch {
	case key == KeyConcerts:
		doc.Concerts = nil
	case key == KeyLinks:
		doc.Links = nil
	case strings.HasPrefix(key, currentUserPrefix):
		delete(doc.CurrentUsers, key)
	case strings.HasPrefix(key, availabilityPrefix):
		delete(doc.Availabilities, key)
	default:
		delete(doc.Extra, key)
	}
	return s.save(doc)
}

func (s *FlatFileStore) Health() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := s.load()
	return err
}
