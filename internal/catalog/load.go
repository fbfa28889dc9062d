package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a table document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks the format from the file extension. Anything that is
// not .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Source supplies raw table rows in scan order.
type Source interface {
	KnowledgeEntries(ctx context.Context) ([]Entry, error)
	DepartmentList(ctx context.Context) ([]Department, error)
}

// FileSource reads both tables from documents on disk.
type FileSource struct {
	KnowledgeBasePath string
	DepartmentsPath   string
}

func (f FileSource) KnowledgeEntries(_ context.Context) ([]Entry, error) {
	data, err := os.ReadFile(f.KnowledgeBasePath)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	return ParseKnowledgeBase(data, FormatForPath(f.KnowledgeBasePath))
}

func (f FileSource) DepartmentList(_ context.Context) ([]Department, error) {
	data, err := os.ReadFile(f.DepartmentsPath)
	if err != nil {
		return nil, fmt.Errorf("read departments: %w", err)
	}
	return ParseDepartments(data, FormatForPath(f.DepartmentsPath))
}

// Load reads both tables from src. A table that cannot be read or parsed is
// logged and replaced by an empty one; Load never fails.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*KnowledgeBase, *Departments) {
	entries, err := src.KnowledgeEntries(ctx)
	if err != nil {
		logger.Warn("knowledge base unavailable, using empty table", "error", err)
		entries = nil
	}
	list, err := src.DepartmentList(ctx)
	if err != nil {
		logger.Warn("departments unavailable, using empty table", "error", err)
		list = nil
	}

	kb := NewKnowledgeBase(entries)
	depts := NewDepartments(list)
	logger.Info("catalog loaded", "faq_entries", kb.Len(), "departments", depts.Len())
	return kb, depts
}

// ParseKnowledgeBase decodes a phrase→answer mapping, keeping document order.
func ParseKnowledgeBase(data []byte, format Format) ([]Entry, error) {
	pairs, err := orderedPairs(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	entries := make([]Entry, 0, len(pairs))
	for _, p := range pairs {
		var answer string
		if err := p.decode(&answer); err != nil {
			return nil, fmt.Errorf("parse knowledge base: answer for %q: %w", p.key, err)
		}
		entries = append(entries, Entry{Phrase: p.key, Answer: answer})
	}
	return entries, nil
}

type departmentDoc struct {
	Keywords []string `json:"keywords" yaml:"keywords"`
	Response string   `json:"response" yaml:"response"`
}

// ParseDepartments decodes a name→{keywords, response} mapping, keeping
// document order.
func ParseDepartments(data []byte, format Format) ([]Department, error) {
	pairs, err := orderedPairs(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse departments: %w", err)
	}
	list := make([]Department, 0, len(pairs))
	for _, p := range pairs {
		var doc departmentDoc
		if err := p.decode(&doc); err != nil {
			return nil, fmt.Errorf("parse departments: %q: %w", p.key, err)
		}
		list = append(list, Department{Name: p.key, Keywords: doc.Keywords, Response: doc.Response})
	}
	return list, nil
}

var (
	errNotMapping   = errors.New("document is not a mapping")
	errTrailingData = errors.New("unexpected data after document")
)

type pair struct {
	key    string
	decode func(v any) error
}

// orderedPairs returns the top-level key/value pairs of a mapping document
// in the order they appear. Values are decoded lazily by the caller.
func orderedPairs(data []byte, format Format) ([]pair, error) {
	if format == FormatYAML {
		return yamlPairs(data)
	}
	return jsonPairs(data)
}

func jsonPairs(data []byte) ([]pair, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotMapping
	}

	var pairs []pair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("value for %q: %w", key, err)
		}
		pairs = append(pairs, pair{
			key:    key,
			decode: func(v any) error { return json.Unmarshal(raw, v) },
		})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return pairs, nil
}

func yamlPairs(data []byte) ([]pair, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errNotMapping
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errNotMapping
	}

	pairs := make([]pair, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		pairs = append(pairs, pair{
			key:    keyNode.Value,
			decode: valueNode.Decode,
		})
	}
	return pairs, nil
}
