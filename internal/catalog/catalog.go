// Package catalog holds the static FAQ and department tables and the
// first-acceptable-match lookups over them.
//
// Both tables keep their entries in load order. Lookups scan that order and
// return the first entry that qualifies, not the best-scoring one, so the
// order of entries in the backing document is part of the behaviour.
package catalog

import (
	"strings"

	"github.com/MikeSquared-Agency/frontdesk/internal/similarity"
)

const (
	// FAQThreshold is the similarity a query must exceed to match an FAQ phrase.
	FAQThreshold = 0.65
	// DepartmentThreshold is stricter because department keywords are short.
	DepartmentThreshold = 0.70
)

// Entry maps a canonical phrase to its fixed answer.
type Entry struct {
	Phrase string `json:"phrase"`
	Answer string `json:"answer"`

	match string
}

// KnowledgeBase is an immutable, ordered FAQ table. It is safe for
// concurrent use.
type KnowledgeBase struct {
	entries []Entry
}

// NewKnowledgeBase builds a table from entries in the given order. A
// repeated phrase keeps its first position and takes the later answer.
// An empty phrase is contained in every query and so matches everything.
func NewKnowledgeBase(entries []Entry) *KnowledgeBase {
	kb := &KnowledgeBase{entries: make([]Entry, 0, len(entries))}
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		if i, ok := index[e.Phrase]; ok {
			kb.entries[i].Answer = e.Answer
			continue
		}
		e.match = strings.ToLower(e.Phrase)
		index[e.Phrase] = len(kb.entries)
		kb.entries = append(kb.entries, e)
	}
	return kb
}

// Find returns the answer of the first entry whose phrase is contained in
// the query, or whose similarity to the query exceeds FAQThreshold.
// Containment is checked before similarity for each entry.
func (kb *KnowledgeBase) Find(query string) (string, bool) {
	if kb == nil {
		return "", false
	}
	q := strings.ToLower(query)
	for _, e := range kb.entries {
		if strings.Contains(q, e.match) {
			return e.Answer, true
		}
		if similarity.Ratio(q, e.match) > FAQThreshold {
			return e.Answer, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (kb *KnowledgeBase) Len() int {
	if kb == nil {
		return 0
	}
	return len(kb.entries)
}

// Entries returns a copy of the entries in scan order.
func (kb *KnowledgeBase) Entries() []Entry {
	if kb == nil {
		return nil
	}
	out := make([]Entry, len(kb.entries))
	for i, e := range kb.entries {
		e.match = ""
		out[i] = e
	}
	return out
}

// Department is an organisational unit reached through any of its keywords.
type Department struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Response string   `json:"response"`

	match []string
}

// Departments is an immutable, ordered department table. It is safe for
// concurrent use.
type Departments struct {
	list []Department
}

// NewDepartments builds a table from departments in the given order. A
// repeated name keeps its first position and takes the later definition.
func NewDepartments(list []Department) *Departments {
	d := &Departments{list: make([]Department, 0, len(list))}
	index := make(map[string]int, len(list))
	for _, dep := range list {
		dep.Keywords = append([]string(nil), dep.Keywords...)
		dep.match = make([]string, len(dep.Keywords))
		for i, kw := range dep.Keywords {
			dep.match[i] = strings.ToLower(kw)
		}
		if i, ok := index[dep.Name]; ok {
			d.list[i] = dep
			continue
		}
		index[dep.Name] = len(d.list)
		d.list = append(d.list, dep)
	}
	return d
}

// Find scans departments, and each department's keywords, in order. The
// first keyword contained in the query, or whose similarity to the query
// exceeds DepartmentThreshold, selects that department's response.
func (d *Departments) Find(query string) (string, bool) {
	if d == nil {
		return "", false
	}
	q := strings.ToLower(query)
	for _, dep := range d.list {
		for _, kw := range dep.match {
			if strings.Contains(q, kw) {
				return dep.Response, true
			}
			if similarity.Ratio(q, kw) > DepartmentThreshold {
				return dep.Response, true
			}
		}
	}
	return "", false
}

// Len returns the number of departments.
func (d *Departments) Len() int {
	if d == nil {
		return 0
	}
	return len(d.list)
}

// List returns a copy of the departments in scan order.
func (d *Departments) List() []Department {
	if d == nil {
		return nil
	}
	out := make([]Department, len(d.list))
	for i, dep := range d.list {
		dep.Keywords = append([]string(nil), dep.Keywords...)
		dep.match = nil
		out[i] = dep
	}
	return out
}
