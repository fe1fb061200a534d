// Package index builds the identifier lookup table used to resolve references
// between model elements.
package index

import (
	"sort"

	"xmidoc/internal/model"
)

// indexedKinds are the element kinds other elements reference by identifier.
// Primitive types are referenced by name and are not indexed.
var indexedKinds = map[model.Kind]bool{
	model.KindPackage:     true,
	model.KindClass:       true,
	model.KindDataType:    true,
	model.KindEnumeration: true,
}

// Entry is the display name and kind of an indexed element.
type Entry struct {
	Name string
	Kind model.Kind
}

// Index maps element identifiers to entries. It is read-only once built.
type Index struct {
	entries map[string]Entry
}

// Build scans the whole model tree. Duplicate identifiers overwrite earlier
// entries.
func Build(doc *model.Document) *Index {
	idx := &Index{entries: make(map[string]Entry)}
	if doc == nil || doc.Model == nil {
		return idx
	}

	doc.Model.Walk(func(e *model.Element) {
		if indexedKinds[e.Kind] {
			idx.entries[e.ID] = Entry{Name: e.Name, Kind: e.Kind}
		}
	})
	return idx
}

// Lookup returns the entry for id. The empty identifier never resolves.
func (idx *Index) Lookup(id string) (Entry, bool) {
	if id == "" {
		return Entry{}, false
	}
	e, ok := idx.entries[id]
	return e, ok
}

// Name returns the display name for id, or nil when id is unresolved.
func (idx *Index) Name(id string) *string {
	e, ok := idx.Lookup(id)
	if !ok {
		return nil
	}
	name := e.Name
	return &name
}

// Len returns the number of entries, including one stored under the empty
// identifier.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// IDs returns the indexed identifiers in sorted order.
func (idx *Index) IDs() []string {
	ids := make([]string, 0, len(idx.entries))
	for id := range idx.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
