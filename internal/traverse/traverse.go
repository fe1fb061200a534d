// Package traverse walks the package tree of a model, emitting one page record
// per package and per documented entity.
package traverse

import (
	"fmt"
	"log/slog"
	"strings"

	"xmidoc/internal/assemble"
	"xmidoc/internal/model"
)

// DefaultKinds are the owned element kinds that get their own page.
var DefaultKinds = []model.Kind{
	model.KindEnumeration,
	model.KindClass,
	model.KindDataType,
	model.KindPrimitiveType,
}

// Sink receives page records in traversal order.
type Sink interface {
	Emit(rec *model.PageRecord) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(rec *model.PageRecord) error

// Emit calls f(rec).
func (f SinkFunc) Emit(rec *model.PageRecord) error {
	return f(rec)
}

// Options configures a Traverser.
type Options struct {
	// Kinds selects which owned elements are assembled. Nil means DefaultKinds.
	Kinds []model.Kind
	// Exclude reports whether the package at path, and its whole subtree,
	// is skipped.
	Exclude func(path []string) bool
	// StrictNames fails the run when two packages share a name instead of
	// letting the later one win.
	StrictNames bool
	Logger      *slog.Logger
}

// Result summarizes a run.
type Result struct {
	Parents map[string]string // every parent entry recorded, later entries win
	Paths   [][]string        // paths of emitted records, in emission order
	Pages   map[model.PageKind]int
	Skipped [][]string // paths of excluded packages
}

// Total returns the number of emitted records.
func (r *Result) Total() int {
	return len(r.Paths)
}

// Traverser drives the assembler over the package tree.
type Traverser struct {
	doc    *model.Document
	asm    *assemble.Assembler
	sink   Sink
	opts   Options
	kinds  map[model.Kind]bool
	logger *slog.Logger
}

// New creates a new Traverser.
func New(doc *model.Document, asm *assemble.Assembler, sink Sink, opts Options) *Traverser {
	kinds := opts.Kinds
	if kinds == nil {
		kinds = DefaultKinds
	}
	set := make(map[model.Kind]bool, len(kinds))
	for _, k := range kinds {
		// Links are never pages and packages are visited, not assembled.
		if !k.IsLink() && k != model.KindPackage {
			set[k] = true
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Traverser{
		doc:    doc,
		asm:    asm,
		sink:   sink,
		opts:   opts,
		kinds:  set,
		logger: logger,
	}
}

// Run walks each named root package in turn. Each root starts with an empty
// parent map.
func (t *Traverser) Run(roots ...string) (*Result, error) {
	res := &Result{
		Parents: make(map[string]string),
		Pages:   make(map[model.PageKind]int),
	}

	for _, name := range roots {
		pkg := t.doc.FindPackage(name)
		if pkg == nil {
			return res, model.NewStructuralError(model.ErrRootNotFound, nil, "no package named %q", name)
		}
		t.logger.Info("Traversing package tree", slog.String("root", name))
		if err := t.visit(pkg, RootSentinel, ParentMap{}, res, 0); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (t *Traverser) visit(pkg *model.Element, parent string, parents ParentMap, res *Result, level int) error {
	if pkg.Name == "" {
		var path []string
		if level > 0 {
			path, _ = PathToRoot(parent, parents)
		}
		return model.MissingAttribute(path, pkg.ID, "name")
	}

	if prev, seen := res.Parents[pkg.Name]; seen {
		if t.opts.StrictNames {
			return &model.StructuralError{
				Code:    model.ErrDuplicateName,
				Element: pkg.Name,
				Message: fmt.Sprintf("package name already used under %q", prev),
			}
		}
		t.logger.Warn("Duplicate package name, later entry wins",
			slog.String("name", pkg.Name),
			slog.String("previous_parent", prev),
			slog.String("parent", parent))
	}

	if level == 0 {
		parents = parents.WithRoot(pkg.Name)
	} else {
		parents = parents.With(pkg.Name, parent)
	}
	res.Parents[pkg.Name] = parent

	path, err := PathToRoot(pkg.Name, parents)
	if err != nil {
		return err
	}

	if t.opts.Exclude != nil && t.opts.Exclude(path) {
		t.logger.Info("Skipping excluded package", slog.String("path", strings.Join(path, "/")))
		res.Skipped = append(res.Skipped, path)
		return nil
	}

	t.logger.Debug("Visiting package",
		slog.Int("level", level),
		slog.String("id", pkg.ID),
		slog.String("name", pkg.Name),
		slog.String("parent", parent))

	rec, err := t.asm.Package(pkg, path)
	if err != nil {
		return err
	}
	if err := t.emit(rec, res); err != nil {
		return err
	}

	for _, el := range pkg.OwnedElements() {
		if !t.kinds[el.Kind] {
			continue
		}
		rec, err := t.asm.Entity(el, childPath(path, el.Name))
		if err != nil {
			return err
		}
		if err := t.emit(rec, res); err != nil {
			return err
		}
	}

	for _, sub := range pkg.Subpackages() {
		if err := t.visit(sub, pkg.Name, parents, res, level+1); err != nil {
			return err
		}
	}

	return nil
}

func (t *Traverser) emit(rec *model.PageRecord, res *Result) error {
	if err := t.sink.Emit(rec); err != nil {
		return fmt.Errorf("emitting %s: %w", strings.Join(rec.Path, "/"), err)
	}
	res.Paths = append(res.Paths, rec.Path)
	res.Pages[rec.Kind]++
	return nil
}

// childPath returns a fresh slice so records never share backing arrays.
func childPath(path []string, name string) []string {
	p := make([]string, len(path), len(path)+1)
	copy(p, path)
	return append(p, name)
}
