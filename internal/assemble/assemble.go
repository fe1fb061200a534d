// Package assemble turns model elements into page records, resolving type and
// relationship references through the reference index.
package assemble

import (
	"fmt"
	"log/slog"

	"xmidoc/internal/index"
	"xmidoc/internal/model"
)

// Annotation selects where description text is read from.
type Annotation string

const (
	// AnnotationDefinition reads the value of a named tag (the default).
	AnnotationDefinition Annotation = "definition"
	// AnnotationDocumentation reads the legacy documentation field.
	AnnotationDocumentation Annotation = "documentation"
)

// DefaultDefinitionTag is the tag holding description text.
const DefaultDefinitionTag = "definition"

// Options configures an Assembler.
type Options struct {
	Annotation    Annotation
	DefinitionTag string
	Prefix        string // model prefix copied into every record's details
	Logger        *slog.Logger
}

// Assembler builds page records. It only reads from the document and index.
type Assembler struct {
	doc    *model.Document
	idx    *index.Index
	opts   Options
	logger *slog.Logger
}

// New creates a new Assembler.
func New(doc *model.Document, idx *index.Index, opts Options) *Assembler {
	if opts.Annotation == "" {
		opts.Annotation = AnnotationDefinition
	}
	if opts.DefinitionTag == "" {
		opts.DefinitionTag = DefaultDefinitionTag
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{doc: doc, idx: idx, opts: opts, logger: logger}
}

// Entity assembles the record for a class, enumeration, data type or
// primitive type.
func (a *Assembler) Entity(el *model.Element, path []string) (*model.PageRecord, error) {
	switch el.Kind {
	case model.KindClass:
		return a.Class(el, path)
	case model.KindEnumeration:
		return a.Enumeration(el, path)
	case model.KindDataType, model.KindPrimitiveType:
		return a.DataType(el, path)
	}
	return nil, fmt.Errorf("no page kind for %s element %q", el.Kind, el.Name)
}

// Package assembles a package page.
func (a *Assembler) Package(el *model.Element, path []string) (*model.PageRecord, error) {
	if err := requireIdentity(el, path); err != nil {
		return nil, err
	}
	meta := a.elementMeta(el)

	rec := &model.PageRecord{
		Path:    path,
		Kind:    model.PagePackage,
		Details: a.details(el, a.elementDescription(el, meta)),
	}

	rec.Properties.Set(model.PropName, el.Name, nil)
	if v, ok := meta.Property("stereotype"); ok {
		rec.Properties.Set(model.PropStereotype, v, nil)
	}
	if v, ok := meta.Property("scope"); ok {
		rec.Properties.Set(model.PropVisibility, v, nil)
	} else if el.Visibility != "" {
		rec.Properties.Set(model.PropVisibility, el.Visibility, nil)
	}
	rec.Properties.Set(model.PropImportedElements, "", nil)

	for _, owned := range el.OwnedElements() {
		rec.OwnedElements = append(rec.OwnedElements, model.OwnedElement{Name: owned.Name, Type: owned.Kind})
	}

	return rec, nil
}

// Class assembles a class page with its attributes, operations and
// association relationships.
func (a *Assembler) Class(el *model.Element, path []string) (*model.PageRecord, error) {
	if err := requireIdentity(el, path); err != nil {
		return nil, err
	}
	meta := a.elementMeta(el)

	rec := &model.PageRecord{
		Path:       path,
		Kind:       model.PageClass,
		Details:    a.details(el, a.elementDescription(el, meta)),
		Properties: model.ParseProperties(propertiesOf(meta), a.idx.Name),
	}

	for _, op := range el.Operations {
		rec.Operations = append(rec.Operations, model.Operation{Name: op.Name})
	}

	for _, attr := range el.Attributes {
		// EA also stores association ends as owned attributes; those are
		// documented as relationships instead.
		if attr.Association != "" {
			continue
		}
		rec.Attributes = append(rec.Attributes, a.Attribute(attr))
	}

	if meta != nil {
		rec.Relationships = a.idx.ResolveAll(meta.LinksOf(model.KindAssociation))
	}

	return rec, nil
}

// Enumeration assembles an enumeration page with its literals.
func (a *Assembler) Enumeration(el *model.Element, path []string) (*model.PageRecord, error) {
	if err := requireIdentity(el, path); err != nil {
		return nil, err
	}
	meta := a.elementMeta(el)

	rec := &model.PageRecord{
		Path:       path,
		Kind:       model.PageEnumeration,
		Details:    a.details(el, a.elementDescription(el, meta)),
		Properties: model.ParseProperties(propertiesOf(meta), a.idx.Name),
	}

	for _, lit := range el.Literals {
		rec.Literals = append(rec.Literals, a.Literal(lit))
	}

	return rec, nil
}

// DataType assembles a data type or primitive type page.
//
// Primitive types have no extension metadata and fall outside the index, so
// their description is nil, their properties come from the element itself and
// their generalization targets stay raw identifiers.
func (a *Assembler) DataType(el *model.Element, path []string) (*model.PageRecord, error) {
	rec := &model.PageRecord{
		Path: path,
		Kind: model.PageDataType,
	}

	if el.Kind == model.KindPrimitiveType {
		rec.Details = a.details(el, nil)
		rec.Properties = model.ParseProperties(el.Attrs, a.idx.Name)
		for _, g := range el.Generalizations {
			general := g.General
			rec.GeneralizedElements = append(rec.GeneralizedElements, &general)
		}
		return rec, nil
	}

	meta := a.elementMeta(el)
	rec.Details = a.details(el, a.elementDescription(el, meta))
	rec.Properties = model.ParseProperties(propertiesOf(meta), a.idx.Name)

	for _, g := range el.Generalizations {
		rec.GeneralizedElements = append(rec.GeneralizedElements, a.idx.Name(g.General))
	}

	if meta != nil {
		rec.Relationships = a.idx.ResolveAll(meta.LinksOf(model.KindGeneralization))
	}

	return rec, nil
}

func (a *Assembler) details(el *model.Element, desc *string) model.Details {
	return model.Details{
		ID:          el.ID,
		Name:        el.Name,
		Type:        el.Kind,
		Prefix:      a.opts.Prefix,
		Description: desc,
	}
}

func (a *Assembler) elementMeta(el *model.Element) *model.Metadata {
	m := a.doc.ElementMeta(el.ID)
	switch {
	case m == nil:
		a.logger.Debug("Element has no extension metadata",
			slog.String("id", el.ID), slog.String("name", el.Name))
	case !m.HasProperties:
		a.logger.Debug("Element metadata has no properties",
			slog.String("id", el.ID), slog.String("name", el.Name))
	}
	return m
}

func propertiesOf(m *model.Metadata) []model.Attr {
	if m == nil {
		return nil
	}
	return m.Properties
}

// requireIdentity reports a structural error when el lacks an id or name.
func requireIdentity(el *model.Element, path []string) error {
	switch {
	case el.ID == "":
		return model.MissingAttribute(path, el.Name, "xmi:id")
	case el.Name == "":
		return model.MissingAttribute(path, el.ID, "name")
	}
	return nil
}
