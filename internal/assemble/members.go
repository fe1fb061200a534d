package assemble

import (
	"log/slog"

	"xmidoc/internal/model"
)

// Attribute assembles the record of an owned attribute. The declared type is
// resolved through the index; an unresolved type is nil.
func (a *Assembler) Attribute(el *model.Element) model.AttributeRecord {
	meta := a.attributeMeta(el)

	props := model.ParseProperties(propertiesOf(meta), a.idx.Name)
	scope := memberScope(el, meta)
	if scope != nil {
		props.Set(model.PropScope, *scope, nil)
	}
	props.IDRef = strPtr(el.ID)

	var multiplicity *string
	if meta != nil && meta.Bounds != nil {
		props.Bounds = meta.Bounds
		multiplicity = strPtr(meta.Bounds.String())
	}

	rec := model.AttributeRecord{
		ID:           el.ID,
		Name:         el.Name,
		Kind:         el.Kind,
		Visibility:   scope,
		Description:  a.memberDescription(el, meta),
		Multiplicity: multiplicity,
		Properties:   props,
	}

	switch {
	case el.TypeRef != "":
		rec.Type = a.idx.Name(el.TypeRef)
	case props.Type != nil:
		rec.Type = props.TypeName()
	}

	return rec
}

// Literal assembles the record of an enumeration literal. A type property on
// the literal is resolved like an attribute type.
func (a *Assembler) Literal(el *model.Element) model.LiteralRecord {
	meta := a.attributeMeta(el)

	props := model.ParseProperties(propertiesOf(meta), a.idx.Name)
	scope := memberScope(el, meta)
	if scope != nil {
		props.Set(model.PropScope, *scope, nil)
	}
	props.IDRef = strPtr(el.ID)
	if meta != nil && meta.Bounds != nil {
		props.Bounds = meta.Bounds
	}

	return model.LiteralRecord{
		ID:          el.ID,
		Name:        el.Name,
		Visibility:  scope,
		Description: a.memberDescription(el, meta),
		Properties:  props,
	}
}

func (a *Assembler) attributeMeta(el *model.Element) *model.Metadata {
	m := a.doc.AttributeMeta(el.ID)
	switch {
	case m == nil:
		a.logger.Debug("Member has no extension metadata",
			slog.String("id", el.ID), slog.String("name", el.Name))
	case !m.HasProperties:
		a.logger.Debug("Member metadata has no properties",
			slog.String("id", el.ID), slog.String("name", el.Name))
	}
	return m
}

// memberScope prefers the extension scope over the UML visibility.
func memberScope(el *model.Element, meta *model.Metadata) *string {
	if meta != nil && meta.Scope != "" {
		return strPtr(meta.Scope)
	}
	if el.Visibility != "" {
		return strPtr(el.Visibility)
	}
	return nil
}

func strPtr(s string) *string { return &s }
