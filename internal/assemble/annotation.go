package assemble

import (
	"log/slog"

	"xmidoc/internal/model"
)

// elementDescription reads the description of a packaged element.
func (a *Assembler) elementDescription(el *model.Element, meta *model.Metadata) *string {
	if meta == nil {
		return nil
	}

	var (
		v  string
		ok bool
	)
	switch a.opts.Annotation {
	case AnnotationDocumentation:
		v, ok = meta.Property("documentation")
	default:
		v, ok = meta.Tag(a.opts.DefinitionTag)
	}
	if !ok {
		a.logger.Debug("Element has no description",
			slog.String("id", el.ID), slog.String("annotation", string(a.opts.Annotation)))
		return nil
	}
	return &v
}

// memberDescription reads the description of an attribute or literal. The
// legacy field is a <documentation> child rather than a property.
func (a *Assembler) memberDescription(el *model.Element, meta *model.Metadata) *string {
	if meta == nil {
		return nil
	}

	switch a.opts.Annotation {
	case AnnotationDocumentation:
		if meta.Documentation == nil {
			a.logger.Debug("Member has no documentation", slog.String("id", el.ID))
		}
		return meta.Documentation
	default:
		v, ok := meta.Tag(a.opts.DefinitionTag)
		if !ok {
			a.logger.Debug("Member has no definition tag", slog.String("id", el.ID))
			return nil
		}
		return &v
	}
}
