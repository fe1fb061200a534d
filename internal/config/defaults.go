// Package config provides configuration handling for xmidoc.
package config

import (
	"xmidoc/internal/assemble"
	"xmidoc/internal/model"
)

// Annotation strategies accepted in Options.Annotation.
const (
	AnnotationDefinition    = string(assemble.AnnotationDefinition)
	AnnotationDocumentation = string(assemble.AnnotationDocumentation)
)

// supportedKinds are the element kinds that can be selected for pages.
var supportedKinds = map[model.Kind]bool{
	model.KindClass:         true,
	model.KindEnumeration:   true,
	model.KindDataType:      true,
	model.KindPrimitiveType: true,
}

// knownPages are the template kinds that may be overridden.
var knownPages = map[string]bool{
	string(model.PagePackage):     true,
	string(model.PageClass):       true,
	string(model.PageEnumeration): true,
	string(model.PageDataType):    true,
	"attribute":                   true,
	"diagram":                     true,
}

// DefaultRoots returns the default traversal roots.
func DefaultRoots() []string {
	return []string{"PayloadPublication"}
}

// DefaultTemplates returns the default template file for each page kind.
func DefaultTemplates() map[string]string {
	return map[string]string{
		string(model.PagePackage):     "package.md.tmpl",
		string(model.PageClass):       "class.md.tmpl",
		string(model.PageEnumeration): "enumeration.md.tmpl",
		string(model.PageDataType):    "datatype.md.tmpl",
		"attribute":                   "attribute.md.tmpl",
		"diagram":                     "diagram.md.tmpl",
	}
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		Prefix:        "TSM",
		Annotation:    AnnotationDefinition,
		DefinitionTag: assemble.DefaultDefinitionTag,
		Kinds: []string{
			string(model.KindEnumeration),
			string(model.KindClass),
			string(model.KindDataType),
			string(model.KindPrimitiveType),
		},
		ImagesSource: "model/Images",
	}
}
