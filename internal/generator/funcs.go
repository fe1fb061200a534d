package generator

import (
	"strings"
	"text/template"

	"xmidoc/internal/config"
	"xmidoc/internal/model"
)

// nullText is how unresolved and absent values are rendered.
const nullText = "null"

// templateFuncs returns custom template functions.
func templateFuncs(cfg *config.Config, markup *Markup) template.FuncMap {
	return template.FuncMap{
		// Optional values
		"value":    value,
		"markdown": func(s *string) string { return markdown(markup, s) },
		"kind":     func(k model.Kind) string { return k.Short() },

		// Tables
		"cell":        cell,
		"optionality": optionality,
		"join":        strings.Join,

		// Paths
		"pagePath":      func(path []string) string { return pagePath(path, cfg.LowercaseTopLevel()) },
		"fileName":      fileName,
		"attributeFile": attributeFile,
	}
}

// value renders an optional string.
func value(s *string) string {
	if s == nil {
		return nullText
	}
	return *s
}

// markdown renders an optional description, converting EA HTML notes.
func markdown(m *Markup, s *string) string {
	if s == nil {
		return ""
	}
	return m.Convert(*s)
}

// cell makes a value safe for a single markdown table cell.
func cell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// optionality maps a multiplicity to the wording used in attribute tables.
func optionality(multiplicity *string) string {
	if multiplicity == nil {
		return nullText
	}
	if strings.HasPrefix(*multiplicity, "0..") {
		return "Optional"
	}
	return "Mandatory"
}

// pagePath is the output directory of a record, relative to the output root.
func pagePath(path []string, lowercaseTop bool) string {
	segs := outputSegments(path, lowercaseTop)
	for i, seg := range segs {
		segs[i] = fileName(seg)
	}
	return strings.Join(segs, "/")
}
