// Package generator renders page records to markdown using templates.
package generator

import (
	"embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"xmidoc/internal/config"
	"xmidoc/internal/model"
)

//go:embed templates/*.md.tmpl
var builtin embed.FS

// Page kinds rendered outside the traversal.
const (
	PageAttribute = "attribute"
	PageDiagram   = "diagram"
)

// Generator executes templates against page records.
type Generator struct {
	config    *config.Config
	templates map[string]*template.Template
	markup    *Markup
	logger    *slog.Logger
}

// New creates a new Generator.
func New(cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		config:    cfg,
		templates: make(map[string]*template.Template),
		markup:    NewMarkup(),
		logger:    logger,
	}
}

// LoadTemplates loads one template per page kind. A file of the configured
// name in the template directory takes precedence over the built-in one.
func (g *Generator) LoadTemplates() error {
	kinds := make([]string, 0, len(g.config.Templates))
	for kind := range g.config.Templates {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		name := g.config.TemplateFor(kind)
		tmpl, err := g.loadTemplate(name)
		if err != nil {
			return fmt.Errorf("loading %s template: %w", kind, err)
		}
		g.templates[kind] = tmpl
	}
	return nil
}

func (g *Generator) loadTemplate(name string) (*template.Template, error) {
	base := template.New(name).Funcs(templateFuncs(g.config, g.markup))

	if dir := g.config.Options.TemplateDir; dir != "" {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			g.logger.Debug("Using template override", slog.String("path", path))
			return base.ParseFiles(path)
		}
	}

	return base.ParseFS(builtin, "templates/"+name)
}

// TemplateData represents data passed to templates.
type TemplateData struct {
	Details    model.Details
	Properties []model.Property
	Record     *model.PageRecord      // nil for attribute and diagram pages
	Attribute  *model.AttributeRecord // attribute pages only
	Diagram    *model.Diagram         // diagram pages only
	Package    *string                // owning package of a diagram, nil when unresolved
	Config     *config.Config
}

// Render executes the template for kind.
func (g *Generator) Render(kind string, data *TemplateData, w io.Writer) error {
	tmpl, ok := g.templates[kind]
	if !ok {
		return fmt.Errorf("no template loaded for %q", kind)
	}
	data.Config = g.config
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing %s template for %s: %w", kind, data.Details.Name, err)
	}
	return nil
}

// RecordData prepares the template data for a page record.
func RecordData(rec *model.PageRecord) *TemplateData {
	return &TemplateData{
		Details:    rec.Details,
		Properties: rec.Properties.Entries(),
		Record:     rec,
	}
}

// AttributeData prepares the template data for an attribute page.
func AttributeData(owner *model.PageRecord, attr *model.AttributeRecord) *TemplateData {
	return &TemplateData{
		Details: model.Details{
			ID:          attr.ID,
			Name:        attr.Name,
			Type:        attr.Kind,
			Prefix:      owner.Details.Prefix,
			Description: attr.Description,
		},
		Properties: attr.Properties.Entries(),
		Attribute:  attr,
	}
}

// writeFile renders one page to path, creating parent directories.
func (g *Generator) writeFile(path, kind string, data *TemplateData) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return g.Render(kind, data, f)
}
