package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"xmidoc/internal/model"
)

// Config represents the complete configuration.
type Config struct {
	Input     string            `yaml:"input" json:"input"`
	Output    string            `yaml:"output" json:"output"`
	Roots     []string          `yaml:"roots" json:"roots"`
	Templates map[string]string `yaml:"templates" json:"templates"`
	Options   Options           `yaml:"options" json:"options"`
}

// Options represents generation options.
type Options struct {
	Prefix            string   `yaml:"prefix" json:"prefix"`
	Annotation        string   `yaml:"annotation" json:"annotation"`
	DefinitionTag     string   `yaml:"definitionTag" json:"definitionTag"`
	Kinds             []string `yaml:"kinds" json:"kinds"`
	Exclude           []string `yaml:"exclude" json:"exclude"`
	LowercaseTopLevel *bool    `yaml:"lowercaseTopLevel" json:"lowercaseTopLevel"`
	StrictNames       bool     `yaml:"strictNames" json:"strictNames"`
	Single            bool     `yaml:"single" json:"single"`
	Clean             bool     `yaml:"clean" json:"clean"`
	Diagrams          *bool    `yaml:"diagrams" json:"diagrams"`
	TemplateDir       string   `yaml:"templateDir" json:"templateDir"`
	ImagesSource      string   `yaml:"imagesSource" json:"imagesSource"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Roots:     DefaultRoots(),
		Templates: DefaultTemplates(),
		Options:   DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	// Merge loaded config with defaults
	c.merge(&loaded)

	return nil
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	if loaded.Input != "" {
		c.Input = loaded.Input
	}
	if loaded.Output != "" {
		c.Output = loaded.Output
	}
	if len(loaded.Roots) > 0 {
		c.Roots = loaded.Roots
	}

	// Merge template names (loaded values override defaults)
	for k, v := range loaded.Templates {
		c.Templates[k] = v
	}

	o := loaded.Options
	if o.Prefix != "" {
		c.Options.Prefix = o.Prefix
	}
	if o.Annotation != "" {
		c.Options.Annotation = o.Annotation
	}
	if o.DefinitionTag != "" {
		c.Options.DefinitionTag = o.DefinitionTag
	}
	if len(o.Kinds) > 0 {
		c.Options.Kinds = o.Kinds
	}
	if o.Exclude != nil {
		c.Options.Exclude = o.Exclude
	}
	// Pointer fields distinguish "unset" from an explicit false
	if o.LowercaseTopLevel != nil {
		c.Options.LowercaseTopLevel = o.LowercaseTopLevel
	}
	if o.Diagrams != nil {
		c.Options.Diagrams = o.Diagrams
	}
	if o.StrictNames {
		c.Options.StrictNames = true
	}
	if o.Single {
		c.Options.Single = true
	}
	if o.Clean {
		c.Options.Clean = true
	}
	if o.TemplateDir != "" {
		c.Options.TemplateDir = o.TemplateDir
	}
	if o.ImagesSource != "" {
		c.Options.ImagesSource = o.ImagesSource
	}
}

// Validate checks the configuration for values the generator cannot use.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return fmt.Errorf("at least one root package is required")
	}
	for _, r := range c.Roots {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("root package name must not be empty")
		}
	}

	switch c.Options.Annotation {
	case AnnotationDefinition, AnnotationDocumentation:
	default:
		return fmt.Errorf("unknown annotation strategy %q (want %q or %q)",
			c.Options.Annotation, AnnotationDefinition, AnnotationDocumentation)
	}

	for _, k := range c.Options.Kinds {
		if !supportedKinds[model.ParseKind(k)] {
			return fmt.Errorf("unsupported element kind %q", k)
		}
	}

	for _, p := range c.Options.Exclude {
		if !doublestar.ValidatePattern(normalizePattern(p)) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	for kind := range c.Templates {
		if !knownPages[kind] {
			return fmt.Errorf("unknown template kind %q", kind)
		}
	}

	return nil
}

// ElementKinds returns the configured kinds as model kinds.
func (c *Config) ElementKinds() []model.Kind {
	kinds := make([]model.Kind, 0, len(c.Options.Kinds))
	for _, k := range c.Options.Kinds {
		kinds = append(kinds, model.ParseKind(k))
	}
	return kinds
}

// TemplateFor returns the template file name for a page kind.
func (c *Config) TemplateFor(kind string) string {
	if name, ok := c.Templates[kind]; ok {
		return name
	}
	return kind + ".md.tmpl"
}

// LowercaseTopLevel reports whether the first path segment is lower-cased in
// output paths.
func (c *Config) LowercaseTopLevel() bool {
	return c.Options.LowercaseTopLevel == nil || *c.Options.LowercaseTopLevel
}

// DiagramsEnabled reports whether diagram pages and images are generated.
func (c *Config) DiagramsEnabled() bool {
	return c.Options.Diagrams == nil || *c.Options.Diagrams
}

// Excluded reports whether the package at path falls under one of the exclude
// patterns. A pattern names a package path prefix ("D2Payload/Common") and may
// use doublestar globs ("**/Legacy").
func (c *Config) Excluded(path []string) bool {
	if len(c.Options.Exclude) == 0 {
		return false
	}
	joined := strings.Join(path, "/")

	for _, p := range c.Options.Exclude {
		pattern := normalizePattern(p)
		if ok, _ := doublestar.Match(pattern, joined); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern+"/**", joined); ok {
			return true
		}
	}
	return false
}

func normalizePattern(p string) string {
	return strings.Trim(strings.TrimSpace(p), "/")
}
