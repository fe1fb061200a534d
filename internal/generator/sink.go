package generator

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"xmidoc/internal/model"
)

// indexPage is the file name, without extension, of package and class pages.
const indexPage = "index"

// FileSink writes one markdown file per page record under a root directory.
//
// Packages and classes become directories with an index.md; class attributes
// get their own page beside it. Enumerations and data types are single files
// named after the entity inside their package directory.
type FileSink struct {
	gen   *Generator
	root  string
	files []string
}

// NewFileSink creates a sink writing below root.
func NewFileSink(gen *Generator, root string) *FileSink {
	return &FileSink{gen: gen, root: root}
}

// Emit renders rec and, for classes, each of its attributes.
func (s *FileSink) Emit(rec *model.PageRecord) error {
	segs := outputSegments(rec.Path, s.gen.config.LowercaseTopLevel())
	if len(segs) == 0 {
		return fmt.Errorf("record %s has an empty path", rec.Details.ID)
	}

	switch rec.Kind {
	case model.PagePackage:
		return s.write(s.join(segs, indexPage+".md"), string(rec.Kind), RecordData(rec))

	case model.PageClass:
		if err := s.write(s.join(segs, indexPage+".md"), string(rec.Kind), RecordData(rec)); err != nil {
			return err
		}
		for i := range rec.Attributes {
			attr := &rec.Attributes[i]
			file := attributeFile(attr.Name)
			if file != fileName(attr.Name) {
				s.gen.logger.Warn("Attribute page renamed to keep the class index",
					slog.String("class", rec.Details.Name),
					slog.String("attribute", attr.Name),
					slog.String("file", file+".md"))
			}
			path := s.join(segs, file+".md")
			if err := s.write(path, PageAttribute, AttributeData(rec, attr)); err != nil {
				return err
			}
		}
		return nil

	case model.PageEnumeration, model.PageDataType:
		dir, name := segs[:len(segs)-1], segs[len(segs)-1]
		return s.write(s.join(dir, fileName(name)+".md"), string(rec.Kind), RecordData(rec))

	default:
		return fmt.Errorf("unsupported page kind %q", rec.Kind)
	}
}

// Files returns the paths written so far, relative to the root.
func (s *FileSink) Files() []string {
	return s.files
}

func (s *FileSink) join(dir []string, file string) string {
	parts := make([]string, 0, len(dir)+1)
	for _, d := range dir {
		parts = append(parts, fileName(d))
	}
	return filepath.Join(append(parts, file)...)
}

func (s *FileSink) write(rel, kind string, data *TemplateData) error {
	if err := s.gen.writeFile(filepath.Join(s.root, rel), kind, data); err != nil {
		return err
	}
	s.gen.logger.Debug("Wrote page", slog.String("kind", kind), slog.String("file", rel))
	s.files = append(s.files, filepath.ToSlash(rel))
	return nil
}

// outputSegments applies the top level lower-casing convention.
func outputSegments(path []string, lowercaseTop bool) []string {
	segs := make([]string, len(path))
	copy(segs, path)
	if lowercaseTop && len(segs) > 0 {
		segs[0] = strings.ToLower(segs[0])
	}
	return segs
}

// fileName makes a model name usable as a single path element.
func fileName(name string) string {
	r := strings.NewReplacer("/", "_", `\`, "_", ":", "_")
	return strings.TrimSpace(r.Replace(name))
}

// attributeFile is the file name, without extension, of an attribute page.
// An attribute named like the class index page gets a suffix.
func attributeFile(name string) string {
	file := fileName(name)
	if strings.EqualFold(file, indexPage) {
		return file + "_attribute"
	}
	return file
}
