package generator

import (
	"fmt"
	"io"
	"strings"
	"time"

	"xmidoc/internal/model"
)

// CompositeSink renders every page record into a single document, in
// traversal order. Attribute pages are not rendered separately; the class
// page already tables them.
type CompositeSink struct {
	gen     *Generator
	w       io.Writer
	runID   string
	now     func() time.Time
	started bool
	pages   int
}

// NewCompositeSink creates a sink writing to w. runID is stamped into the
// document header.
func NewCompositeSink(gen *Generator, w io.Writer, runID string) *CompositeSink {
	return &CompositeSink{gen: gen, w: w, runID: runID, now: time.Now}
}

// Emit appends rec to the document.
func (s *CompositeSink) Emit(rec *model.PageRecord) error {
	if !s.started {
		if err := s.header(); err != nil {
			return err
		}
		s.started = true
	}

	if _, err := fmt.Fprintf(s.w, "\n<a id=\"%s\"></a>\n\n", anchor(rec.Path)); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	if err := s.gen.Render(string(rec.Kind), RecordData(rec), s.w); err != nil {
		return err
	}
	if _, err := io.WriteString(s.w, "\n---\n"); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	s.pages++
	return nil
}

// Pages returns the number of records written.
func (s *CompositeSink) Pages() int {
	return s.pages
}

func (s *CompositeSink) header() error {
	prefix := s.gen.config.Options.Prefix
	_, err := fmt.Fprintf(s.w, "# %s model documentation\n\n<!-- run %s, generated %s -->\n",
		prefix, s.runID, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing document header: %w", err)
	}
	return nil
}

// anchor is a stable in-document link target for a path.
func anchor(path []string) string {
	return strings.ToLower(strings.Join(path, "-"))
}
