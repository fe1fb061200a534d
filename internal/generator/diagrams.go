package generator

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"xmidoc/internal/model"
)

// DiagramResult counts the outcome of a diagram run.
type DiagramResult struct {
	Pages   int
	Images  int
	Missing []string // diagram ids without a source image
}

// Diagrams renders one page per diagram into out and copies the diagram
// image from the images source directory to out/images/<name>.png.
// A missing image is logged and skipped; the page is still written.
// resolve names the owning package of each diagram and may be nil.
func (g *Generator) Diagrams(diagrams []model.Diagram, out string, resolve func(id string) *string) (*DiagramResult, error) {
	res := &DiagramResult{}
	if len(diagrams) == 0 {
		return res, nil
	}

	imagesDir := filepath.Join(out, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return res, fmt.Errorf("creating images directory: %w", err)
	}

	for i := range diagrams {
		d := &diagrams[i]
		name := fileName(d.Name)
		if name == "" {
			name = d.ID
		}

		src := filepath.Join(g.config.Options.ImagesSource, d.ID+".png")
		dst := filepath.Join(imagesDir, name+".png")
		switch err := copyFile(src, dst); {
		case err == nil:
			res.Images++
		case errors.Is(err, fs.ErrNotExist):
			g.logger.Warn("Diagram image not found, skipping",
				slog.String("diagram", d.Name),
				slog.String("id", d.ID),
				slog.String("source", src))
			res.Missing = append(res.Missing, d.ID)
		default:
			return res, fmt.Errorf("copying image for diagram %s: %w", d.Name, err)
		}

		data := &TemplateData{
			Details: model.Details{
				ID:     d.ID,
				Name:   d.Name,
				Prefix: g.config.Options.Prefix,
			},
			Diagram: d,
		}
		if resolve != nil {
			data.Package = resolve(d.Package)
		}
		page := filepath.Join(out, strings.ToLower(name)+"_diagram.md")
		if err := g.writeFile(page, PageDiagram, data); err != nil {
			return res, err
		}
		res.Pages++
	}

	return res, nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
