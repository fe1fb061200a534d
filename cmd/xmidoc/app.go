package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"

	"xmidoc/internal/assemble"
	"xmidoc/internal/config"
	"xmidoc/internal/generator"
	"xmidoc/internal/index"
	"xmidoc/internal/model"
	"xmidoc/internal/parser"
	"xmidoc/internal/traverse"
)

// singleFileName is the composite document written with --single.
const singleFileName = "model.md"

// backupLayout is appended to the output directory name by --clean.
const backupLayout = "2006-01-02_15-04-05"

// summary reports what a generate run produced.
type summary struct {
	RunID    string
	Records  int
	Files    int
	Skipped  int
	Diagrams int
}

// pipeline is the parsed model with its index and assembler.
type pipeline struct {
	doc *model.Document
	idx *index.Index
	asm *assemble.Assembler
}

func load(cfg *config.Config, logger *slog.Logger) (*pipeline, error) {
	doc, err := parser.New(logger).ParseFile(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("parsing input: %w", err)
	}

	idx := index.Build(doc)
	logger.Info("Indexed model",
		slog.String("file", cfg.Input),
		slog.Int("entries", idx.Len()),
		slog.Int("diagrams", len(doc.Diagrams)))

	asm := assemble.New(doc, idx, assemble.Options{
		Annotation:    assemble.Annotation(cfg.Options.Annotation),
		DefinitionTag: cfg.Options.DefinitionTag,
		Prefix:        cfg.Options.Prefix,
		Logger:        logger,
	})
	return &pipeline{doc: doc, idx: idx, asm: asm}, nil
}

func (p *pipeline) traverse(cfg *config.Config, sink traverse.Sink, logger *slog.Logger) (*traverse.Result, error) {
	t := traverse.New(p.doc, p.asm, sink, traverse.Options{
		Kinds:       cfg.ElementKinds(),
		Exclude:     cfg.Excluded,
		StrictNames: cfg.Options.StrictNames,
		Logger:      logger,
	})
	return t.Run(cfg.Roots...)
}

// generate runs the whole pipeline and writes the output tree.
func generate(cfg *config.Config, logger *slog.Logger) (sum *summary, err error) {
	runID := uuid.New().String()
	logger = logger.With(slog.String("run_id", runID))
	start := time.Now()

	p, err := load(cfg, logger)
	if err != nil {
		return nil, err
	}

	gen := generator.New(cfg, logger)
	if err := gen.LoadTemplates(); err != nil {
		return nil, err
	}

	if cfg.Options.Clean {
		backup, err := backupOutput(cfg.Output, start)
		if err != nil {
			return nil, err
		}
		if backup != "" {
			logger.Info("Moved previous output", slog.String("backup", backup))
		}
	}

	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	sum = &summary{RunID: runID}

	var sink traverse.Sink
	var files *generator.FileSink
	if cfg.Options.Single {
		f, cerr := os.Create(filepath.Join(cfg.Output, singleFileName))
		if cerr != nil {
			return nil, fmt.Errorf("creating output file: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %s: %w", f.Name(), cerr)
			}
		}()
		sink = generator.NewCompositeSink(gen, f, runID)
	} else {
		files = generator.NewFileSink(gen, cfg.Output)
		sink = files
	}

	res, err := p.traverse(cfg, sink, logger)
	if err != nil {
		return nil, err
	}
	sum.Records = res.Total()
	sum.Skipped = len(res.Skipped)
	if files != nil {
		sum.Files = len(files.Files())
	} else {
		sum.Files = 1
	}

	if cfg.DiagramsEnabled() && !cfg.Options.Single {
		dres, err := gen.Diagrams(p.doc.Diagrams, cfg.Output, p.idx.Name)
		if err != nil {
			return nil, err
		}
		sum.Diagrams = dres.Pages
		sum.Files += dres.Pages + dres.Images
	}

	logger.Info("Generation complete",
		slog.Int("records", sum.Records),
		slog.Int("files", sum.Files),
		slog.Int("skipped_packages", sum.Skipped),
		slog.Int("diagrams", sum.Diagrams),
		slog.Duration("elapsed", time.Since(start)))

	return sum, nil
}

// backupOutput moves an existing output directory to <dir>_<timestamp> and
// returns the backup path. It returns "" when dir does not exist.
func backupOutput(dir string, now time.Time) (string, error) {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("checking output directory: %w", err)
	case !info.IsDir():
		return "", fmt.Errorf("output %s is not a directory", dir)
	}

	backup := filepath.Clean(dir) + "_" + now.Format(backupLayout)
	if _, err := os.Stat(backup); err == nil {
		return "", fmt.Errorf("backup directory %s already exists", backup)
	}
	if err := os.Rename(dir, backup); err != nil {
		return "", fmt.Errorf("backing up output directory: %w", err)
	}
	return backup, nil
}

// printIndex writes one line per indexed element, sorted by id.
func printIndex(cfg *config.Config, logger *slog.Logger, w io.Writer) error {
	p, err := load(cfg, logger)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tNAME")
	for _, id := range p.idx.IDs() {
		e, _ := p.idx.Lookup(id)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", id, e.Kind.Short(), model.Quote(p.idx.Name(id)))
	}
	return tw.Flush()
}

// inspect dumps every record the traversal assembles without rendering.
func inspect(cfg *config.Config, logger *slog.Logger, w io.Writer) error {
	p, err := load(cfg, logger)
	if err != nil {
		return err
	}

	dumper := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}

	_, err = p.traverse(cfg, traverse.SinkFunc(func(rec *model.PageRecord) error {
		fmt.Fprintf(w, "== %s (%s)\n", filepath.ToSlash(filepath.Join(rec.Path...)), rec.Kind)
		dumper.Fdump(w, rec)
		return nil
	}), logger)
	return err
}
