// xmidoc generates markdown documentation from Enterprise Architect XMI
// model exports, one page per package, class, enumeration and data type.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"xmidoc/internal/config"
)

const (
	Version = "0.1.0"
	appName = "xmidoc"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// flags holds the command line values shared by the subcommands.
type flags struct {
	configPath  string
	input       string
	output      string
	roots       []string
	exclude     []string
	annotation  string
	prefix      string
	templateDir string
	images      string
	single      bool
	clean       bool
	strictNames bool
	noDiagrams  bool
	logLevel    string
}

func rootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate documentation from XMI models",
		Long: `xmidoc reads an Enterprise Architect XMI 2.1 export, resolves the
cross references between its elements and writes one markdown page per
package, class, enumeration and data type, in a directory tree that
mirrors the package structure.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "Config file (YAML/JSON)")
	cmd.PersistentFlags().StringVarP(&f.input, "input", "i", "", "Input XMI file")
	cmd.PersistentFlags().StringSliceVar(&f.roots, "root", nil, "Root package to traverse (repeatable)")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(generateCmd(f), indexCmd(f), inspectCmd(f))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func generateCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the documentation tree",
		Example: `  xmidoc generate -i model/model.xmi -o docs
  xmidoc generate -c xmidoc.yaml --root D2Payload --exclude D2Payload/Legacy
  xmidoc generate -i model.xmi -o docs --single --annotation documentation
  xmidoc generate -c xmidoc.yaml --clean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, f.logLevel)

			sum, err := generate(cfg, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d pages (%d files) in %s\n", sum.Records, sum.Files, cfg.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output directory")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "Exclude a package path pattern (repeatable)")
	cmd.Flags().StringVar(&f.annotation, "annotation", "", "Description source (definition, documentation)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Model prefix shown on every page")
	cmd.Flags().StringVar(&f.templateDir, "templates", "", "Directory with template overrides")
	cmd.Flags().StringVar(&f.images, "images", "", "Directory holding diagram images")
	cmd.Flags().BoolVar(&f.single, "single", false, "Write a single composite document")
	cmd.Flags().BoolVar(&f.clean, "clean", false, "Move an existing output directory to a timestamped backup first")
	cmd.Flags().BoolVar(&f.strictNames, "strict-names", false, "Fail on duplicate package names")
	cmd.Flags().BoolVar(&f.noDiagrams, "no-diagrams", false, "Skip diagram pages and images")

	return cmd
}

func indexCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Print the reference index of a model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return printIndex(cfg, newLogger(cmd, f.logLevel), cmd.OutOrStdout())
		},
	}
}

func inspectCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Dump the assembled page records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return inspect(cfg, newLogger(cmd, f.logLevel), cmd.OutOrStdout())
		},
	}
}

// loadConfig merges the config file over defaults, then applies flags that
// were set explicitly.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg := config.New()
	if f.configPath != "" {
		if err := cfg.LoadFile(f.configPath); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	changed := cmd.Flags().Changed
	if f.input != "" {
		cfg.Input = f.input
	}
	if f.output != "" {
		cfg.Output = f.output
	}
	if len(f.roots) > 0 {
		cfg.Roots = f.roots
	}
	if len(f.exclude) > 0 {
		cfg.Options.Exclude = append(cfg.Options.Exclude, f.exclude...)
	}
	if f.annotation != "" {
		cfg.Options.Annotation = f.annotation
	}
	if f.prefix != "" {
		cfg.Options.Prefix = f.prefix
	}
	if f.templateDir != "" {
		cfg.Options.TemplateDir = f.templateDir
	}
	if f.images != "" {
		cfg.Options.ImagesSource = f.images
	}
	if changed("single") {
		cfg.Options.Single = f.single
	}
	if changed("clean") {
		cfg.Options.Clean = f.clean
	}
	if changed("strict-names") {
		cfg.Options.StrictNames = f.strictNames
	}
	if changed("no-diagrams") {
		enabled := !f.noDiagrams
		cfg.Options.Diagrams = &enabled
	}

	if cfg.Input == "" {
		return nil, fmt.Errorf("input file is required (-i or --input)")
	}
	if cmd.Name() == "generate" && cfg.Output == "" {
		return nil, fmt.Errorf("output directory is required (-o or --output)")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
