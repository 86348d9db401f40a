package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/leapstack-labs/jspy/internal/cli/config"
	"github.com/leapstack-labs/jspy/internal/cli/output"
	"github.com/leapstack-labs/jspy/pkg/ast"
	"github.com/leapstack-labs/jspy/pkg/render"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	errNoInput     = errors.New("no input: pass a file or set source (JSPY_SOURCE)")
	errUnsupported = errors.New("unsupported constructs")
)

// FileResult is the outcome of rendering one document.
type FileResult struct {
	File        string              `json:"file"`
	Code        string              `json:"code"`
	Output      string              `json:"output,omitempty"`
	Diagnostics []render.Diagnostic `json:"diagnostics"`
}

type renderOptions struct {
	source  string
	outDir  string
	workers int
	strict  bool
	watch   bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render JavaScript AST documents as Python-style source",
		Long: `Render one or more babel-shaped JavaScript AST documents (JSON or YAML)
as indentation-based Python-style source.

Without file arguments the configured source document is rendered
(source in jspy.yaml or JSPY_SOURCE).

Constructs the renderer does not support produce no text and are listed
as diagnostics after the output. Use --strict to fail on them.`,
		Example: `  # Render a document to stdout
  jspy render program.json

  # Render several documents in parallel into a directory
  jspy render --out-dir build a.json b.yaml

  # Re-render whenever the document changes
  jspy render --watch program.json

  # Machine-readable output
  jspy render -o json program.json`,
		RunE: runRender,
	}

	cmd.Flags().BoolP("watch", "w", false, "Re-render when input files change")
	cmd.Flags().String("out-dir", "", "Write <name>.py files to this directory instead of stdout")
	cmd.Flags().Int("workers", config.DefaultWorkers, "Number of files rendered concurrently")
	cmd.Flags().Bool("strict", false, "Fail when any construct is unsupported")
	cmd.Flags().String("source", "", "Document rendered when no files are given")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger
	opts := resolveRenderOptions(cmd, cmdCtx.Cfg)

	files := args
	if len(files) == 0 {
		if opts.source == "" {
			return errNoInput
		}
		files = []string{opts.source}
	}

	renderOnce := func(ctx context.Context) error {
		results, err := renderFiles(ctx, files, opts.workers, logger)
		if err != nil {
			return err
		}
		if opts.outDir != "" {
			if err := writeOutputs(results, opts.outDir); err != nil {
				return err
			}
		}
		if err := printResults(r, results); err != nil {
			return err
		}
		return checkStrict(results, opts.strict)
	}

	if !opts.watch {
		return renderOnce(cmd.Context())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := renderOnce(ctx); err != nil {
		r.Error(err.Error())
	}
	r.Muted(fmt.Sprintf("Watching %d file(s) for changes...", len(files)))

	return watchFiles(ctx, files, logger, func(path string) {
		logger.Debug("file changed, re-rendering", "file", path)
		if err := renderOnce(ctx); err != nil {
			r.Error(err.Error())
		}
	})
}

// resolveRenderOptions starts from the loaded config and applies any
// render flag that was set explicitly.
func resolveRenderOptions(cmd *cobra.Command, cfg *config.Config) renderOptions {
	opts := renderOptions{
		source:  cfg.Source,
		outDir:  cfg.OutDir,
		workers: cfg.Workers,
		strict:  cfg.Strict,
	}
	flags := cmd.Flags()
	if flags.Changed("source") {
		opts.source, _ = flags.GetString("source")
	}
	if flags.Changed("out-dir") {
		opts.outDir, _ = flags.GetString("out-dir")
	}
	if flags.Changed("workers") {
		opts.workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("strict") {
		opts.strict, _ = flags.GetBool("strict")
	}
	opts.watch, _ = flags.GetBool("watch")
	if opts.workers < 1 {
		opts.workers = 1
	}
	return opts
}

// renderFiles renders files concurrently, at most workers at a time.
// Results keep the order of files.
func renderFiles(ctx context.Context, files []string, workers int, logger *slog.Logger) ([]FileResult, error) {
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := renderFile(path, logger)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func renderFile(path string, logger *slog.Logger) (FileResult, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	root, err := ast.Parse(path, data)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	res := FileResult{File: path, Diagnostics: []render.Diagnostic{}}
	code, err := render.Render(root,
		render.WithLogger(logger.With("file", path)),
		render.WithDiagnostics(func(d render.Diagnostic) {
			res.Diagnostics = append(res.Diagnostics, d)
		}),
	)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to render %s: %w", path, err)
	}
	res.Code = code
	return res, nil
}

// outputName maps an input document path to its .py file name.
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".py"
}

func writeOutputs(results []FileResult, outDir string) error {
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i := range results {
		target := filepath.Join(outDir, outputName(results[i].File))
		code := results[i].Code
		if !strings.HasSuffix(code, "\n") {
			code += "\n"
		}
		if err := os.WriteFile(target, []byte(code), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		results[i].Output = target
	}
	return nil
}

func printResults(r *output.Renderer, results []FileResult) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(results)
	case output.ModeMarkdown:
		printMarkdown(r, results)
	default:
		printText(r, results)
	}
	return nil
}

func printText(r *output.Renderer, results []FileResult) {
	for i, res := range results {
		if res.Output != "" {
			r.Success(fmt.Sprintf("Wrote %s", res.Output))
		} else {
			if len(results) > 1 {
				if i > 0 {
					r.Println("")
				}
				r.Header(2, res.File)
			}
			r.Println(strings.TrimRight(res.Code, "\n"))
		}
		for _, d := range res.Diagnostics {
			r.Warning(fmt.Sprintf("%s: %s", res.File, d.Message))
		}
	}
}

func printMarkdown(r *output.Renderer, results []FileResult) {
	for _, res := range results {
		r.Println(output.FormatHeader(2, res.File))
		r.Println("")
		if res.Output != "" {
			r.Println(output.FormatKeyValue("Output", res.Output))
		} else {
			r.Println(output.FormatCodeBlock("python", res.Code))
		}
		if len(res.Diagnostics) > 0 {
			r.Println("")
			r.Println(output.FormatHeader(3, "Unsupported constructs"))
			for _, d := range res.Diagnostics {
				r.Println(fmt.Sprintf("- `%s`: %s", d.Type, d.Message))
			}
		}
		r.Println("")
	}
}

func checkStrict(results []FileResult, strict bool) error {
	if !strict {
		return nil
	}
	count := 0
	for _, res := range results {
		count += len(res.Diagnostics)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d found", errUnsupported, count)
	}
	return nil
}
