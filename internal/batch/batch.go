// Package batch applies a transform to every image in a directory.
//
// Each input file is loaded, processed and saved independently, so a
// directory is processed in parallel up to the configured worker count. The
// first failure cancels the files that have not started yet.
//
// # Output Names
//
// An input named "<stem><ext>" is written to "<outDir>/<stem><suffix><ext>",
// keeping the input's format. Existing files are never overwritten, so
// processing a directory into itself needs a non-empty suffix.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/imagekit/internal/store"
	"github.com/ironsheep/imagekit/internal/transform"
)

// Runner processes directories of images.
type Runner struct {
	// Store loads inputs and saves outputs.
	Store store.Store

	// Transform is applied to every input.
	Transform transform.Transform

	// Workers bounds how many files are processed at once. Values below 1
	// use runtime.NumCPU().
	Workers int

	// Suffix is appended to each output stem.
	Suffix string

	// Logger receives per-file debug output and a summary. Nil discards.
	Logger *log.Logger
}

// FileResult describes one processed file.
type FileResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Report describes a completed directory run.
type Report struct {
	// Files lists the processed files in input filename order.
	Files []FileResult `json:"files"`

	Elapsed time.Duration `json:"elapsed"`
}

// OutputPath returns the path Run writes the result for input to.
func OutputPath(input, outDir, suffix string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(outDir, stem+suffix+ext)
}

// Run processes every image in inDir and writes the results to outDir.
//
// Nothing is processed if inDir cannot be listed; the store's errors are
// returned unchanged in that case. A missing outDir returns an error wrapping
// store.ErrNoParentDir. Otherwise the first per-file failure is returned
// wrapped with the input path, and files already saved stay on disk.
func (r *Runner) Run(ctx context.Context, inDir, outDir string) (*Report, error) {
	if r.Store == nil {
		return nil, fmt.Errorf("%w: nil store", transform.ErrInvalidArgument)
	}
	if r.Transform == nil {
		return nil, fmt.Errorf("%w: nil transform", transform.ErrInvalidArgument)
	}

	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	start := time.Now()

	inputs, err := r.Store.List(inDir)
	if err != nil {
		return nil, err
	}
	if fi, err := os.Stat(outDir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", store.ErrNoParentDir, outDir)
	}

	workers := r.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	logger.Debug("processing directory", "input", inDir, "output", outDir, "files", len(inputs), "workers", workers)

	results := make([]FileResult, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.processFile(input, OutputPath(input, outDir, r.Suffix))
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			logger.Debug("processed image", "input", input, "output", res.Output)
			results[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Files: results, Elapsed: time.Since(start)}
	logger.Infof("Processed %d images (%s)", len(results), report.Elapsed.Round(time.Millisecond))
	return report, nil
}

func (r *Runner) processFile(input, output string) (*FileResult, error) {
	src, err := r.Store.Load(input)
	if err != nil {
		return nil, err
	}
	dst, err := r.Transform.Process(src)
	if err != nil {
		return nil, err
	}
	if err := r.Store.Save(dst, output); err != nil {
		return nil, err
	}
	return &FileResult{
		Input:  input,
		Output: output,
		Width:  dst.Width(),
		Height: dst.Height(),
	}, nil
}
