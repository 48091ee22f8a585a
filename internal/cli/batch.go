package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/imagekit/internal/batch"
	"github.com/ironsheep/imagekit/internal/transform"
)

type batchOptions struct {
	transform string
	workers   int
	suffix    string
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch INPUT_DIR OUTPUT_DIR",
		Short: "Transform every image in a directory",
		Long: `Transform every image in INPUT_DIR and write the results to OUTPUT_DIR.

Every regular file in INPUT_DIR must be a .jpg, .jpeg, .png or .bmp image;
subdirectories are skipped. Each output keeps its input's name and format,
with --suffix inserted before the extension.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				opts.workers = c.config.Batch.Workers
			}
			if !cmd.Flags().Changed("suffix") {
				opts.suffix = c.config.Batch.Suffix
			}
			return c.runBatch(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.transform, "transform", "t", "sobel", "transform to apply ("+strings.Join(transform.Names(), ", ")+")")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "images processed at once (default from config)")
	cmd.Flags().StringVarP(&opts.suffix, "suffix", "s", "", "text appended to each output file name")

	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, inDir, outDir string, opts batchOptions) error {
	t, err := transform.Lookup(opts.transform)
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Store:     c.newStore(),
		Transform: t,
		Workers:   opts.workers,
		Suffix:    opts.suffix,
		Logger:    c.Logger,
	}
	_, err = runner.Run(cmd.Context(), inDir, outDir)
	return err
}
