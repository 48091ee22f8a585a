package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ironsheep/imagekit/internal/inspect"
	"github.com/ironsheep/imagekit/internal/transform"
)

// sampleCommand creates the sample command.
func (c *CLI) sampleCommand() *cobra.Command {
	var transformName string

	cmd := &cobra.Command{
		Use:   "sample PATH X Y",
		Short: "Print the color of one pixel as JSON",
		Long: `Print the color of the pixel at (X, Y) as JSON, in hex, RGB, packed ARGB
and HSL notation. Coordinates are 0-based from the top-left corner.

With --transform the image is transformed first, so that for example
"--transform sobel" prints the edge strength at that pixel.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid X coordinate %q", args[1])
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid Y coordinate %q", args[2])
			}
			return c.runSample(args[0], x, y, transformName)
		},
	}

	cmd.Flags().StringVarP(&transformName, "transform", "t", "", "transform to apply before sampling")

	return cmd
}

func (c *CLI) runSample(path string, x, y int, transformName string) error {
	r, err := c.newStore().Load(path)
	if err != nil {
		return err
	}

	if transformName != "" {
		t, err := transform.Lookup(transformName)
		if err != nil {
			return err
		}
		if r, err = t.Process(r); err != nil {
			return err
		}
	}

	color, err := inspect.SampleColor(r, x, y)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(color)
}
