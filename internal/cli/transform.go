package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/imagekit/internal/transform"
)

// transformCommand creates a command that applies the named transform to
// one image.
func (c *CLI) transformCommand(use, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " INPUT OUTPUT",
		Short: short,
		Long: short + `.

The output format follows the OUTPUT suffix (.jpg, .jpeg, .png or .bmp).
OUTPUT must not exist yet and its directory must exist.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTransform(name, args[0], args[1])
		},
	}
}

func (c *CLI) runTransform(name, input, output string) error {
	start := time.Now()

	t, err := transform.Lookup(name)
	if err != nil {
		return err
	}

	s := c.newStore()
	src, err := s.Load(input)
	if err != nil {
		return err
	}
	dst, err := t.Process(src)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := s.Save(dst, output); err != nil {
		return err
	}

	c.Logger.Infof("Wrote %s (%dx%d, %s)", output, dst.Width(), dst.Height(), time.Since(start).Round(time.Millisecond))
	return nil
}
