// Package cli implements the imagekit command-line interface.
//
// The CLI is built with cobra and logs through charmbracelet/log to stderr;
// stdout carries command output, or the MCP protocol for serve.
//
// # Commands
//
//   - serve: run the MCP server on stdio (the default)
//   - grayscale IN OUT: convert one image to grayscale
//   - edges IN OUT: Sobel edge map of one image
//   - batch IN_DIR OUT_DIR: transform every image in a directory
//   - sample PATH X Y: print the color of one pixel as JSON
//
// # Configuration
//
// Settings come from the TOML file named by --config or IMAGEKIT_CONFIG,
// then from IMAGEKIT_* environment variables. --verbose forces debug
// logging.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/imagekit/internal/config"
	"github.com/ironsheep/imagekit/internal/store"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildTime string
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	build  BuildInfo
	config *config.Config
	stdin  io.Reader
	stdout io.Writer

	configPath string
	verbose    bool
}

// New creates a CLI that reads protocol input from stdin, writes command
// output to stdout and logs to stderr.
func New(build BuildInfo, stdin io.Reader, stdout, stderr io.Writer) *CLI {
	if build.Version == "" {
		build.Version = "dev"
	}
	return &CLI{
		Logger: log.NewWithOptions(stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.InfoLevel,
		}),
		build:  build,
		config: config.Default(),
		stdin:  stdin,
		stdout: stdout,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "imagekit",
		Short: "imagekit converts images to grayscale and detects edges",
		Long: `imagekit loads JPEG, PNG and BMP images, applies luminosity grayscale or
Sobel edge detection, and saves the results. Without a subcommand it runs as
an MCP server on stdin/stdout.`,
		Version:           c.build.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n",
		c.build.Version, c.build.GitCommit, c.build.BuildTime))
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a TOML config file (default $"+config.EnvConfig+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.transformCommand("grayscale", "grayscale", "Convert an image to grayscale"))
	root.AddCommand(c.transformCommand("edges", "sobel", "Write the Sobel edge map of an image"))
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.sampleCommand())

	return root
}

// setup loads the configuration and applies the log level before any
// command runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	path := c.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.config = cfg

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.Logger.SetLevel(level)

	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return nil
}

// newStore creates the file store configured for this run.
func (c *CLI) newStore() *store.FileStore {
	return store.NewFileStore(
		store.WithLogger(c.Logger),
		store.WithJPEGQuality(c.config.Store.JPEGQuality),
	)
}
