package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/imagekit/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Run the MCP server. Requests are read from stdin, one JSON-RPC message per
line, and responses are written to stdout. Configure it in your MCP client
(e.g., Claude Desktop) as the command "imagekit serve".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd)
		},
	}
}

func (c *CLI) serve(cmd *cobra.Command) error {
	c.Logger.Debug("starting MCP server", "version", c.build.Version, "commit", c.build.GitCommit, "built", c.build.BuildTime)

	srv := server.New(server.Options{
		Name:    c.config.Server.Name,
		Version: c.build.Version,
		Store:   c.newStore(),
		Cache:   c.config.Store.Cache,
		Workers: c.config.Batch.Workers,
		Suffix:  c.config.Batch.Suffix,
		Logger:  c.Logger,
	})
	return srv.Run(cmd.Context(), c.stdin, c.stdout)
}
