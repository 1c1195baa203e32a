package cli

import (
	"github.com/spf13/cobra"

	"github.com/ecotrack/ecotrack/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the footprint API over HTTP",
		Long: "Run the HTTP API: footprint calculation, refinement, offset pricing, " +
			"suggestion ranking, history, and factor table reloads.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.Server.Addr
			}

			srv := server.New(cfg, table, logger)
			logger.Info().
				Str("addr", addr).
				Str("factors_version", table.Version()).
				Msg("serving footprint API")
			return srv.Router().Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8000)")
	return cmd
}
