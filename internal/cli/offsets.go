package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ecotrack/ecotrack/internal/offsets"
)

func newOffsetsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "offsets <footprint-kg>",
		Short: "Price offset projects for a footprint",
		Long: "Price the offset project catalog against a total footprint given in kg CO2e. " +
			"Costs are per-ton rates applied to the footprint converted to tons.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("footprint must be a number, got %q", args[0])
			}

			projects, err := offsets.NewRecommender().Recommend(kg)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), projects)
			}
			renderOffsets(cmd.OutOrStdout(), kg, projects)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of formatted output")
	return cmd
}
