package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecotrack/ecotrack/internal/factors"
	"github.com/ecotrack/ecotrack/internal/suggest"
)

func newSuggestCmd() *cobra.Command {
	var inputPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Rank reduction tips for a category breakdown",
		Long: "Rank emission reduction suggestions from a JSON category breakdown " +
			"(category name to kg CO2e), highest-impact first. Categories below the " +
			"materiality threshold are omitted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var data []byte
			var err error
			if inputPath == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(inputPath)
			}
			if err != nil {
				return fmt.Errorf("read breakdown payload: %w", err)
			}

			var breakdown map[factors.Category]float64
			if err := json.Unmarshal(data, &breakdown); err != nil {
				return fmt.Errorf("parse breakdown payload: %w", err)
			}

			suggestions := suggest.Rank(breakdown)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), suggestions)
			}
			renderSuggestions(cmd.OutOrStdout(), suggestions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "breakdown JSON file (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of formatted output")
	return cmd
}
