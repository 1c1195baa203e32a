package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecotrack/ecotrack/internal/engine"
)

// readActivityInput decodes an ActivityInput payload from a file, or
// from stdin when path is "-".
func readActivityInput(cmd *cobra.Command, path string) (*engine.ActivityInput, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read activity payload: %w", err)
	}

	var in engine.ActivityInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse activity payload: %w", err)
	}
	return &in, nil
}

func newCalcCmd() *cobra.Command {
	var inputPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate a baseline carbon footprint",
		Long: "Calculate the rule-based baseline footprint from a JSON activity payload. " +
			"All figures are kg CO2e per week.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readActivityInput(cmd, inputPath)
			if err != nil {
				return err
			}

			table, err := loadTable(cmd)
			if err != nil {
				return err
			}

			eng := engine.New(table, engine.WithParallel(cfg.Engine.Parallel))
			result, err := eng.CalculateBaseline(cmd.Context(), in)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			renderBaseline(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "activity payload JSON file (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of formatted output")
	return cmd
}

func newRefineCmd() *cobra.Command {
	var inputPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "refine",
		Short: "Calculate a footprint and apply the refinement layer",
		Long: "Calculate the baseline footprint, then apply bounded contextual adjustments " +
			"(house size, occupants, climate-control hours) with an insight per applied rule.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readActivityInput(cmd, inputPath)
			if err != nil {
				return err
			}

			table, err := loadTable(cmd)
			if err != nil {
				return err
			}

			eng := engine.New(table, engine.WithParallel(cfg.Engine.Parallel))
			baseline, err := eng.CalculateBaseline(cmd.Context(), in)
			if err != nil {
				return err
			}
			refined, err := eng.Refine(cmd.Context(), baseline, in)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), refined)
			}
			renderRefined(cmd.OutOrStdout(), refined)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "activity payload JSON file (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of formatted output")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
