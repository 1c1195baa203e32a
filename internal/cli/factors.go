package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ecotrack/ecotrack/internal/factors"
)

func newFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Inspect and validate emission factor tables",
	}

	cmd.AddCommand(newFactorsShowCmd(), newFactorsValidateCmd())
	return cmd
}

func newFactorsShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active emission factor table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, tableDump(table))
			}

			fmt.Fprintf(out, "Factor table %s (%d factors)\n", table.Version(), table.Len())
			for _, cat := range factors.Categories() {
				fmt.Fprintf(out, "\n%s\n", cat)
				subtypes := table.Subtypes(cat)
				sort.Strings(subtypes)
				for _, sub := range subtypes {
					f, err := table.Lookup(cat, sub)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "  %-20s %8.3f kg CO2e/%s  (%s)\n", sub, f.KgCO2PerUnit, f.Unit, f.Source)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of formatted output")
	return cmd
}

func newFactorsValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate an emission factor table file",
		Long: "Load a YAML factor table and run the same validation the server applies " +
			"on reload: every category present, every factor non-negative with a unit " +
			"and source, waste carrying both landfill and recycling_credit.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := factors.Load(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (version %s, %d factors)\n",
				args[0], table.Version(), table.Len())
			return nil
		},
	}
}

// tableDump flattens a table for JSON output, keyed category/subtype.
func tableDump(table *factors.Table) map[string]map[string]factors.Factor {
	dump := make(map[string]map[string]factors.Factor)
	for _, cat := range factors.Categories() {
		entries := make(map[string]factors.Factor)
		for _, sub := range table.Subtypes(cat) {
			if f, err := table.Lookup(cat, sub); err == nil {
				entries[sub] = f
			}
		}
		dump[string(cat)] = entries
	}
	return dump
}
