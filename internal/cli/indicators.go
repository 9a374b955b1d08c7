package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	sderrors "github.com/nilebasin/sudandata/pkg/errors"
)

// indicatorsCommand creates the indicators command.
func (c *CLI) indicatorsCommand() *cobra.Command {
	var (
		search string
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "indicators <worldbank|who>",
		Short: "List a provider's indicator catalog",
		Long: `List the indicator catalog of a provider.

Only the World Bank and WHO expose browsable catalogs; the other
providers are queried by dataset or population type directly.`,
		Example: `  sudandata indicators worldbank --search population
  sudandata indicators who --search mortality --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := c.newClients()
			if err != nil {
				return err
			}

			switch args[0] {
			case "worldbank":
				list, err := cl.worldBank.Indicators(cmd.Context(), search)
				if err != nil {
					printError("Catalog fetch failed: %s", sderrors.UserMessage(err))
					return err
				}
				if asJSON {
					return printJSON(list)
				}
				printSuccess("%d World Bank indicators", len(list))
				for i, ind := range list {
					if limit > 0 && i == limit {
						printInfo("... %d more (use --limit 0 or --json for all)", len(list)-limit)
						break
					}
					printIndicator(ind.ID, ind.Name)
				}
				return nil
			case "who":
				list, err := cl.who.Indicators(cmd.Context(), search)
				if err != nil {
					printError("Catalog fetch failed: %s", sderrors.UserMessage(err))
					return err
				}
				if asJSON {
					return printJSON(list)
				}
				printSuccess("%d WHO indicators", len(list))
				for i, ind := range list {
					if limit > 0 && i == limit {
						printInfo("... %d more (use --limit 0 or --json for all)", len(list)-limit)
						break
					}
					printIndicator(ind.Code, ind.Name)
				}
				return nil
			default:
				return sderrors.New(sderrors.ErrCodeInvalidProvider,
					"provider %q has no browsable catalog; use worldbank or who", args[0])
			}
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by code or name substring")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum indicators to display (0 for all)")

	return cmd
}

// printIndicator renders one catalog entry.
func printIndicator(code, name string) {
	printKeyValue(code, name)
}

// printJSON writes v indented to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
