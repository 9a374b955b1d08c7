package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nilebasin/sudandata/pkg/catalog"
	sderrors "github.com/nilebasin/sudandata/pkg/errors"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indicators across providers",
		Long: `Search the World Bank and WHO indicator catalogs for a term.

Multiple words are joined into a single query. Providers that fail to
answer are skipped so a partial result is still returned.`,
		Example: `  sudandata search "maternal mortality"
  sudandata search food insecurity --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			cl, err := c.newClients()
			if err != nil {
				return err
			}

			searcher := catalog.NewSearcher(cl.worldBank, cl.who, c.Logger)
			results, err := searcher.Search(cmd.Context(), query)
			if err != nil {
				printError("Search failed: %s", sderrors.UserMessage(err))
				return err
			}

			if asJSON {
				return printJSON(results)
			}

			if len(results) == 0 {
				printWarning("No indicators match %q", query)
				return nil
			}
			printSuccess("%d indicators match %q", len(results), query)
			for _, res := range results {
				printKeyValue(res.IndicatorID, res.IndicatorName+" "+StyleDim.Render("("+res.Provider+")"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}
