package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nilebasin/sudandata/pkg/providers"
)

// providersCommand creates the providers command.
func (c *CLI) providersCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List the supported data providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := providers.Providers()
			if asJSON {
				return printJSON(list)
			}
			for _, p := range list {
				fmt.Println(StyleTitle.Render(p.ID) + " " + StyleDim.Render(p.NameAr))
				printKeyValue("name", p.Name)
				printKeyValue("url", p.BaseURL)
				printDetail("%s", p.Description)
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the registry as JSON")

	return cmd
}

// countriesCommand creates the countries command.
func (c *CLI) countriesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List the supported countries",
		Long:  `List the countries the fetchers understand: Sudan and its neighbors, with ISO2 and ISO3 codes and Arabic names.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := providers.Countries()
			if asJSON {
				return printJSON(list)
			}
			for _, country := range list {
				name := country.Name + " " + StyleDim.Render(country.NameAr)
				printKeyValue(country.ISO3+" / "+country.ISO2, name)
			}
			printInfo("%d countries; %s is the default", len(list), providers.DefaultCountry)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the registry as JSON")

	return cmd
}
