package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sderrors "github.com/nilebasin/sudandata/pkg/errors"
	"github.com/nilebasin/sudandata/pkg/providers"
	"github.com/nilebasin/sudandata/pkg/rowset"
)

// drainBatchSize is how many rows are pulled from the cursor per batch.
const drainBatchSize = 500

// drain pulls every row out of the cursor in fixed-size batches.
func drain[T any](cursor *rowset.Cursor[T]) []T {
	out := make([]T, 0, cursor.Len())
	for {
		batch, done := cursor.Next(drainBatchSize)
		out = append(out, batch...)
		if done {
			return out
		}
	}
}

// fetchCommand creates the fetch command.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		countries []string
		fromYear  int
		toYear    int
		asJSON    bool
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "fetch <provider> <indicator> [element]",
		Short: "Fetch indicator data from a provider",
		Long: `Fetch indicator data from one of the supported providers.

The indicator argument names the provider's series: a World Bank
indicator code (SP.POP.TOTL), a WHO GHO code (WHOSIS_000001), a
FAOSTAT dataset (QCL, requires the element argument), a UNHCR
population type (refugees, idps, ...) or an ILO dataflow
(UNE_DEAP_SEX_AGE_RT).`,
		Example: `  # Sudan population over time
  sudandata fetch worldbank SP.POP.TOTL

  # Compare Sudan with Egypt and South Sudan for 2010-2023
  sudandata fetch worldbank SP.POP.TOTL --countries SDN,EGY,SSD --from 2010 --to 2023

  # FAOSTAT needs dataset and element
  sudandata fetch fao QCL Production

  # Refugees originating from or hosted in Sudan
  sudandata fetch unhcr refugees`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := args[0]
			indicator := args[1]
			element := ""
			if len(args) == 3 {
				element = args[2]
			}

			opts, err := buildFetchOptions(countries, fromYear, toYear)
			if err != nil {
				return err
			}

			cl, err := c.newClients()
			if err != nil {
				return err
			}

			rows, count, err := fetchRows(cmd.Context(), cl, provider, indicator, element, opts)
			if err != nil {
				printError("Fetch failed: %s", sderrors.UserMessage(err))
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			printSuccess("Fetched %d rows from %s", count, provider)
			printRows(rows, limit)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&countries, "countries", nil, "ISO2 or ISO3 country codes (default SDN)")
	cmd.Flags().IntVar(&fromYear, "from", 0, "first year of the range")
	cmd.Flags().IntVar(&toYear, "to", 0, "last year of the range")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print rows as a JSON array")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows to display (0 for all)")

	return cmd
}

// buildFetchOptions validates the shared fetch flags.
func buildFetchOptions(countries []string, from, to int) (providers.FetchOptions, error) {
	var opts providers.FetchOptions
	opts.Countries = countries

	if from == 0 && to == 0 {
		return opts, nil
	}
	if from > 0 && to > 0 && from > to {
		return opts, sderrors.New(sderrors.ErrCodeInvalidYearRange,
			"from year %d is after to year %d", from, to)
	}
	opts.Years = providers.YearRange(int32(from), int32(to))
	return opts, nil
}

// fetchRows dispatches a fetch to the named provider and drains the
// cursor.
func fetchRows(ctx context.Context, cl *clients, provider, indicator, element string, opts providers.FetchOptions) (any, int, error) {
	switch provider {
	case "worldbank":
		cursor, err := cl.worldBank.Fetch(ctx, indicator, opts)
		if err != nil {
			return nil, 0, err
		}
		return drain(cursor), cursor.Len(), nil
	case "who":
		cursor, err := cl.who.Fetch(ctx, indicator, opts)
		if err != nil {
			return nil, 0, err
		}
		return drain(cursor), cursor.Len(), nil
	case "fao":
		if element == "" {
			return nil, 0, sderrors.New(sderrors.ErrCodeInvalidInput,
				"fao requires an element argument, e.g. 'Production'")
		}
		cursor, err := cl.fao.Fetch(ctx, indicator, element, opts)
		if err != nil {
			return nil, 0, err
		}
		return drain(cursor), cursor.Len(), nil
	case "unhcr":
		cursor, err := cl.unhcr.Fetch(ctx, indicator, opts)
		if err != nil {
			return nil, 0, err
		}
		return drain(cursor), cursor.Len(), nil
	case "ilo":
		cursor, err := cl.ilo.Fetch(ctx, indicator, opts)
		if err != nil {
			return nil, 0, err
		}
		return drain(cursor), cursor.Len(), nil
	default:
		return nil, 0, sderrors.New(sderrors.ErrCodeProviderNotFound,
			"unknown provider %q; run 'sudandata providers' for the list", provider)
	}
}

// printRows renders fetched rows one compact JSON object per line.
func printRows(rows any, limit int) {
	data, err := json.Marshal(rows)
	if err != nil {
		return
	}
	var generic []map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return
	}

	shown := len(generic)
	if limit > 0 && shown > limit {
		shown = limit
	}
	for _, row := range generic[:shown] {
		line, err := json.Marshal(row)
		if err != nil {
			continue
		}
		printDetail("%s", line)
	}
	if shown < len(generic) {
		printInfo("%s", fmt.Sprintf("... %d more rows (use --limit 0 or --json for all)", len(generic)-shown))
	}
}
