package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgallina/casaviva/internal/listing"
)

func newListCmd() *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse published listings",
		Long:  "List every published listing, sorted by highest rent or fewest rooms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(sortBy)
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "price", "sort order (price|rooms)")

	return cmd
}

func runList(sortBy string) error {
	key := listing.SortKey(sortBy)
	if key != listing.SortByPrice && key != listing.SortByRooms {
		return fmt.Errorf("unknown sort order: %q (use price or rooms)", sortBy)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	views, err := a.listings.ListPublic(key)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(views)
	}

	return printListingTable(views)
}
