package cli

import (
	"github.com/spf13/cobra"
)

func newMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine <landlord>",
		Short: "List your own listings",
		Long:  "List every listing owned by a landlord, published or not.",
		Args:  cobra.ExactArgs(1),
		RunE:  runMine,
	}
}

func runMine(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	listings, err := a.listings.ListByLandlord(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(listings)
	}

	return printRawListingTable(listings)
}
