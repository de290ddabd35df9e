package cli

import (
	"github.com/spf13/cobra"
)

func newRequestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests <landlord>",
		Short: "List visit requests on your listings",
		Long:  "List every viewing request made on a landlord's listings, newest first.",
		Args:  cobra.ExactArgs(1),
		RunE:  runRequests,
	}
}

func runRequests(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	views, err := a.visits.ListByLandlord(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(views)
	}

	return printVisitTable(views)
}
