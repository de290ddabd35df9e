package cli

import (
	"github.com/spf13/cobra"
)

func newVisitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visits <username>",
		Short: "List a visitor's viewing requests",
		Long:  "List every viewing request a visitor has made, newest first.",
		Args:  cobra.ExactArgs(1),
		RunE:  runVisits,
	}
}

func runVisits(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	views, err := a.visits.ListByVisitor(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(views)
	}

	return printVisitTable(views)
}
