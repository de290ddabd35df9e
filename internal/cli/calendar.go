package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCalendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <listing-id>",
		Short: "Show a listing's weekly availability",
		Long:  "Show the next 7 days of viewing slots for a listing. Cells taken by an accepted visit are marked.",
		Args:  cobra.ExactArgs(1),
		RunE:  runCalendar,
	}
}

func runCalendar(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid listing ID: %s", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	// Surface not-found before building the grid.
	if _, err := a.listings.OwnerOf(id); err != nil {
		return err
	}

	week, err := a.policy.AvailabilityCalendar(id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(week)
	}

	return printCalendar(week)
}
