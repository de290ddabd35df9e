package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show listing details",
		Long:  "Show full details for a published listing, including its photos.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid listing ID: %s", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	view, err := a.listings.GetByID(id)
	if err != nil {
		return err
	}

	names, err := a.listings.ImagesOf(id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(struct {
			Listing interface{} `json:"listing"`
			Images  []string    `json:"images"`
		}{view, names})
	}

	printListingSummary(view, names)
	return nil
}
