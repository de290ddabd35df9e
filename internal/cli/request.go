package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mgallina/casaviva/internal/slot"
)

func newRequestCmd() *cobra.Command {
	var (
		visitor string
		virtual bool
	)

	cmd := &cobra.Command{
		Use:   "request <listing-id> <date> <slot>",
		Short: "Request a viewing",
		Long: `Request a viewing on a listing for a date and slot.

Date format: YYYY-MM-DD
Slots: 9-12, 12-14, 14-17, 17-20 (or their positions 0-3)

Examples:
  casaviva request 3 2026-09-12 9-12 --visitor ugo
  casaviva request 3 2026-09-12 2 --visitor ugo --virtual`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(args, visitor, virtual)
		},
	}

	cmd.Flags().StringVar(&visitor, "visitor", "", "visitor username (required)")
	cmd.Flags().BoolVar(&virtual, "virtual", false, "request a remote viewing")
	_ = cmd.MarkFlagRequired("visitor")

	return cmd
}

// parseSlotArg accepts either a slot label ("9-12") or its position ("0").
func parseSlotArg(arg string) (slot.Slot, error) {
	if s, err := slot.Parse(arg); err == nil {
		return s, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || !slot.Slot(n).Valid() {
		return 0, fmt.Errorf("unknown slot %q (use 9-12, 12-14, 14-17, 17-20 or 0-3)", arg)
	}
	return slot.Slot(n), nil
}

func runRequest(args []string, visitor string, virtual bool) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid listing ID: %s", args[0])
	}

	s, err := parseSlotArg(args[2])
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	v, err := a.policy.RequestVisit(visitor, id, args[1], s, virtual)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(v)
	}

	label, err := v.Slot.Label()
	if err != nil {
		return err
	}
	fmt.Printf("Visit requested for %s, slot %s. The landlord will review it.\n", v.Date, label)
	return nil
}
