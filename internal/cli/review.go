package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mgallina/casaviva/internal/booking"
)

func newReviewCmd() *cobra.Command {
	var (
		landlord string
		reason   string
	)

	cmd := &cobra.Command{
		Use:   "review <accept|reject> <listing-id> <visitor> <date> <slot>",
		Short: "Accept or reject a pending visit",
		Long: `Decide on a pending visit request for one of your listings.
Rejecting requires a reason.

Examples:
  casaviva review accept 3 ugo 2026-09-12 9-12 --landlord carla
  casaviva review reject 3 ugo 2026-09-12 9-12 --landlord carla --reason "slot no longer works"`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(args, landlord, reason)
		},
	}

	cmd.Flags().StringVar(&landlord, "landlord", "", "landlord username (required)")
	cmd.Flags().StringVar(&reason, "reason", "", "refusal reason (required when rejecting)")
	_ = cmd.MarkFlagRequired("landlord")

	return cmd
}

func runReview(args []string, landlord, reason string) error {
	decision := booking.Decision(args[0])
	if decision != booking.Approve && decision != booking.Refuse {
		return fmt.Errorf("unknown decision %q (use accept or reject)", args[0])
	}

	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid listing ID: %s", args[1])
	}

	s, err := parseSlotArg(args[4])
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ok, err := a.policy.Review(landlord, decision, args[2], id, args[3], s, reason)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no matching pending visit found")
	}

	if isJSON() {
		return printJSON(map[string]interface{}{"decision": decision, "ok": true})
	}

	fmt.Printf("Visit %sed.\n", decision)
	return nil
}
