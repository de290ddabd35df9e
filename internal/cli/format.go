package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mgallina/casaviva/internal/listing"
	"github.com/mgallina/casaviva/internal/slot"
	"github.com/mgallina/casaviva/internal/visit"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printListingSummary prints a single decorated listing in text format.
func printListingSummary(v *listing.View, imageNames []string) {
	fmt.Printf("Listing #%d\n", v.ID)
	fmt.Printf("  Title:     %s\n", v.Title)
	fmt.Printf("  Address:   %s\n", v.Address)
	fmt.Printf("  Type:      %s\n", v.Type)
	fmt.Printf("  Rooms:     %s\n", v.Rooms)
	fmt.Printf("  Furniture: %s\n", v.Furniture)
	fmt.Printf("  Rent:      %s €\n", v.Rent)
	fmt.Printf("  Landlord:  %s (%s)\n", v.LandlordName, v.Landlord)
	if v.Description != "" {
		fmt.Printf("  About:     %s\n", v.Description)
	}
	if len(imageNames) > 0 {
		fmt.Printf("  Images (%d):\n", len(imageNames))
		for _, n := range imageNames {
			fmt.Printf("    %s\n", n)
		}
	}
}

// printListingTable prints decorated listings as a formatted table.
func printListingTable(views []*listing.View) error {
	if len(views) == 0 {
		fmt.Println("No listings found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tTYPE\tROOMS\tFURNITURE\tRENT\tLANDLORD"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t----\t-----\t---------\t----\t--------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, v := range views {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Title, v.Type, v.Rooms, v.Furniture, v.Rent, v.LandlordName,
		); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	return w.Flush()
}

// printRawListingTable prints a landlord's own listings, including
// the availability flag.
func printRawListingTable(listings []*listing.Listing) error {
	if len(listings) == 0 {
		fmt.Println("No listings found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tTYPE\tROOMS\tRENT\tAVAILABLE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t----\t-----\t----\t---------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, l := range listings {
		avail := "no"
		if l.Available {
			avail = "yes"
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			l.ID, l.Title, l.Type, l.Rooms, listing.RentLabel(l.Rent), avail,
		); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	return w.Flush()
}

// printCalendar prints the weekly availability grid, one row per day.
func printCalendar(week []slot.Day) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "DATE\t9-12\t12-14\t14-17\t17-20"); err != nil {
		return fmt.Errorf("writing calendar header: %w", err)
	}

	for _, day := range week {
		row := day.Date
		for _, cell := range day.Slots {
			mark := "free"
			if !cell.Available {
				mark = "taken"
			}
			row += "\t" + mark
		}
		if _, err := fmt.Fprintln(w, row); err != nil {
			return fmt.Errorf("writing calendar row: %w", err)
		}
	}

	return w.Flush()
}

// printVisitTable prints decorated visits as a formatted table.
func printVisitTable(views []*visit.View) error {
	if len(views) == 0 {
		fmt.Println("No visits found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "LISTING\tTITLE\tVISITOR\tDATE\tSLOT\tMODE\tSTATUS\tREASON"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	for _, v := range views {
		mode := "in person"
		if v.Virtual {
			mode = "virtual"
		}
		if _, err := fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ListingID, v.ListingTitle, v.Visitor, v.Date, v.SlotLabel, mode, v.Status, v.RefusalReason,
		); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	return w.Flush()
}
