package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgallina/casaviva/internal/listing"
)

func newAddCmd() *cobra.Command {
	var (
		landlord    string
		address     string
		title       string
		description string
		rooms       int
		houseType   string
		furnished   bool
		rent        float64
		unavailable bool
		imageFiles  []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish a new listing",
		Long: `Publish a new rental listing with up to 5 photos.

House types: detached, flat, loft, villa

Example:
  casaviva add --landlord carla --title "Bright flat" --address "Via Roma 1, Torino" \
    --rooms 3 --type flat --furnished --rent 850.50 --image front.jpg --image kitchen.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := &listing.Listing{
				Address:     address,
				Title:       title,
				Description: description,
				Rooms:       rooms,
				Type:        listing.HouseType(houseType),
				Furnished:   furnished,
				Rent:        rent,
				Available:   !unavailable,
				Landlord:    landlord,
			}
			return runAdd(l, imageFiles)
		},
	}

	cmd.Flags().StringVar(&landlord, "landlord", "", "landlord username (required)")
	cmd.Flags().StringVar(&address, "address", "", "property address (required)")
	cmd.Flags().StringVar(&title, "title", "", "listing title (required)")
	cmd.Flags().StringVar(&description, "description", "", "free-text description")
	cmd.Flags().IntVar(&rooms, "rooms", 1, "room count")
	cmd.Flags().StringVar(&houseType, "type", "", "house type (required)")
	cmd.Flags().BoolVar(&furnished, "furnished", false, "the property is furnished")
	cmd.Flags().Float64Var(&rent, "rent", 0, "monthly rent")
	cmd.Flags().BoolVar(&unavailable, "hidden", false, "create the listing unpublished")
	cmd.Flags().StringArrayVar(&imageFiles, "image", nil, "photo file to attach (repeatable, max 5)")
	_ = cmd.MarkFlagRequired("landlord")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runAdd(l *listing.Listing, imageFiles []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	isLandlord, err := a.people.IsLandlord(l.Landlord)
	if err != nil {
		return err
	}
	if !isLandlord {
		return fmt.Errorf("only landlord accounts can publish listings")
	}

	created, err := a.ads.Create(l, imageFiles)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(created)
	}

	fmt.Printf("Listing #%d published.\n", created.ID)
	return nil
}
