package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignupCmd() *cobra.Command {
	var (
		name     string
		landlord bool
		password string
	)

	cmd := &cobra.Command{
		Use:   "signup <username> <email>",
		Short: "Register a new account",
		Long: `Register a new account. Landlord accounts can publish listings and
review visit requests; everyone else can only request viewings.

The password value is stored as given: hash it before passing it in.

Examples:
  casaviva signup carla carla@example.com --name "Carla Bianchi" --landlord --password <hash>
  casaviva signup ugo ugo@example.com --password <hash>`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(args[0], args[1], name, password, landlord)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().BoolVar(&landlord, "landlord", false, "register as a landlord")
	cmd.Flags().StringVar(&password, "password", "", "pre-hashed password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runSignup(username, email, name, password string, landlord bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.people.Add(username, email, name, password, landlord)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(p)
	}

	role := "tenant"
	if p.Landlord {
		role = "landlord"
	}
	fmt.Printf("Welcome, %s! Registered as a %s.\n", p.Username, role)
	return nil
}
