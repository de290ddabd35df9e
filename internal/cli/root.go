// Package cli defines the cobra command tree for casaviva.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgallina/casaviva/internal/booking"
	"github.com/mgallina/casaviva/internal/db"
	"github.com/mgallina/casaviva/internal/images"
	"github.com/mgallina/casaviva/internal/listing"
	"github.com/mgallina/casaviva/internal/logging"
	"github.com/mgallina/casaviva/internal/person"
	"github.com/mgallina/casaviva/internal/visit"
)

var (
	flagFormat string
	flagDB     string
	flagImages string
	flagDev    bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "casaviva",
		Short:         "Publish rental listings and schedule viewings",
		Long:          "A marketplace core for rental listings: landlords publish ads with photos, tenants request viewings in a weekly slot grid, and landlords accept or reject them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(flagDev)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.casaviva/casaviva.db)")
	root.PersistentFlags().StringVar(&flagImages, "images", "", "image blob directory (default: ~/.casaviva/images)")
	root.PersistentFlags().BoolVar(&flagDev, "dev", false, "verbose human-readable logging")

	root.AddCommand(
		newSignupCmd(),
		newAddCmd(),
		newEditCmd(),
		newListCmd(),
		newShowCmd(),
		newMineCmd(),
		newCalendarCmd(),
		newRequestCmd(),
		newReviewCmd(),
		newVisitsCmd(),
		newRequestsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag, env var, or
// configured default path.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		path = getDBPath()
	}
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// app bundles the wired repositories and services behind one database
// handle for a single command invocation.
type app struct {
	db       *sql.DB
	people   *person.Store
	listings *listing.Repository
	ads      *listing.Service
	visits   *visit.Repository
	policy   *booking.Policy
}

// newApp opens the database and wires every layer. The caller must
// close it.
func newApp() (*app, error) {
	database, err := openDB()
	if err != nil {
		return nil, err
	}

	blobs, err := images.NewStore(imagesDir())
	if err != nil {
		closeDB(database)
		return nil, err
	}

	listings := listing.NewRepository(database)
	visits := visit.NewRepository(database)

	return &app{
		db:       database,
		people:   person.NewStore(database),
		listings: listings,
		ads:      listing.NewService(listings, blobs),
		visits:   visits,
		policy:   booking.NewPolicy(listings, visits, nil),
	}, nil
}

func (a *app) close() {
	closeDB(a.db)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
