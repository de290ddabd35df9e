package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var (
		dbPath    string
		imagesDir string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or set CLI defaults",
		Long: `Show the saved CLI configuration, or set default paths so the
--db and --images flags can be omitted.

Examples:
  casaviva config
  casaviva config --db ~/rentals/casaviva.db --images ~/rentals/images`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd.Flags().Changed("db"), dbPath, cmd.Flags().Changed("images"), imagesDir)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "default SQLite database path")
	cmd.Flags().StringVar(&imagesDir, "images", "", "default image blob directory")

	return cmd
}

func runConfig(setDB bool, dbPath string, setImages bool, imagesDir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if setDB || setImages {
		if setDB {
			cfg.DBPath = dbPath
		}
		if setImages {
			cfg.ImagesDir = imagesDir
		}
		if err := saveConfig(cfg); err != nil {
			return err
		}
	}

	if isJSON() {
		return printJSON(cfg)
	}

	fmt.Printf("db_path:    %s\n", orUnset(cfg.DBPath))
	fmt.Printf("images_dir: %s\n", orUnset(cfg.ImagesDir))
	return nil
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}
