package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/invoicer/internal/config"
	"github.com/example/invoicer/internal/db"
	"github.com/example/invoicer/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the invoicer home directory",
		Long: `Create config.yaml and the invoice database in the invoicer home
directory. A new database gets the default companies and, unless --no-seed
is given, the sample invoice history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			noSeed, _ := cmd.Flags().GetBool("no-seed")

			dir, err := resolveHome()
			if err != nil {
				return err
			}

			if config.Exists(dir) {
				fmt.Printf("Config already present in %s\n", dir)
			} else {
				cfg := config.Defaults(dir)
				cfg.Seed = !noSeed
				if err := config.SaveConfig(dir, cfg); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s/%s\n", dir, config.FileName)
			}

			cfg, err := config.LoadConfig(dir)
			if err != nil {
				return err
			}

			database, fresh, err := db.Open(ctx, cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			if !fresh {
				fmt.Printf("Database already initialized at %s\n", cfg.DBPath)
				return nil
			}

			if err := wire.Seed(ctx, database, cfg.Seed && !noSeed); err != nil {
				return err
			}
			fmt.Printf("✓ Database initialized at %s\n", cfg.DBPath)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  invoicer company list")
			fmt.Println("  invoicer next CHN")

			return nil
		},
	}
	cmd.Flags().Bool("no-seed", false, "Do not load the sample invoice history")
	return cmd
}
