package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateTarget int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the database schema",
	Long:  `Migrate the database schema to the target version. The default target -1 is the latest version, 0 drops every table.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := provider.MigrateTo(ctx, migrateTarget); err != nil {
			fail("Error migrating database: %v", err)
		}

		version, err := provider.GetSchemaVersion(ctx)
		if err != nil {
			fail("Error reading schema version: %v", err)
		}
		fmt.Printf("Schema version: %d\n", version)
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateTarget, "target", -1, "target schema version")
	rootCmd.AddCommand(migrateCmd)
}
