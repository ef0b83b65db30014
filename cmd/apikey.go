package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"status-page/internal/storage"
	"status-page/internal/utils"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage API keys",
	Long:  `Create, list and delete the API keys accepted in the x-api-key header of write requests.`,
}

var apikeyCreateCmd = &cobra.Command{
	Use:   "create [key]",
	Short: "Create an API key, generating a random one when none is given",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		var key string
		if len(args) > 0 {
			key = args[0]
		} else {
			var err error
			if key, err = utils.GenerateAPIKey(); err != nil {
				fail("Error generating API key: %v", err)
			}
		}
		if key == "" {
			fail("API key must not be empty")
		}

		if _, err := provider.CreateAPIKey(ctx, storage.APIKey{Key: key}); err != nil {
			if errors.Is(err, storage.ErrUniqueViolation) {
				fail("API key already exists")
			}
			fail("Error creating API key: %v", err)
		}

		fmt.Println(key)
	},
}

var apikeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API keys",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		keys, err := provider.ListAPIKeys(ctx)
		if err != nil {
			fail("Error listing API keys: %v", err)
		}

		if len(keys) == 0 {
			fmt.Println("No API keys found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKEY\tCREATED AT")
		for _, key := range keys {
			fmt.Fprintf(w, "%d\t%s\t%s\n", key.ID, key.Key, key.CreatedAt.Format(time.RFC3339))
		}
		w.Flush()
	},
}

var apikeyDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete an API key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := provider.DeleteAPIKey(ctx, args[0]); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fail("API key not found")
			}
			fail("Error deleting API key: %v", err)
		}

		fmt.Println("API key deleted successfully.")
	},
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.AddCommand(apikeyCreateCmd)
	apikeyCmd.AddCommand(apikeyListCmd)
	apikeyCmd.AddCommand(apikeyDeleteCmd)
}
