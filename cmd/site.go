package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"status-page/internal/storage"
)

var (
	siteTitle       string
	siteDescription string
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Manage status page title and description",
}

var siteSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the status page title and description",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		info := storage.SiteInfo{Title: siteTitle, Description: siteDescription}
		if err := provider.SetSiteInfo(ctx, info); err != nil {
			fail("Error saving site info: %v", err)
		}
		fmt.Println("Site info saved successfully.")
	},
}

var siteShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the status page title and description",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		info, err := provider.GetSiteInfo(ctx)
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Println("No site info set.")
			return
		}
		if err != nil {
			fail("Error reading site info: %v", err)
		}

		fmt.Printf("Title:       %s\n", info.Title)
		fmt.Printf("Description: %s\n", info.Description)
	},
}

func init() {
	siteSetCmd.Flags().StringVar(&siteTitle, "title", "", "status page title")
	siteSetCmd.Flags().StringVar(&siteDescription, "description", "", "status page description")
	siteSetCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(siteCmd)
	siteCmd.AddCommand(siteSetCmd)
	siteCmd.AddCommand(siteShowCmd)
}
