package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"status-page/internal/utils"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Annotations: map[string]string{skipInitAnnotation: ""},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(utils.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
