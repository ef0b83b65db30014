package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"status-page/internal/status"
	"status-page/internal/statuspage"
)

// Days of history shown in the table output.
const tableHistoryDays = 14

var (
	outputFormat string
	updateDate   string
)

var componentCmd = &cobra.Command{
	Use:   "component",
	Short: "Manage components and their status",
	Long:  `Add components, report their daily status and list their status history.`,
}

var componentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List components with their status history",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		list, err := newService().List(ctx)
		if err != nil {
			fail("Error listing components: %v", err)
		}

		if err := writeComponents(os.Stdout, list, outputFormat); err != nil {
			fail("Error writing output: %v", err)
		}
	},
}

var componentAddCmd = &cobra.Command{
	Use:   "add <name> <website>",
	Short: "Add a component",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if _, err := newService().AddComponent(ctx, args[0], args[1]); err != nil {
			fail("Error adding component: %v", err)
		}
		fmt.Printf("Component '%s' added successfully.\n", args[0])
	},
}

var componentUpdateCmd = &cobra.Command{
	Use:   "update <name> <working|outage>",
	Short: "Report a component status, for today unless --date is given",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := newService()

		date := updateDate
		if date == "" {
			date = status.FormatDate(svc.Window().End)
		}

		if err := svc.UpdateStatus(ctx, args[0], args[1], date); err != nil {
			fail("Error updating status: %v", err)
		}
		fmt.Printf("Status of '%s' on %s set to %s.\n", args[0], date, args[1])
	},
}

// colorSymbols render one day of history in table output.
var colorSymbols = map[status.Color]string{
	status.Gray:   ".",
	status.Green:  "+",
	status.Red:    "x",
	status.Orange: "!",
}

func historySummary(history []status.Color) string {
	if len(history) > tableHistoryDays {
		history = history[len(history)-tableHistoryDays:]
	}
	var b strings.Builder
	for _, c := range history {
		b.WriteString(colorSymbols[c])
	}
	return b.String()
}

func writeComponents(out io.Writer, list []statuspage.ComponentHistory, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)

	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(list)

	case "table", "":
		if len(list) == 0 {
			fmt.Fprintln(out, "No components found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "NAME\tWEBSITE\tLAST %d DAYS\n", tableHistoryDays)
		for _, c := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Website, historySummary(c.StatusHistory))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out, "\n. no data  + working  x outage  ! both")
		return nil

	default:
		return fmt.Errorf("unknown output format %q, expected table, json or yaml", format)
	}
}

func init() {
	componentListCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json or yaml")
	componentUpdateCmd.Flags().StringVar(&updateDate, "date", "", "day of the report, YYYY-MM-DD (default today, UTC)")

	rootCmd.AddCommand(componentCmd)
	componentCmd.AddCommand(componentListCmd)
	componentCmd.AddCommand(componentAddCmd)
	componentCmd.AddCommand(componentUpdateCmd)
}
