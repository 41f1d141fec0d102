package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"osrs-info/lib/serviceutil"
)

var searchExact *bool

func init() {
	searchExact = searchCmd.Flags().Bool("exact", false, "Disable the fuzzy fallback for misspelled queries.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Finds tradeable items by name.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		decoder := loadDecoder()

		query := strings.Join(args, " ")
		results, err := decoder.Search(cmd.Context(), query, !*searchExact)
		if err != nil {
			serviceutil.Fatal("search failed", err)
		}
		if len(results) == 0 {
			fmt.Printf("no items match %q\n", query)
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Buy limit", "Members", "Match"})
		for _, result := range results {
			t.AppendRow(table.Row{
				result.Item.ID,
				result.Item.Name,
				result.Item.BuyLimit,
				result.Item.Members,
				fmt.Sprintf("%.2f", result.Score),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
