package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"osrs-info/lib/catalog"
	"osrs-info/lib/serviceutil"
)

var itemsAll *bool
var itemsRefresh *bool
var itemsLimit *int

func init() {
	itemsAll = itemsCmd.Flags().Bool("all", false, "Include untradeable and junk-category items.")
	itemsRefresh = itemsCmd.Flags().Bool("refresh", false, "Reload the catalog from upstream first.")
	itemsLimit = itemsCmd.Flags().Int("limit", 50, "Cap the rows printed. 0 prints everything.")
	rootCmd.AddCommand(itemsCmd)
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Lists the item catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		decoder := loadDecoder()

		var cat *catalog.Catalog
		var err error
		if *itemsRefresh {
			cat, err = decoder.Refresh(cmd.Context())
		} else {
			cat, err = decoder.Items(cmd.Context())
		}
		if err != nil {
			serviceutil.Fatal("failed to load the item catalog", err)
		}

		items := cat.Tradeable()
		if *itemsAll {
			items = cat.All()
		}
		fmt.Printf("%d of %d catalog items\n", len(items), cat.Len())

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Buy limit", "Members", "Tradeable"})
		for i, item := range items {
			if *itemsLimit > 0 && i == *itemsLimit {
				t.AppendFooter(table.Row{"", fmt.Sprintf("%d more, raise --limit", len(items)-i)})
				break
			}
			t.AppendRow(table.Row{item.ID, item.Name, item.BuyLimit, item.Members, item.Tradeable})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
