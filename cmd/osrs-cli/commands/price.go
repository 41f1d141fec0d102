package commands

import (
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"osrs-info/lib/serviceutil"
)

func init() {
	rootCmd.AddCommand(priceCmd)
}

func formatTradeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.ANSIC)
}

var priceCmd = &cobra.Command{
	Use:   "price <item>",
	Short: "Prints the live price of an item, given by id or name.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		decoder := loadDecoder()

		id := resolveItem(cmd.Context(), decoder, strings.Join(args, " "))
		quote, err := decoder.Price(cmd.Context(), id)
		if err != nil {
			serviceutil.Fatal("failed to price the item", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("%s (%d)", quote.Item.Name, quote.Item.ID)
		t.AppendRows([]table.Row{
			{"High", humanInt(quote.Record.High), formatTradeTime(quote.Record.HighTime)},
			{"Low", humanInt(quote.Record.Low), formatTradeTime(quote.Record.LowTime)},
			{"Daily volume", humanInt(quote.Record.Volume), ""},
			{"Buy limit", humanInt(int64(quote.Item.BuyLimit)), ""},
			{"High alch", humanInt(int64(quote.Item.HighAlch)), ""},
		})
		t.SetStyle(table.StyleRounded)
		t.Render()

		if quote.Item.Examine != "" {
			cmd.Println(quote.Item.Examine)
		}
	},
}
