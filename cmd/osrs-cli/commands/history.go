package commands

import (
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"osrs-info/lib/pricestore"
	"osrs-info/lib/serviceutil"
	"osrs-info/lib/wikiprices"
)

var historyStep *string
var historyStored *bool
var historyDb *string

func init() {
	historyStep = historyCmd.Flags().String("step", "24h", "Aggregation window: 5m, 1h, 6h or 24h.")
	historyStored = historyCmd.Flags().Bool("stored", false, "Read locally recorded snapshots instead of the live series.")
	historyDb = historyCmd.Flags().String("db", "prices.db", "The database recorded snapshots live in.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <item> [--step <window>] [--stored]",
	Short: "Prints the price history of an item.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		decoder := loadDecoder()
		ctx := cmd.Context()
		id := resolveItem(ctx, decoder, strings.Join(args, " "))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)

		if *historyStored {
			database := openStore(cmd, *historyDb)
			defer database.Close()

			snapshots, err := pricestore.NewStore(database).Pull(ctx, id)
			if err != nil {
				serviceutil.Fatal("failed to read recorded snapshots", err)
			}
			if len(snapshots) == 0 {
				cmd.Println("no snapshots recorded for this item")
				return
			}

			t.AppendHeader(table.Row{"Day", "High", "Low", "Volume"})
			for _, snapshot := range snapshots {
				t.AppendRow(table.Row{
					snapshot.Time.Format(time.DateOnly),
					humanInt(snapshot.High),
					humanInt(snapshot.Low),
					humanInt(snapshot.Volume),
				})
			}
		} else {
			points, err := decoder.History(ctx, id, wikiprices.Timestep(*historyStep))
			if err != nil {
				serviceutil.Fatal("failed to fetch the price series", err)
			}
			if len(points) == 0 {
				cmd.Println("the series is empty")
				return
			}

			t.AppendHeader(table.Row{"Time", "Avg high", "Avg low", "Trades"})
			for _, point := range points {
				t.AppendRow(table.Row{
					time.Unix(point.Timestamp, 0).UTC().Format(time.RFC3339),
					humanInt(point.AvgHighPrice),
					humanInt(point.AvgLowPrice),
					humanInt(point.HighPriceVolume + point.LowPriceVolume),
				})
			}
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
