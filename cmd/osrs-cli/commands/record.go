package commands

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"osrs-info/lib/pricestore"
	"osrs-info/lib/serviceutil"
	"osrs-info/lib/timezone"
)

var recordDb *string
var recordAll *bool

func init() {
	recordDb = recordCmd.Flags().String("db", "prices.db", "The database to record snapshots into.")
	recordAll = recordCmd.Flags().Bool("all", false, "Record every tradeable item instead of the given ones.")
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record [--all | <item>...]",
	Short: "Records today's prices into a local database, one snapshot per item per day.",
	Run: func(cmd *cobra.Command, args []string) {
		decoder := loadDecoder()
		ctx := cmd.Context()

		ids := []int{}
		if *recordAll {
			cat, err := decoder.Items(ctx)
			if err != nil {
				serviceutil.Fatal("failed to load the item catalog", err)
			}
			for _, item := range cat.Tradeable() {
				ids = append(ids, item.ID)
			}
		} else {
			for _, arg := range args {
				ids = append(ids, resolveItem(ctx, decoder, arg))
			}
		}
		if len(ids) == 0 {
			serviceutil.Fatal("nothing to record", fmt.Errorf("give item arguments or --all"))
		}

		batch, err := decoder.GetPrices(ctx, ids...)
		if err != nil {
			serviceutil.Fatal("failed to fetch prices", err)
		}
		if len(batch.Skipped) > 0 {
			slog.Warn("some items could not be priced", "count", len(batch.Skipped))
		}

		database := openStore(cmd, *recordDb)
		defer database.Close()

		items := []pricestore.ItemSnapshot{}
		for id, record := range batch.Records {
			items = append(items, pricestore.ItemSnapshot{
				ItemID: id,
				High:   record.High,
				Low:    record.Low,
				Volume: record.Volume,
			})
		}
		sort.Slice(items, func(a, b int) bool {
			return items[a].ItemID < items[b].ItemID
		})

		err = pricestore.NewStore(database).Push(ctx, pricestore.PushRequest{
			Time:  timezone.Now(),
			Items: items,
		})
		if err != nil {
			serviceutil.Fatal("failed to record snapshots", err)
		}
		cmd.Printf("recorded %d items\n", len(items))
	},
}
