package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"osrs-info/lib/hiscores"
	"osrs-info/lib/serviceutil"
)

var topMode *string
var topCategory *int
var topTable *int
var topPage *int

func init() {
	topMode = topCmd.Flags().String("mode", "", "Leaderboard to query.")
	topCategory = topCmd.Flags().Int("category", 0, "Table family: 0 for skills, 1 for activities.")
	topTable = topCmd.Flags().Int("table", 0, "Table index within the family, 0 being Overall.")
	topPage = topCmd.Flags().Int("page", 1, "Page of 25 rows to fetch.")
	rootCmd.AddCommand(topCmd)
}

var topCmd = &cobra.Command{
	Use:   "top [--category <n>] [--table <n>] [--page <n>]",
	Short: "Prints a page of a leaderboard table.",
	Run: func(cmd *cobra.Command, args []string) {
		decoder := loadDecoder()
		entries, err := decoder.Rankings(cmd.Context(), hiscores.RankingsRequest{
			Mode:     modeFlag(*topMode),
			Category: *topCategory,
			Table:    *topTable,
			Page:     *topPage,
		})
		if err != nil {
			serviceutil.Fatal("failed to fetch the leaderboard page", err)
		}
		if len(entries) == 0 {
			cmd.Println("the requested page is empty")
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		if *topCategory == 0 {
			t.AppendHeader(table.Row{"Rank", "Player", "Level", "XP"})
		} else {
			t.AppendHeader(table.Row{"Rank", "Player", "Score"})
		}
		for _, entry := range entries {
			row := table.Row{humanInt(int64(entry.Rank)), entry.Player}
			for _, value := range entry.Values {
				row = append(row, humanInt(value))
			}
			t.AppendRow(row)
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
