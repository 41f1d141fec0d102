package commands

import (
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"osrs-info/lib/hiscores"
	"osrs-info/lib/serviceutil"
)

var statsMode *string
var statsJson *bool

func init() {
	statsMode = statsCmd.Flags().String("mode", "", "Leaderboard to query: normal, ironman, hcim, uim, deadman or seasonal.")
	statsJson = statsCmd.Flags().Bool("json", false, "Use the JSON endpoint instead of the CSV one.")
	rootCmd.AddCommand(statsCmd)
}

func formatRank(rank int, unranked bool) string {
	if unranked {
		return "-"
	}
	return humanInt(int64(rank))
}

var statsCmd = &cobra.Command{
	Use:   "stats <player>",
	Short: "Prints a player's skills and activity ranks.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mode := modeFlag(*statsMode)

		decoder := loadDecoder()
		var stats hiscores.PlayerStats
		var err error
		if *statsJson {
			stats, err = decoder.GetStatsJSON(cmd.Context(), args[0], mode)
		} else {
			stats, err = decoder.GetStats(cmd.Context(), args[0], mode)
		}
		if err != nil {
			serviceutil.Fatal("failed to fetch player stats", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("%s (%s)", stats.Player, stats.Mode)
		t.AppendHeader(table.Row{"Skill", "Rank", "Level", "XP"})
		for _, skill := range stats.Skills {
			t.AppendRow(table.Row{
				skill.Name,
				formatRank(skill.Rank, skill.Unranked),
				skill.Level,
				humanInt(skill.Experience),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		sections := []struct {
			name    string
			entries []hiscores.ActivityEntry
		}{
			{"Clues", stats.Clues},
			{"PvP", stats.PvP},
			{"Activities", stats.Activities},
			{"Bosses", stats.Bosses},
		}
		for _, section := range sections {
			ranked := []hiscores.ActivityEntry{}
			for _, entry := range section.entries {
				if !entry.Unranked {
					ranked = append(ranked, entry)
				}
			}
			if len(ranked) == 0 {
				continue
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetTitle(section.name)
			t.AppendHeader(table.Row{"Activity", "Rank", "Score"})
			for _, entry := range ranked {
				t.AppendRow(table.Row{
					entry.Name,
					formatRank(entry.Rank, entry.Unranked),
					humanInt(int64(entry.Score)),
				})
			}
			t.SetStyle(table.StyleRounded)
			t.Render()
		}
	},
}

// humanInt renders 4600000000 as 4,600,000,000.
func humanInt(v int64) string {
	digits := strconv.FormatInt(v, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}

	var b strings.Builder
	for i, r := range digits {
		left := len(digits) - i
		if i > 0 && left%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
