package hiscores

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// liteBody assembles a full lite CSV response, defaulting every line to
// unranked so tests only spell out the entries they care about.
func liteBody(skills map[string]string, activities map[string]string) string {
	var b strings.Builder
	for _, name := range SkillNames {
		line, ok := skills[name]
		if !ok {
			line = "-1,-1,-1"
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	for _, name := range ActivityNames {
		line, ok := activities[name]
		if !ok {
			line = "-1,-1"
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func TestClassify(t *testing.T) {
	cases := map[string]Bucket{
		"Clue Scrolls (all)":    BucketClues,
		"Clue Scrolls (master)": BucketClues,
		"LMS - Rank":            BucketPvP,
		"PvP Arena - Rank":      BucketPvP,
		"Bounty Hunter - Rogue": BucketPvP,
		"Soul Wars Zeal":        BucketPvP,
		"Rifts closed":          BucketPvP,
		"League Points":         BucketActivities,
		"Deadman Points":        BucketActivities,
		"Colosseum Glory":       BucketActivities,
		"Collections Logged":    BucketActivities,
		"Zulrah":                BucketBosses,
		"Doom of Mokhaiotl":     BucketBosses,
		"K'ril Tsutsaroth":      BucketBosses,
		// anything unknown should land with the bosses
		"Some Future Boss": BucketBosses,
	}
	for name, want := range cases {
		require.Equal(t, want, classify(name), name)
	}
}

func TestDecodeLite(t *testing.T) {
	body := liteBody(
		map[string]string{
			"Overall": "10000,2277,4600000000",
			"Attack":  "51234,99,200000000",
			"Sailing": "823,80,2001000",
		},
		map[string]string{
			"Zulrah":             "4521,3000",
			"Clue Scrolls (all)": "99000,450",
			"LMS - Rank":         "12000,500",
			"League Points":      "333,48000",
		},
	)

	stats, err := decodeLite("gielinor", ModeNormal, body)
	require.NoError(t, err)
	require.Equal(t, "gielinor", stats.Player)
	require.Len(t, stats.Skills, len(SkillNames))

	{
		overall := stats.Overall()
		require.Equal(t, 10000, overall.Rank)
		require.Equal(t, 2277, overall.Level)
		require.Equal(t, int64(4600000000), overall.Experience)
		require.False(t, overall.Unranked)
	}
	{
		sailing, ok := stats.Skill("Sailing")
		require.True(t, ok)
		require.Equal(t, 80, sailing.Level)
	}
	{
		// unranked skills report zeros, never the -1 sentinel
		agility, ok := stats.Skill("agility")
		require.True(t, ok)
		require.True(t, agility.Unranked)
		require.Equal(t, 0, agility.Rank)
		require.Equal(t, 0, agility.Level)
		require.Equal(t, int64(0), agility.Experience)
	}
	{
		zulrah, ok := stats.Boss("Zulrah")
		require.True(t, ok)
		require.Equal(t, 3000, zulrah.Score)
		require.Equal(t, 4521, zulrah.Rank)
	}
	{
		clue, ok := stats.Activity("Clue Scrolls (all)")
		require.True(t, ok)
		require.Equal(t, 450, clue.Score)
		require.Len(t, stats.Clues, 7)
	}

	// every section holds exactly its slice of the activity table
	require.Len(t, stats.PvP, 8)
	require.Len(t, stats.Activities, 4)
	require.Len(t, stats.Bosses, len(ActivityNames)-7-8-4)

	sectionOf := func(name string) []ActivityEntry {
		switch classify(name) {
		case BucketClues:
			return stats.Clues
		case BucketPvP:
			return stats.PvP
		case BucketActivities:
			return stats.Activities
		default:
			return stats.Bosses
		}
	}
	for _, name := range []string{"LMS - Rank", "League Points", "Zulrah"} {
		found := false
		for _, entry := range sectionOf(name) {
			if entry.Name == name {
				found = true
			}
		}
		require.True(t, found, name)
	}
}

func TestDecodeLiteSurplusLines(t *testing.T) {
	body := liteBody(nil, nil) + "1,1\n2,2\n"

	stats, err := decodeLite("gielinor", ModeNormal, body)
	require.NoError(t, err)
	total := len(stats.Clues) + len(stats.PvP) + len(stats.Activities) + len(stats.Bosses)
	require.Equal(t, len(ActivityNames), total)
}

func TestDecodeLiteRejectsBadBodies(t *testing.T) {
	{
		_, err := decodeLite("gielinor", ModeNormal, "1,2,3\n4,5,6\n")
		require.ErrorIs(t, err, ErrService)
	}
	{
		// a skill line with activity shape
		body := liteBody(map[string]string{"Attack": "51234,99"}, nil)
		_, err := decodeLite("gielinor", ModeNormal, body)
		require.ErrorIs(t, err, ErrService)
	}
	{
		body := liteBody(map[string]string{"Attack": "abc,99,100"}, nil)
		_, err := decodeLite("gielinor", ModeNormal, body)
		require.ErrorIs(t, err, ErrService)
	}
}

func TestParseMode(t *testing.T) {
	{
		mode, err := ParseMode("uim")
		require.NoError(t, err)
		require.Equal(t, ModeUltimate, mode)
	}
	{
		mode, err := ParseMode("")
		require.NoError(t, err)
		require.Equal(t, ModeNormal, mode)
	}
	{
		_, err := ParseMode("group")
		require.Error(t, err)
	}
	// most specific mode first
	require.Equal(t, ModeSeasonal, Modes()[0])
	require.Equal(t, ModeNormal, Modes()[len(Modes())-1])
}
