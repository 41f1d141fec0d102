package hiscores

import (
	"strings"

	"osrs-info/lib/textutil"
)

// Bucket groups activities into the sections a stats page would show.
type Bucket int

const (
	BucketClues Bucket = iota
	BucketPvP
	BucketActivities
	BucketBosses
)

func (b Bucket) String() string {
	switch b {
	case BucketClues:
		return "clues"
	case BucketPvP:
		return "pvp"
	case BucketActivities:
		return "activities"
	default:
		return "bosses"
	}
}

// pvpKeys are the player-versus-player style minigames.
var pvpKeys = map[string]bool{
	"bounty_hunter_hunter":        true,
	"bounty_hunter_rogue":         true,
	"bounty_hunter_legacy_hunter": true,
	"bounty_hunter_legacy_rogue":  true,
	"last_man_standing":           true,
	"lms_rank":                    true,
	"pvp_arena_rank":              true,
	"pvp_arena":                   true,
	"soul_wars_zeal":              true,
	"rifts_closed":                true,
}

// miscActivityKeys are the non-boss, non-pvp entries that do not follow
// the "_points"/"_rank" naming convention.
var miscActivityKeys = map[string]bool{
	"grid_points":        true,
	"league_points":      true,
	"deadman_points":     true,
	"seasonal_points":    true,
	"tournament_points":  true,
	"collection_log":     true,
	"collections_logged": true,
	"colosseum_glory":    true,
}

// classify decides which stats section an activity belongs to, keyed on
// its normalized name. Anything unrecognized is assumed to be a boss,
// which keeps newly released bosses in the right section without a
// table update.
func classify(name string) Bucket {
	key := textutil.NormalizeKey(name)
	switch {
	case strings.HasPrefix(key, "clue_scrolls_"):
		return BucketClues
	case pvpKeys[key]:
		return BucketPvP
	case miscActivityKeys[key],
		strings.HasSuffix(key, "_points"),
		strings.HasSuffix(key, "_rank"):
		return BucketActivities
	}
	return BucketBosses
}
