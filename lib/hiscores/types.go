package hiscores

import "osrs-info/lib/textutil"

// SkillEntry is one skill line of a player's stats. When Unranked is
// set the player is not on the leaderboard for this skill and every
// numeric field is zero, never negative.
type SkillEntry struct {
	Name       string
	Rank       int
	Level      int
	Experience int64
	Unranked   bool
}

// ActivityEntry is one activity line: a clue tier, minigame or boss.
// Score is kills for bosses and completions or points elsewhere. The
// same zero-when-unranked rule as SkillEntry applies.
type ActivityEntry struct {
	Name     string
	Rank     int
	Score    int
	Unranked bool
}

// PlayerStats is a decoded hiscore lookup, with activities already
// sorted into their stats-page sections.
type PlayerStats struct {
	Player string
	Mode   Mode

	Skills     []SkillEntry
	Clues      []ActivityEntry
	PvP        []ActivityEntry
	Activities []ActivityEntry
	Bosses     []ActivityEntry
}

// Overall returns the total level line.
func (p PlayerStats) Overall() SkillEntry {
	if len(p.Skills) == 0 {
		return SkillEntry{Name: "Overall", Unranked: true}
	}
	return p.Skills[0]
}

// Skill finds a skill by name, ignoring case and punctuation.
func (p PlayerStats) Skill(name string) (SkillEntry, bool) {
	key := textutil.NormalizeKey(name)
	for _, entry := range p.Skills {
		if textutil.NormalizeKey(entry.Name) == key {
			return entry, true
		}
	}
	return SkillEntry{}, false
}

// Activity finds an activity by name across all four sections.
func (p PlayerStats) Activity(name string) (ActivityEntry, bool) {
	key := textutil.NormalizeKey(name)
	for _, section := range [][]ActivityEntry{p.Clues, p.PvP, p.Activities, p.Bosses} {
		for _, entry := range section {
			if textutil.NormalizeKey(entry.Name) == key {
				return entry, true
			}
		}
	}
	return ActivityEntry{}, false
}

// Boss finds a boss entry by name.
func (p PlayerStats) Boss(name string) (ActivityEntry, bool) {
	key := textutil.NormalizeKey(name)
	for _, entry := range p.Bosses {
		if textutil.NormalizeKey(entry.Name) == key {
			return entry, true
		}
	}
	return ActivityEntry{}, false
}

func (p *PlayerStats) addActivity(entry ActivityEntry) {
	switch classify(entry.Name) {
	case BucketClues:
		p.Clues = append(p.Clues, entry)
	case BucketPvP:
		p.PvP = append(p.PvP, entry)
	case BucketActivities:
		p.Activities = append(p.Activities, entry)
	default:
		p.Bosses = append(p.Bosses, entry)
	}
}
