package hiscores

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// newSkillEntry normalizes one skill line. A -1 rank means the player
// is not on this leaderboard; the entry is flagged instead of carrying
// the sentinel through, and no field is ever negative.
func newSkillEntry(name string, rank, level int, xp int64) SkillEntry {
	entry := SkillEntry{Name: name}
	if rank < 0 {
		entry.Unranked = true
	} else {
		entry.Rank = rank
	}
	if level > 0 {
		entry.Level = level
	}
	if xp > 0 {
		entry.Experience = xp
	}
	return entry
}

func newActivityEntry(name string, rank, score int) ActivityEntry {
	entry := ActivityEntry{Name: name}
	if rank < 0 {
		entry.Unranked = true
	} else {
		entry.Rank = rank
	}
	if score > 0 {
		entry.Score = score
	}
	return entry
}

// decodeLite parses the positional CSV body of index_lite.ws. Each
// skill line is "rank,level,xp" and each activity line "rank,score",
// in the exact order of SkillNames and ActivityNames. Responses missing
// skill lines are rejected; unrecognized trailing activity lines are
// skipped so a new upstream boss degrades to a warning rather than an
// error.
func decodeLite(player string, mode Mode, body string) (PlayerStats, error) {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) < len(SkillNames) {
		return PlayerStats{}, fmt.Errorf(
			"%w: lite response has %d lines, want at least %d",
			ErrService, len(lines), len(SkillNames),
		)
	}

	stats := PlayerStats{Player: player, Mode: mode}

	for i, name := range SkillNames {
		fields := strings.Split(strings.TrimSpace(lines[i]), ",")
		if len(fields) != 3 {
			return PlayerStats{}, fmt.Errorf(
				"%w: skill line %d (%s) has %d fields, want rank,level,xp",
				ErrService, i, name, len(fields),
			)
		}
		rank, err := strconv.Atoi(fields[0])
		if err != nil {
			return PlayerStats{}, fmt.Errorf("%w: skill line %d (%s): bad rank %q", ErrService, i, name, fields[0])
		}
		level, err := strconv.Atoi(fields[1])
		if err != nil {
			return PlayerStats{}, fmt.Errorf("%w: skill line %d (%s): bad level %q", ErrService, i, name, fields[1])
		}
		xp, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return PlayerStats{}, fmt.Errorf("%w: skill line %d (%s): bad xp %q", ErrService, i, name, fields[2])
		}
		stats.Skills = append(stats.Skills, newSkillEntry(name, rank, level, xp))
	}

	rest := lines[len(SkillNames):]
	for i, line := range rest {
		if i >= len(ActivityNames) {
			slog.Warn(
				"skipping unrecognized trailing activity lines in lite response",
				"player", player,
				"count", len(rest)-len(ActivityNames),
			)
			break
		}
		name := ActivityNames[i]
		fields := strings.Split(strings.TrimSpace(line), ",")
		if len(fields) != 2 {
			return PlayerStats{}, fmt.Errorf(
				"%w: activity line %d (%s) has %d fields, want rank,score",
				ErrService, i, name, len(fields),
			)
		}
		rank, err := strconv.Atoi(fields[0])
		if err != nil {
			return PlayerStats{}, fmt.Errorf("%w: activity line %d (%s): bad rank %q", ErrService, i, name, fields[0])
		}
		score, err := strconv.Atoi(fields[1])
		if err != nil {
			return PlayerStats{}, fmt.Errorf("%w: activity line %d (%s): bad score %q", ErrService, i, name, fields[1])
		}
		stats.addActivity(newActivityEntry(name, rank, score))
	}

	return stats, nil
}
