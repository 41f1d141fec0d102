package hiscores

import "fmt"

// Mode selects which hiscore leaderboard a lookup runs against. Each
// mode lives on its own endpoint; an account can appear on several
// (every ironman is also on the normal board).
type Mode string

const (
	ModeNormal   Mode = "normal"
	ModeIronman  Mode = "ironman"
	ModeHardcore Mode = "hardcore"
	ModeUltimate Mode = "ultimate"
	ModeDeadman  Mode = "deadman"
	ModeSeasonal Mode = "seasonal"
)

// Modes lists every mode from most to least specific. When deciding
// which board "owns" an account, the earliest mode it appears on wins.
func Modes() []Mode {
	return []Mode{
		ModeSeasonal,
		ModeDeadman,
		ModeUltimate,
		ModeHardcore,
		ModeIronman,
		ModeNormal,
	}
}

// suffix is the path fragment appended to "m=hiscore_oldschool".
func (m Mode) suffix() (string, error) {
	switch m {
	case ModeNormal, Mode(""):
		return "", nil
	case ModeIronman:
		return "_ironman", nil
	case ModeHardcore:
		return "_hardcore_ironman", nil
	case ModeUltimate:
		return "_ultimate", nil
	case ModeDeadman:
		return "_deadman", nil
	case ModeSeasonal:
		return "_seasonal", nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrService, string(m))
}

// ParseMode maps user-facing spellings onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "normal", "main":
		return ModeNormal, nil
	case "ironman", "iron":
		return ModeIronman, nil
	case "hardcore", "hardcore_ironman", "hcim":
		return ModeHardcore, nil
	case "ultimate", "ultimate_ironman", "uim":
		return ModeUltimate, nil
	case "deadman", "dmm":
		return ModeDeadman, nil
	case "seasonal", "league", "leagues":
		return ModeSeasonal, nil
	}
	return ModeNormal, fmt.Errorf("unknown game mode %q", s)
}
