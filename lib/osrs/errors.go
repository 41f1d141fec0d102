package osrs

import (
	"errors"

	"osrs-info/lib/catalog"
	"osrs-info/lib/ge"
	"osrs-info/lib/hiscores"
	"osrs-info/lib/search"
	"osrs-info/lib/wikiprices"
)

// The decoder surfaces the sentinels of its component packages so
// callers only import this one. Match with errors.Is.
var (
	ErrCatalogLoad     = catalog.ErrLoad
	ErrInvalidQuery    = search.ErrEmptyQuery
	ErrPriceService    = wikiprices.ErrService
	ErrEmptyPlayer     = hiscores.ErrEmptyPlayer
	ErrPlayerNotFound  = hiscores.ErrPlayerNotFound
	ErrHiscoresService = hiscores.ErrService
	ErrUnknownItem     = ge.ErrUnknownItem
	ErrNotTradeable    = ge.ErrNotTradeable
)

// IsRateLimited reports whether either upstream throttled the request,
// regardless of which client it came through.
func IsRateLimited(err error) bool {
	return errors.Is(err, hiscores.ErrRateLimited) ||
		errors.Is(err, wikiprices.ErrRateLimited)
}

// Mode re-exports the leaderboard modes so stats lookups do not need a
// second import.
type Mode = hiscores.Mode

const (
	ModeNormal   = hiscores.ModeNormal
	ModeIronman  = hiscores.ModeIronman
	ModeHardcore = hiscores.ModeHardcore
	ModeUltimate = hiscores.ModeUltimate
	ModeDeadman  = hiscores.ModeDeadman
	ModeSeasonal = hiscores.ModeSeasonal
)
