// Package devsetup bootstraps the local dev environment: scratch
// databases, a starter config and the settings for the opt-in live
// tests.
package devsetup

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	devenv "osrs-info/dev/env"
	"osrs-info/lib/hiscores"
	"osrs-info/lib/pricestore"
	"osrs-info/lib/sqliteutil"

	"github.com/tcnksm/go-input"
)

// CreatePriceDB seeds the scratch database the record/history commands
// default to during development.
func CreatePriceDB() error {
	db, err := sqliteutil.OpenDB(pricestore.Schema, "<dev_state>/prices.db")
	if err != nil {
		return err
	}
	return db.Close()
}

const defaultConfig = `{
	// identify yourself to the price API admins, e.g.
	// "price tracker - @yourname on discord"
	user_agent: "osrs-info (dev)",

	// timeout_seconds: 10,
	// default_mode: "normal",
	// junk_categories: ["charged", "corrupted", "seasonal"],
	// search_aliases: {"dds": "dragon dagger"},
	// fuzzy_threshold: 0.85,
	// fuzzy_limit: 10,
	// disable_fuzzy: false,

	store: {
		file: "<dev_state>/prices.db",
		// or a hosted database:
		// url: "libsql://prices-yourname.turso.io",
		// auth_token: "",
	},
}
`

// WriteDefaultConfig drops a starter config.json5 at the workspace root
// unless one already exists.
func WriteDefaultConfig() error {
	root, err := devenv.GetWorkspaceRoot()
	if err != nil {
		return err
	}
	path := filepath.Join(root, "config.json5")
	_, err = os.Stat(path)
	if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfig), 0644)
}

func PrintConfigLocations() {
	slog.Info("decoder config", "path", "config.json5")
	slog.Info("scratch price database", "path", "dev/.state/prices.db")
	slog.Info("live hiscores test settings", "path", "dev/.state/hiscores.json5")
	slog.Info("live prices test settings", "path", "dev/.state/prices.json5")
}

func SetupHiscoresTests() error {
	path, err := devenv.GetStateFilePath("hiscores.json5")
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if !os.IsNotExist(err) {
		slog.Info("live hiscores test settings have already been provided")
		return err
	}

	ui := input.DefaultUI()
	player, err := ui.Ask("player to look up in live hiscores tests:", &input.Options{
		Default: "",
		Mask:    false,
		Loop:    true,
	})
	if err != nil {
		return err
	}
	modeStr, err := ui.Ask("leaderboard (normal/ironman/hcim/uim/deadman/seasonal):", &input.Options{
		Default: "normal",
		Mask:    false,
		Loop:    true,
	})
	if err != nil {
		return err
	}
	mode, err := hiscores.ParseMode(modeStr)
	if err != nil {
		return err
	}

	contents, err := json.Marshal(devenv.HiscoresTestConfig{
		Player: player,
		Mode:   string(mode),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0600)
}

func SetupPricesTests() error {
	path, err := devenv.GetStateFilePath("prices.json5")
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if !os.IsNotExist(err) {
		slog.Info("live prices test settings have already been provided")
		return err
	}

	ui := input.DefaultUI()
	userAgent, err := ui.Ask("user agent to send to the prices API:", &input.Options{
		Default: "osrs-info (dev)",
		Mask:    false,
		Loop:    true,
	})
	if err != nil {
		return err
	}
	itemStr, err := ui.Ask("item id to price in live tests:", &input.Options{
		Default: "4151",
		Mask:    false,
		Loop:    true,
	})
	if err != nil {
		return err
	}
	itemID, err := strconv.Atoi(itemStr)
	if err != nil {
		return err
	}

	contents, err := json.Marshal(devenv.PricesTestConfig{
		UserAgent: userAgent,
		ItemID:    itemID,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0600)
}
