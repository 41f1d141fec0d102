package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"osrs-info/lib/configutil"
	"osrs-info/lib/hiscores"
	"osrs-info/lib/osrs"
	"osrs-info/lib/pricestore"
	"osrs-info/lib/restyutil"
	"osrs-info/lib/serviceutil"
	"osrs-info/lib/sqliteutil"
	"osrs-info/lib/telemetry"
	"osrs-info/lib/wikiprices"
)

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "osrs-cli",
	Short: "osrs-cli looks up player stats and Grand Exchange prices.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		if *verbose {
			hiscores.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/hiscores"))
			wikiprices.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/prices"))
		}
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliConfig is the config.json5 shape: the decoder settings inline plus
// an optional store section for the snapshot database.
type cliConfig struct {
	osrs.Config
	Store sqliteutil.Config `json:"store"`
}

func readConfig() cliConfig {
	cfg, err := configutil.ReadConfig[cliConfig]("config.json5")
	if os.IsNotExist(err) {
		return cliConfig{}
	}
	if err != nil {
		serviceutil.Fatal("failed to read config.json5", err)
	}
	return cfg
}

// loadDecoder builds a decoder from config.json5 when one is around and
// from defaults when not.
func loadDecoder() *osrs.Decoder {
	return osrs.New(readConfig().Config)
}

// modeFlag parses a --mode value. An unset flag stays the empty mode so
// the configured default_mode applies.
func modeFlag(value string) osrs.Mode {
	if value == "" {
		return ""
	}
	mode, err := hiscores.ParseMode(value)
	if err != nil {
		serviceutil.Fatal("invalid mode", err)
	}
	return mode
}

// openStore opens the snapshot database. An explicit --db flag wins,
// otherwise the store section of config.json5 applies.
func openStore(cmd *cobra.Command, path string) *sql.DB {
	store := readConfig().Store
	if !cmd.Flags().Changed("db") && (store.File != "" || store.Url != "") {
		database, err := store.OpenDB(pricestore.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open the price database", err)
		}
		return database
	}

	database, err := sqliteutil.OpenDB(pricestore.Schema, path)
	if err != nil {
		serviceutil.Fatal("failed to open the price database", err)
	}
	return database
}

// resolveItem turns a command line argument into an item id: a number
// is taken as-is, anything else is matched against item names with a
// fuzzy fallback.
func resolveItem(ctx context.Context, decoder *osrs.Decoder, arg string) int {
	id, err := strconv.Atoi(arg)
	if err == nil {
		return id
	}

	cat, err := decoder.Items(ctx)
	if err != nil {
		serviceutil.Fatal("failed to load the item catalog", err)
	}
	if item, ok := cat.LookupName(arg); ok {
		return item.ID
	}

	results, err := decoder.Search(ctx, arg, true)
	if err != nil {
		serviceutil.Fatal("failed to search for the item", err)
	}
	if len(results) == 0 {
		serviceutil.Fatal("no item matches the query", fmt.Errorf("%q", arg))
	}
	return results[0].Item.ID
}
