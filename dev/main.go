package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	devsetup "osrs-info/dev/setup"
)

func create(recreate bool) error {
	_, err := os.Stat("go.mod")
	if os.IsNotExist(err) {
		return fmt.Errorf("the dev environment must be created in the repository root (the same directory as the 'go.mod' file)")
	}

	if recreate {
		err = os.RemoveAll("dev/.state")
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	err = os.MkdirAll("dev/.state", 0777)
	if err != nil && !os.IsExist(err) {
		return err
	}

	err = devsetup.CreatePriceDB()
	if err != nil {
		return err
	}
	err = devsetup.WriteDefaultConfig()
	if err != nil {
		return err
	}
	devsetup.PrintConfigLocations()

	return nil
}

func main() {
	recreate := flag.Bool("recreate", false, "Wipe dev/.state and build it from scratch.")
	liveTests := flag.Bool("live-tests", false, "Prompt for the settings the opt-in live tests use.")
	flag.Parse()

	err := create(*recreate)
	if err != nil {
		slog.Error("failed to create the dev environment", "err", err)
		os.Exit(1)
	}

	if *liveTests {
		err = devsetup.SetupHiscoresTests()
		if err != nil {
			slog.Error("failed to set up live hiscores tests", "err", err)
			os.Exit(1)
		}
		err = devsetup.SetupPricesTests()
		if err != nil {
			slog.Error("failed to set up live prices tests", "err", err)
			os.Exit(1)
		}
	}
}
