package main

import (
	"log/slog"
	"os"

	"osrs-info/cmd/osrs-cli/commands"
	"osrs-info/lib/serviceutil"
	"osrs-info/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "osrs-cli")
	if err == nil {
		defer tel.Shutdown(ctx)
		telemetry.InstrumentPerfStats(ctx)
	} else if !os.IsNotExist(err) {
		slog.Warn("could not set up telemetry", "err", err)
	}

	commands.ExecuteContext(ctx)
}
