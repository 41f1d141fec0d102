package hiscores

import (
	"osrs-info/lib/restyutil"
	"osrs-info/lib/telemetry"
)

var tracer = telemetry.Tracer("osrs.lib.hiscores")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput sets the destination request/response dumps
// are written to. It must be called before NewClient.
func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	restyInstrumentOutput = output
}
