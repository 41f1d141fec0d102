package wikiprices

import (
	"osrs-info/lib/restyutil"
	"osrs-info/lib/telemetry"
)

var tracer = telemetry.Tracer("osrs.lib.wikiprices")
var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput must be called before NewClient for dumps to
// be picked up.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
