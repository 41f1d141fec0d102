package wikiprices

// MappingEntry is one row of the /mapping payload: static metadata for a
// single item. Fields the payload omits stay zero.
type MappingEntry struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Examine  string `json:"examine"`
	Members  bool   `json:"members"`
	LowAlch  int    `json:"lowalch"`
	HighAlch int    `json:"highalch"`
	BuyLimit int    `json:"limit"`
	Value    int    `json:"value"`
	Icon     string `json:"icon"`
}

// PriceQuote is the realtime high/low snapshot for one item from /latest.
// Times are unix seconds. An item that has never sold on one side leaves
// that price and time at zero (the payload uses null).
type PriceQuote struct {
	High     int64 `json:"high"`
	HighTime int64 `json:"highTime"`
	Low      int64 `json:"low"`
	LowTime  int64 `json:"lowTime"`
}

// TimeseriesPoint is one bucket of averaged prices from /timeseries.
type TimeseriesPoint struct {
	Timestamp       int64 `json:"timestamp"`
	AvgHighPrice    int64 `json:"avgHighPrice"`
	AvgLowPrice     int64 `json:"avgLowPrice"`
	HighPriceVolume int64 `json:"highPriceVolume"`
	LowPriceVolume  int64 `json:"lowPriceVolume"`
}

// VolumeSnapshot maps item id to units traded in the last 24h, stamped
// with the time the upstream generated it.
type VolumeSnapshot struct {
	Timestamp int64
	Volumes   map[int]int64
}

// Timestep selects the bucket size of a /timeseries request.
type Timestep string

const (
	Step5m  Timestep = "5m"
	Step1h  Timestep = "1h"
	Step6h  Timestep = "6h"
	Step24h Timestep = "24h"
)

func (t Timestep) valid() bool {
	switch t {
	case Step5m, Step1h, Step6h, Step24h:
		return true
	}
	return false
}
