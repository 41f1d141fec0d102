// Package ge answers price questions about tradeable items. It joins
// the item catalog with the live price feed, so lookups for junk
// variants or untradeable items fail up front instead of returning
// numbers that mean nothing.
package ge

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"osrs-info/lib/catalog"
	"osrs-info/lib/telemetry"
	"osrs-info/lib/timezone"
	"osrs-info/lib/wikiprices"
)

var tracer = telemetry.Tracer("osrs.lib.ge")

var ErrUnknownItem = fmt.Errorf("item id is not in the catalog")
var ErrNotTradeable = fmt.Errorf("item is not tradeable")

// PriceAPI is the slice of the price feed this package consumes.
// *wikiprices.Client satisfies it.
type PriceAPI interface {
	Latest(ctx context.Context) (map[int]wikiprices.PriceQuote, error)
	Timeseries(ctx context.Context, id int, step wikiprices.Timestep) ([]wikiprices.TimeseriesPoint, error)
	Volumes(ctx context.Context) (wikiprices.VolumeSnapshot, error)
}

// PriceRecord is a live quote with timestamps resolved to wall time.
// A zero High or Low means that side has not traded recently.
type PriceRecord struct {
	ItemID   int
	High     int64
	Low      int64
	HighTime time.Time
	LowTime  time.Time
	Volume   int64
}

// Quote is the full answer for a single item: its catalog entry plus
// the live record.
type Quote struct {
	Item   catalog.Item
	Record PriceRecord
}

// Batch is the result of a multi-item lookup. Ids that could not be
// priced (unknown, untradeable or missing a live quote) are listed in
// Skipped instead of failing the whole batch.
type Batch struct {
	Records map[int]PriceRecord
	Skipped []int
}

type Client struct {
	api     PriceAPI
	catalog *catalog.Cache
}

func NewClient(api PriceAPI, cache *catalog.Cache) *Client {
	return &Client{api: api, catalog: cache}
}

func newRecord(id int, quote wikiprices.PriceQuote, volumes map[int]int64) PriceRecord {
	record := PriceRecord{
		ItemID: id,
		High:   quote.High,
		Low:    quote.Low,
		Volume: volumes[id],
	}
	if quote.HighTime > 0 {
		record.HighTime = time.Unix(quote.HighTime, 0).In(timezone.Location)
	}
	if quote.LowTime > 0 {
		record.LowTime = time.Unix(quote.LowTime, 0).In(timezone.Location)
	}
	return record
}

// volumes fetches the daily volume map. Volume is garnish on top of the
// price data, so a failure here degrades to zeroes rather than failing
// the lookup.
func (c *Client) volumes(ctx context.Context) map[int]int64 {
	snapshot, err := c.api.Volumes(ctx)
	if err != nil {
		return nil
	}
	return snapshot.Volumes
}

// GetPrices prices every given id from a single feed fetch. Unpriceable
// ids land in Batch.Skipped; the call fails only when the catalog or
// the feed itself does.
func (c *Client) GetPrices(ctx context.Context, ids ...int) (Batch, error) {
	ctx, span := tracer.Start(ctx, "client:GetPrices")
	defer span.End()
	span.SetAttributes(attribute.Int("requested", len(ids)))

	batch := Batch{Records: map[int]PriceRecord{}}
	if len(ids) == 0 {
		return batch, nil
	}

	cat, err := c.catalog.Get(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog unavailable")
		return Batch{}, err
	}
	latest, err := c.api.Latest(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "price feed unavailable")
		return Batch{}, err
	}
	volumes := c.volumes(ctx)

	seen := map[int]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		quote, quoted := latest[id]
		if !cat.IsTradeable(id) || !quoted {
			batch.Skipped = append(batch.Skipped, id)
			continue
		}
		batch.Records[id] = newRecord(id, quote, volumes)
	}
	sort.Ints(batch.Skipped)

	span.SetAttributes(
		attribute.Int("priced", len(batch.Records)),
		attribute.Int("skipped", len(batch.Skipped)),
	)
	return batch, nil
}

// Price prices a single item and returns its catalog entry alongside.
// Unlike GetPrices it reports exactly why an id could not be priced.
func (c *Client) Price(ctx context.Context, id int) (Quote, error) {
	ctx, span := tracer.Start(ctx, "client:Price")
	defer span.End()
	span.SetAttributes(attribute.Int("item", id))

	cat, err := c.catalog.Get(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog unavailable")
		return Quote{}, err
	}
	item, ok := cat.Lookup(id)
	if !ok {
		err := fmt.Errorf("%w: %d", ErrUnknownItem, id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown item")
		return Quote{}, err
	}
	if !cat.IsTradeable(id) {
		err := fmt.Errorf("%w: %s (%d)", ErrNotTradeable, item.Name, id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "item not tradeable")
		return Quote{}, err
	}

	latest, err := c.api.Latest(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "price feed unavailable")
		return Quote{}, err
	}
	quote, ok := latest[id]
	if !ok {
		// tradeable is judged at catalog load time, so a quote can
		// disappear between a refresh and now
		err := fmt.Errorf("%w: no live quote for %s (%d)", ErrNotTradeable, item.Name, id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "no live quote")
		return Quote{}, err
	}

	return Quote{
		Item:   item,
		Record: newRecord(id, quote, c.volumes(ctx)),
	}, nil
}

// History returns the aggregated trade series for a tradeable item.
func (c *Client) History(ctx context.Context, id int, step wikiprices.Timestep) ([]wikiprices.TimeseriesPoint, error) {
	ctx, span := tracer.Start(ctx, "client:History")
	defer span.End()
	span.SetAttributes(
		attribute.Int("item", id),
		attribute.String("timestep", string(step)),
	)

	cat, err := c.catalog.Get(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog unavailable")
		return nil, err
	}
	if _, ok := cat.Lookup(id); !ok {
		err := fmt.Errorf("%w: %d", ErrUnknownItem, id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown item")
		return nil, err
	}
	if !cat.IsTradeable(id) {
		err := fmt.Errorf("%w: %d", ErrNotTradeable, id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "item not tradeable")
		return nil, err
	}

	points, err := c.api.Timeseries(ctx, id, step)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "timeseries fetch failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("points", len(points)))
	return points, nil
}
