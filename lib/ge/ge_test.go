package ge

import (
	"context"
	"fmt"
	"testing"
	"time"

	"osrs-info/lib/catalog"
	"osrs-info/lib/wikiprices"

	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	mapping    []wikiprices.MappingEntry
	latest     map[int]wikiprices.PriceQuote
	series     []wikiprices.TimeseriesPoint
	volumes    wikiprices.VolumeSnapshot
	latestErr  error
	volumesErr error

	lastSeriesID   int
	lastSeriesStep wikiprices.Timestep
}

func (f *fakeFeed) Mapping(ctx context.Context) ([]wikiprices.MappingEntry, error) {
	return f.mapping, nil
}

func (f *fakeFeed) Latest(ctx context.Context) (map[int]wikiprices.PriceQuote, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return f.latest, nil
}

func (f *fakeFeed) Timeseries(ctx context.Context, id int, step wikiprices.Timestep) ([]wikiprices.TimeseriesPoint, error) {
	f.lastSeriesID = id
	f.lastSeriesStep = step
	return f.series, nil
}

func (f *fakeFeed) Volumes(ctx context.Context) (wikiprices.VolumeSnapshot, error) {
	if f.volumesErr != nil {
		return wikiprices.VolumeSnapshot{}, f.volumesErr
	}
	return f.volumes, nil
}

func testFeed() *fakeFeed {
	return &fakeFeed{
		mapping: []wikiprices.MappingEntry{
			{ID: 4151, Name: "Abyssal whip", BuyLimit: 70},
			{ID: 1215, Name: "Dragon dagger"},
			{ID: 1712, Name: "Amulet of glory(4)"},
			{ID: 617, Name: "Coins"},
			{ID: 1333, Name: "Rune scimitar"},
		},
		latest: map[int]wikiprices.PriceQuote{
			4151: {High: 2300000, HighTime: 1700000000, Low: 2200000, LowTime: 1700000100},
			1215: {High: 17000},
			1712: {High: 12000},
			1333: {High: 30000},
		},
		series: []wikiprices.TimeseriesPoint{
			{Timestamp: 1700000000, AvgHighPrice: 2310000},
		},
		volumes: wikiprices.VolumeSnapshot{
			Timestamp: 1700006400,
			Volumes:   map[int]int64{4151: 5000},
		},
	}
}

func testClient(feed *fakeFeed) *Client {
	return NewClient(feed, catalog.NewCache(feed, catalog.Options{}))
}

func TestGetPrices(t *testing.T) {
	feed := testFeed()
	client := testClient(feed)
	ctx := context.Background()

	batch, err := client.GetPrices(ctx, 4151, 1215, 1712, 617, 99999, 4151)
	require.NoError(t, err)
	require.Len(t, batch.Records, 2)
	require.Equal(t, []int{617, 1712, 99999}, batch.Skipped)

	{
		record := batch.Records[4151]
		require.Equal(t, int64(2300000), record.High)
		require.Equal(t, int64(2200000), record.Low)
		require.True(t, record.HighTime.Equal(time.Unix(1700000000, 0)))
		require.Equal(t, int64(5000), record.Volume)
	}
	{
		// a quote with no recent trades has zero times, not 1970
		record := batch.Records[1215]
		require.Equal(t, int64(17000), record.High)
		require.True(t, record.HighTime.IsZero())
		require.Equal(t, int64(0), record.Volume)
	}

	{
		batch, err := client.GetPrices(ctx)
		require.NoError(t, err)
		require.Empty(t, batch.Records)
		require.Empty(t, batch.Skipped)
	}
}

func TestGetPricesFeedFailures(t *testing.T) {
	feed := testFeed()
	client := testClient(feed)
	ctx := context.Background()

	// volume data is optional garnish
	feed.volumesErr = fmt.Errorf("volumes down")
	batch, err := client.GetPrices(ctx, 4151)
	require.NoError(t, err)
	require.Equal(t, int64(0), batch.Records[4151].Volume)

	feed.latestErr = wikiprices.ErrRateLimited
	_, err = client.GetPrices(ctx, 4151)
	require.ErrorIs(t, err, wikiprices.ErrRateLimited)
}

func TestPrice(t *testing.T) {
	feed := testFeed()
	client := testClient(feed)
	ctx := context.Background()

	{
		quote, err := client.Price(ctx, 4151)
		require.NoError(t, err)
		require.Equal(t, "Abyssal whip", quote.Item.Name)
		require.Equal(t, 70, quote.Item.BuyLimit)
		require.Equal(t, int64(2300000), quote.Record.High)
		require.Equal(t, int64(5000), quote.Record.Volume)
	}
	{
		_, err := client.Price(ctx, 99999)
		require.ErrorIs(t, err, ErrUnknownItem)
	}
	{
		// junk variants are catalogued but refuse to price
		_, err := client.Price(ctx, 1712)
		require.ErrorIs(t, err, ErrNotTradeable)
	}
	{
		_, err := client.Price(ctx, 617)
		require.ErrorIs(t, err, ErrNotTradeable)
	}
	{
		// the quote can vanish from the feed after the catalog loaded
		delete(feed.latest, 1333)
		_, err := client.Price(ctx, 1333)
		require.ErrorIs(t, err, ErrNotTradeable)
	}
}

func TestHistory(t *testing.T) {
	feed := testFeed()
	client := testClient(feed)
	ctx := context.Background()

	{
		points, err := client.History(ctx, 4151, wikiprices.Step24h)
		require.NoError(t, err)
		require.Len(t, points, 1)
		require.Equal(t, 4151, feed.lastSeriesID)
		require.Equal(t, wikiprices.Step24h, feed.lastSeriesStep)
	}
	{
		_, err := client.History(ctx, 617, wikiprices.Step24h)
		require.ErrorIs(t, err, ErrNotTradeable)
	}
	{
		_, err := client.History(ctx, 42424242, wikiprices.Step24h)
		require.ErrorIs(t, err, ErrUnknownItem)
	}
}
