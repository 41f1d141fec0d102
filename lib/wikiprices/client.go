package wikiprices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"osrs-info/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://prices.runescape.wiki/api/v1/osrs"

// the wiki admins ask for a descriptive user agent over the generic
// library defaults, see https://prices.runescape.wiki
const defaultUserAgent = "osrs-info"

var ErrRateLimited = fmt.Errorf("upstream rate limited the request")
var ErrService = fmt.Errorf("price service request failed")

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	BaseUrl   string
	UserAgent string
	Timeout   time.Duration
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 10
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{http: client}
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrService, err)
	}
	if res.StatusCode() == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ErrRateLimited, path)
	}
	if res.IsError() {
		return fmt.Errorf("%w: status %d on %s", ErrService, res.StatusCode(), path)
	}
	err = json.Unmarshal(res.Body(), out)
	if err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrService, path, err)
	}
	return nil
}

// Mapping fetches the full item metadata list, untradeable items included.
func (c *Client) Mapping(ctx context.Context) ([]MappingEntry, error) {
	ctx, span := tracer.Start(ctx, "client:Mapping")
	defer span.End()

	var entries []MappingEntry
	err := c.get(ctx, "/mapping", nil, &entries)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch mapping")
		return nil, err
	}
	span.SetAttributes(attribute.Int("entries", len(entries)))
	return entries, nil
}

func decodeIdKeys[T any](raw map[string]T, path string) (map[int]T, error) {
	out := make(map[int]T, len(raw))
	for key, value := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric item id %q in %s", ErrService, key, path)
		}
		out[id] = value
	}
	return out, nil
}

// Latest fetches the realtime price snapshot for every item the exchange
// currently tracks.
func (c *Client) Latest(ctx context.Context) (map[int]PriceQuote, error) {
	ctx, span := tracer.Start(ctx, "client:Latest")
	defer span.End()

	var payload struct {
		Data map[string]PriceQuote `json:"data"`
	}
	err := c.get(ctx, "/latest", nil, &payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch latest")
		return nil, err
	}

	quotes, err := decodeIdKeys(payload.Data, "/latest")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed latest payload")
		return nil, err
	}
	span.SetAttributes(attribute.Int("quotes", len(quotes)))
	return quotes, nil
}

// LatestItem fetches the realtime quote for a single item id.
func (c *Client) LatestItem(ctx context.Context, id int) (PriceQuote, error) {
	ctx, span := tracer.Start(ctx, "client:LatestItem")
	defer span.End()
	span.SetAttributes(attribute.Int("item_id", id))

	var payload struct {
		Data map[string]PriceQuote `json:"data"`
	}
	err := c.get(ctx, "/latest", map[string]string{"id": strconv.Itoa(id)}, &payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch latest")
		return PriceQuote{}, err
	}

	quote, ok := payload.Data[strconv.Itoa(id)]
	if !ok {
		err := fmt.Errorf("%w: no quote for item %d", ErrService, id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "quote missing from payload")
		return PriceQuote{}, err
	}
	return quote, nil
}

// Timeseries fetches up to 365 averaged price buckets for an item at the
// given step size.
func (c *Client) Timeseries(ctx context.Context, id int, step Timestep) ([]TimeseriesPoint, error) {
	ctx, span := tracer.Start(ctx, "client:Timeseries")
	defer span.End()
	span.SetAttributes(
		attribute.Int("item_id", id),
		attribute.String("timestep", string(step)),
	)

	if !step.valid() {
		err := fmt.Errorf("%w: invalid timestep %q", ErrService, step)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var payload struct {
		Data []TimeseriesPoint `json:"data"`
	}
	err := c.get(ctx, "/timeseries", map[string]string{
		"id":       strconv.Itoa(id),
		"timestep": string(step),
	}, &payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch timeseries")
		return nil, err
	}
	return payload.Data, nil
}

// Volumes fetches the 24h trade volume per item.
func (c *Client) Volumes(ctx context.Context) (VolumeSnapshot, error) {
	ctx, span := tracer.Start(ctx, "client:Volumes")
	defer span.End()

	var payload struct {
		Timestamp int64            `json:"timestamp"`
		Data      map[string]int64 `json:"data"`
	}
	err := c.get(ctx, "/volumes", nil, &payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch volumes")
		return VolumeSnapshot{}, err
	}

	volumes, err := decodeIdKeys(payload.Data, "/volumes")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed volumes payload")
		return VolumeSnapshot{}, err
	}
	return VolumeSnapshot{
		Timestamp: payload.Timestamp,
		Volumes:   volumes,
	}, nil
}
