// Package hiscores looks up player stats on the official leaderboards.
// The primary endpoint is the "lite" CSV one, which returns bare
// positional ranks with no field names; SkillNames and ActivityNames
// pin down what each line means.
package hiscores

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"osrs-info/lib/restyutil"
)

const DefaultBaseUrl = "https://secure.runescape.com"

var ErrEmptyPlayer = fmt.Errorf("player name is empty")
var ErrPlayerNotFound = fmt.Errorf("player is not on this leaderboard")
var ErrRateLimited = fmt.Errorf("upstream rate limited the request")
var ErrService = fmt.Errorf("hiscores request failed")

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
		opts.UserAgent = "osrs-info"
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 10
	}

	jar, _ := cookiejar.New(nil)

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{http: client}
}

// lookup fetches one of the per-mode lite endpoints for a player and
// maps upstream failures onto the package sentinels.
func (c *Client) lookup(ctx context.Context, endpoint string, player string, mode Mode) ([]byte, error) {
	if strings.TrimSpace(player) == "" {
		return nil, ErrEmptyPlayer
	}
	suffix, err := mode.suffix()
	if err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("player", player).
		Get(fmt.Sprintf("/m=hiscore_oldschool%s/%s", suffix, endpoint))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	switch {
	case res.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %q (%s)", ErrPlayerNotFound, player, mode)
	case res.StatusCode() == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, endpoint)
	case res.IsError():
		return nil, fmt.Errorf("%w: status %d on %s", ErrService, res.StatusCode(), endpoint)
	}
	return res.Body(), nil
}

func annotate(span trace.Span, player string, mode Mode) {
	span.SetAttributes(
		attribute.String("player", player),
		attribute.String("mode", string(mode)),
	)
}

// Stats looks a player up on the mode's leaderboard and decodes the
// positional CSV response.
func (c *Client) Stats(ctx context.Context, player string, mode Mode) (PlayerStats, error) {
	ctx, span := tracer.Start(ctx, "client:Stats")
	defer span.End()
	annotate(span, player, mode)

	body, err := c.lookup(ctx, "index_lite.ws", player, mode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lite csv lookup failed")
		return PlayerStats{}, err
	}
	stats, err := decodeLite(player, mode, string(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lite csv decode failed")
		return PlayerStats{}, err
	}
	return stats, nil
}

type liteJsonSkill struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Rank  int    `json:"rank"`
	Level int    `json:"level"`
	XP    int64  `json:"xp"`
}

type liteJsonActivity struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Rank  int    `json:"rank"`
	Score int    `json:"score"`
}

type liteJsonResponse struct {
	Skills     []liteJsonSkill    `json:"skills"`
	Activities []liteJsonActivity `json:"activities"`
}

// StatsJSON looks a player up through the self-describing JSON variant
// of the lite endpoint. Unlike Stats it trusts the names in the payload
// instead of the positional tables, so it keeps working the moment
// upstream appends a new activity.
func (c *Client) StatsJSON(ctx context.Context, player string, mode Mode) (PlayerStats, error) {
	ctx, span := tracer.Start(ctx, "client:StatsJSON")
	defer span.End()
	annotate(span, player, mode)

	body, err := c.lookup(ctx, "index_lite.json", player, mode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lite json lookup failed")
		return PlayerStats{}, err
	}

	var payload liteJsonResponse
	err = json.Unmarshal(body, &payload)
	if err != nil {
		err = fmt.Errorf("%w: decode index_lite.json: %v", ErrService, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "lite json decode failed")
		return PlayerStats{}, err
	}

	stats := PlayerStats{Player: player, Mode: mode}
	for _, skill := range payload.Skills {
		stats.Skills = append(stats.Skills, newSkillEntry(
			skill.Name, skill.Rank, skill.Level, skill.XP,
		))
	}
	for _, activity := range payload.Activities {
		stats.addActivity(newActivityEntry(
			activity.Name, activity.Rank, activity.Score,
		))
	}
	return stats, nil
}
