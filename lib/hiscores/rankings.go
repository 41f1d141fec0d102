package hiscores

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"osrs-info/lib/htmlutil"
)

// RankingsRequest addresses one page of a leaderboard table.
type RankingsRequest struct {
	Mode Mode
	// Category selects the table family: 0 for skills, 1 for activities.
	Category int
	// Table is the index within the category, 0 being Overall or the
	// first activity.
	Table int
	// Page is 1-based. Each page holds 25 rows.
	Page int
}

// RankingEntry is one row of a leaderboard page. Values holds the
// numeric columns after the player name: level and experience on skill
// tables, score on activity tables.
type RankingEntry struct {
	Rank   int
	Player string
	Values []int64
}

// Rankings scrapes one page of the leaderboard site. Pages past the end
// of a table come back empty rather than as an error.
func (c *Client) Rankings(ctx context.Context, req RankingsRequest) ([]RankingEntry, error) {
	ctx, span := tracer.Start(ctx, "client:Rankings")
	defer span.End()
	span.SetAttributes(
		attribute.String("mode", string(req.Mode)),
		attribute.Int("category", req.Category),
		attribute.Int("table", req.Table),
		attribute.Int("page", req.Page),
	)

	if req.Page <= 0 {
		req.Page = 1
	}
	suffix, err := req.Mode.suffix()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad mode")
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"category_type": strconv.Itoa(req.Category),
			"table":         strconv.Itoa(req.Table),
			"page":          strconv.Itoa(req.Page),
		}).
		Get(fmt.Sprintf("/m=hiscore_oldschool%s/overall", suffix))
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrService, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "ranking page request failed")
		return nil, err
	}
	if res.StatusCode() == http.StatusTooManyRequests {
		err = fmt.Errorf("%w: rankings", ErrRateLimited)
		span.RecordError(err)
		span.SetStatus(codes.Error, "rate limited")
		return nil, err
	}
	if res.IsError() {
		err = fmt.Errorf("%w: status %d on ranking page", ErrService, res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "ranking page request failed")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		err = fmt.Errorf("%w: parse ranking page: %v", ErrService, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "ranking page parse failed")
		return nil, err
	}

	// header and spacer rows have no leading numeric rank cell, so
	// parsing the first cell doubles as the row filter
	entries := []RankingEntry{}
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		rank, err := strconv.Atoi(cleanNumber(cellText(cells.Eq(0))))
		if err != nil {
			return
		}

		entry := RankingEntry{
			Rank:   rank,
			Player: cellText(cells.Eq(1)),
		}
		for i := 2; i < cells.Length(); i++ {
			value, err := strconv.ParseInt(cleanNumber(cellText(cells.Eq(i))), 10, 64)
			if err != nil {
				continue
			}
			entry.Values = append(entry.Values, value)
		}
		entries = append(entries, entry)
	})

	span.SetAttributes(attribute.Int("rows", len(entries)))
	return entries, nil
}

func cellText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	return htmlutil.CleanText(htmlutil.GetText(sel.Get(0)))
}

// cleanNumber strips the thousands separators the site renders into
// rank and score cells.
func cleanNumber(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}
