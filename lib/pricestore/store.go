// Package pricestore persists daily price snapshots so trends survive
// past the window the live timeseries endpoint keeps.
package pricestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"osrs-info/lib/timezone"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// ItemSnapshot is one item's prices at observation time.
type ItemSnapshot struct {
	ItemID int
	High   int64
	Low    int64
	Volume int64
}

type PushRequest struct {
	Time  time.Time
	Items []ItemSnapshot
}

// Push records a batch of snapshots. Pushing the same item again on the
// same day replaces that day's row, so repeated runs converge on one
// snapshot per item per day. Items not in the batch are left alone.
func (s Store) Push(ctx context.Context, req PushRequest) error {
	if len(req.Items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	startOfToday, startOfTomorrow := timezone.DayBounds(req.Time)

	placeholders := make([]string, len(req.Items))
	args := []any{startOfToday.Unix(), startOfTomorrow.Unix()}
	for i, item := range req.Items {
		placeholders[i] = "?"
		args = append(args, item.ItemID)
	}
	_, err = tx.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM price_snapshot
		WHERE time >= ? AND time < ? AND item_id IN (%s)`,
		strings.Join(placeholders, ", "),
	), args...)
	if err != nil {
		return err
	}

	for _, item := range req.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO price_snapshot (item_id, time, high, low, volume)
			VALUES (?, ?, ?, ?, ?)`,
			item.ItemID, req.Time.Unix(), item.High, item.Low, item.Volume,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PriceSnapshot is one stored observation of an item.
type PriceSnapshot struct {
	Time   time.Time
	High   int64
	Low    int64
	Volume int64
}

// Pull returns every stored snapshot for an item, oldest first.
func (s Store) Pull(ctx context.Context, itemID int) ([]PriceSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT time, high, low, volume FROM price_snapshot
		WHERE item_id = ? ORDER BY time ASC`,
		itemID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []PriceSnapshot
	for rows.Next() {
		var unix int64
		var snapshot PriceSnapshot
		err := rows.Scan(&unix, &snapshot.High, &snapshot.Low, &snapshot.Volume)
		if err != nil {
			return nil, err
		}
		snapshot.Time = time.Unix(unix, 0).In(timezone.Location)
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// Items lists every item id with at least one stored snapshot.
func (s Store) Items(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT item_id FROM price_snapshot ORDER BY item_id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		err := rows.Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
