package pricestore

import (
	"context"
	"math/rand"
	"sort"
	"testing"
	"time"

	"osrs-info/lib/testutil"
	"osrs-info/lib/timezone"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	database, cleanup := testutil.SetupDB(t, "pricestore", Schema)
	defer cleanup()

	store := NewStore(database)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		res, err := store.Pull(ctx, 4151)
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, res, 0)
	}
	{
		day1 := time.Date(2024, 7, 1, 14, 30, 0, 0, timezone.Location)

		err := store.Push(ctx, PushRequest{
			Time: day1,
			Items: []ItemSnapshot{
				{ItemID: 4151, High: 2300000, Low: 2200000, Volume: 5000},
				{ItemID: 1215, High: 17000, Low: 16500, Volume: 900},
			},
		})
		if err != nil {
			t.Fatal(err)
		}

		// a second run the same day replaces the whip's snapshot but
		// leaves the dagger's alone
		err = store.Push(ctx, PushRequest{
			Time: day1.Add(time.Hour * 3),
			Items: []ItemSnapshot{
				{ItemID: 4151, High: 2350000, Low: 2250000, Volume: 5100},
			},
		})
		if err != nil {
			t.Fatal(err)
		}

		err = store.Push(ctx, PushRequest{
			Time: day1.Add(time.Hour * 24),
			Items: []ItemSnapshot{
				{ItemID: 4151, High: 2400000, Low: 2280000, Volume: 4800},
			},
		})
		if err != nil {
			t.Fatal(err)
		}

		whip, err := store.Pull(ctx, 4151)
		if err != nil {
			t.Fatal(err)
		}
		diff := cmp.Diff([]PriceSnapshot{
			{Time: day1.Add(time.Hour * 3), High: 2350000, Low: 2250000, Volume: 5100},
			{Time: day1.Add(time.Hour * 24), High: 2400000, Low: 2280000, Volume: 4800},
		}, whip)
		require.Empty(t, diff)

		dagger, err := store.Pull(ctx, 1215)
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, dagger, 1)
		require.Equal(t, int64(900), dagger[0].Volume)

		ids, err := store.Items(ctx)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, []int{1215, 4151}, ids)
	}
}

// drives the store with random push sequences and checks it against an
// in-memory model: per item per day, the last push wins and pulls come
// back oldest first.
func TestStoreRandomized(t *testing.T) {
	database, cleanup := testutil.SetupDB(t, "pricestore", Schema)
	defer cleanup()

	store := NewStore(database)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	rndm := rand.New(rand.NewSource(7))
	// 0: advance minutes, 1: hours, 2: whole days
	advance := testutil.RandomSwitch(5, 3, 2)

	pool := []int{2, 6, 8, 10, 12, 314, 554, 1044}
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, timezone.Location)

	type key struct {
		day  int64
		item int
	}
	model := map[key]PriceSnapshot{}

	for i := 0; i < 200; i++ {
		switch advance(rndm) {
		case 0:
			now = now.Add(time.Duration(rndm.Intn(59)+1) * time.Minute)
		case 1:
			now = now.Add(time.Duration(rndm.Intn(23)+1) * time.Hour)
		case 2:
			now = now.Add(time.Duration(rndm.Intn(6)+1) * time.Hour * 24)
		}

		var items []ItemSnapshot
		picked := map[int]bool{}
		for n := rndm.Intn(4) + 1; n > 0; n-- {
			id := pool[rndm.Intn(len(pool))]
			if picked[id] {
				continue
			}
			picked[id] = true
			items = append(items, ItemSnapshot{
				ItemID: id,
				High:   int64(rndm.Intn(1_000_000) + 1),
				Low:    int64(rndm.Intn(1_000_000) + 1),
				Volume: int64(rndm.Intn(10_000)),
			})
		}

		err := store.Push(ctx, PushRequest{Time: now, Items: items})
		if err != nil {
			t.Fatal(err)
		}

		day, _ := timezone.DayBounds(now)
		for _, item := range items {
			model[key{day: day.Unix(), item: item.ItemID}] = PriceSnapshot{
				Time:   now,
				High:   item.High,
				Low:    item.Low,
				Volume: item.Volume,
			}
		}
	}

	for _, id := range pool {
		var want []PriceSnapshot
		for k, snapshot := range model {
			if k.item == id {
				want = append(want, snapshot)
			}
		}
		sort.Slice(want, func(a, b int) bool {
			return want[a].Time.Before(want[b].Time)
		})

		got, err := store.Pull(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		diff := cmp.Diff(want, got)
		require.Empty(t, diff)
	}
}
