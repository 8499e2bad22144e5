package popularity_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/popularity"
	"github.com/rushteam/stayrec/store"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newScorer(ds *store.MemoryDocStore) *popularity.Scorer {
	s := popularity.NewScorer(ds)
	s.Now = func() time.Time { return testNow }
	return s
}

func seedInteractions(ds *store.MemoryDocStore, hotelID core.HotelID, daysAgo int, n int) {
	for i := 0; i < n; i++ {
		ds.SeedInteractions(&core.Interaction{
			UserID:    core.UserID("u" + string(rune('a'+i%26))),
			HotelID:   hotelID,
			Kind:      core.InteractionView,
			CreatedAt: testNow.AddDate(0, 0, -daysAgo),
		})
	}
}

func TestScoreNoInteractions(t *testing.T) {
	s := newScorer(store.NewMemoryDocStore())
	got, err := s.Score(context.Background(), "h1")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 0 {
		t.Errorf("Score = %v, want 0", got)
	}
}

func TestScoreCombinesVolumeAndShare(t *testing.T) {
	ds := store.NewMemoryDocStore()
	// 10 次近期 + 10 次历史：10/100 + 10/20 = 0.6
	seedInteractions(ds, "h1", 5, 10)
	seedInteractions(ds, "h1", 60, 10)

	got, err := newScorer(ds).Score(context.Background(), "h1")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if math.Abs(got-0.6) > 1e-9 {
		t.Errorf("Score = %v, want 0.6", got)
	}
}

func TestScoreCappedAtOne(t *testing.T) {
	ds := store.NewMemoryDocStore()
	// 全部近期：120/100 + 120/120 = 2.2 → 1.0
	seedInteractions(ds, "h1", 1, 120)

	got, err := newScorer(ds).Score(context.Background(), "h1")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 1.0 {
		t.Errorf("Score = %v, want capped 1.0", got)
	}
}

func TestTrendingAggregation(t *testing.T) {
	ds := store.NewMemoryDocStore()
	// h1: 3 次交互、2 个用户 → 0.6*3 + 0.4*2 = 2.6
	ds.SeedInteractions(
		&core.Interaction{UserID: "u1", HotelID: "h1", Kind: core.InteractionView, CreatedAt: testNow.AddDate(0, 0, -1)},
		&core.Interaction{UserID: "u1", HotelID: "h1", Kind: core.InteractionClick, CreatedAt: testNow.AddDate(0, 0, -2)},
		&core.Interaction{UserID: "u2", HotelID: "h1", Kind: core.InteractionView, CreatedAt: testNow.AddDate(0, 0, -3)},
		// h2: 2 次交互、1 个用户 → 0.6*2 + 0.4*1 = 1.6
		&core.Interaction{UserID: "u3", HotelID: "h2", Kind: core.InteractionView, CreatedAt: testNow.AddDate(0, 0, -1)},
		&core.Interaction{UserID: "u3", HotelID: "h2", Kind: core.InteractionView, CreatedAt: testNow.AddDate(0, 0, -2)},
		// 窗口外，不计入
		&core.Interaction{UserID: "u4", HotelID: "h3", Kind: core.InteractionBooking, CreatedAt: testNow.AddDate(0, 0, -10)},
	)

	entries, err := newScorer(ds).Trending(context.Background(), 10)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2 (h3 outside window)", len(entries))
	}
	if entries[0].HotelID != "h1" || entries[1].HotelID != "h2" {
		t.Errorf("order = %s,%s, want h1,h2", entries[0].HotelID, entries[1].HotelID)
	}
	if math.Abs(entries[0].Score-2.6) > 1e-9 {
		t.Errorf("h1 score = %v, want 2.6", entries[0].Score)
	}
	if entries[0].Interactions != 3 || entries[0].UniqueUsers != 2 {
		t.Errorf("h1 counts = %d/%d, want 3/2", entries[0].Interactions, entries[0].UniqueUsers)
	}
}

func TestTrendingLimitAndTies(t *testing.T) {
	ds := store.NewMemoryDocStore()
	// h1 与 h2 同分：各 1 次交互、1 个用户；h1 先出现
	ds.SeedInteractions(
		&core.Interaction{UserID: "u1", HotelID: "h1", Kind: core.InteractionView, CreatedAt: testNow.AddDate(0, 0, -1)},
		&core.Interaction{UserID: "u2", HotelID: "h2", Kind: core.InteractionView, CreatedAt: testNow.AddDate(0, 0, -1)},
	)

	entries, err := newScorer(ds).Trending(context.Background(), 1)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(entries) != 1 || entries[0].HotelID != "h1" {
		t.Errorf("expected first-seen h1 on tie, got %+v", entries)
	}
}

func TestPopularFallbackRanking(t *testing.T) {
	ds := store.NewMemoryDocStore()
	ds.SeedHotels(
		&core.Hotel{ID: "h1", Rating: 4.0},
		&core.Hotel{ID: "h2", Rating: 4.5},
		&core.Hotel{ID: "h3", Rating: 3.0},
	)
	// h1: 4.0*0.7 + 100*0.001 = 2.9; h2: 4.5*0.7 = 3.15; h3: 3.0*0.7 = 2.1
	seedInteractions(ds, "h1", 5, 100)

	items, err := newScorer(ds).Popular(context.Background(), 2)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].ID != "h2" || items[1].ID != "h1" {
		t.Errorf("order = %s,%s, want h2,h1", items[0].ID, items[1].ID)
	}
	if math.Abs(items[1].Score-2.9) > 1e-9 {
		t.Errorf("h1 score = %v, want 2.9", items[1].Score)
	}
	if len(items[0].Reasons) == 0 || items[0].Reasons[0] != "popular" {
		t.Errorf("expected popular reason, got %v", items[0].Reasons)
	}
}
