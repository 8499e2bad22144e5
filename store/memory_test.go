package store

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/stayrec/core"
)

func TestMemoryDocStoreHotels(t *testing.T) {
	ctx := context.Background()
	ds := NewMemoryDocStore()
	ds.SeedHotels(
		&core.Hotel{ID: "h1", Name: "Grand Palace", City: "paris"},
		&core.Hotel{ID: "h2", Name: "Sea View", City: "nice"},
	)

	h, err := ds.GetHotel(ctx, "h1")
	if err != nil {
		t.Fatalf("GetHotel: %v", err)
	}
	if h.Name != "Grand Palace" {
		t.Errorf("got %q", h.Name)
	}

	if _, err := ds.GetHotel(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}

	hotels, err := ds.ListHotels(ctx)
	if err != nil {
		t.Fatalf("ListHotels: %v", err)
	}
	if len(hotels) != 2 || hotels[0].ID != "h1" || hotels[1].ID != "h2" {
		t.Errorf("seed order not preserved: %+v", hotels)
	}
}

func TestMemoryDocStoreInteractionWindows(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ds := NewMemoryDocStore()
	ds.SeedInteractions(
		&core.Interaction{UserID: "u1", HotelID: "h1", Kind: core.InteractionView, CreatedAt: now.AddDate(0, 0, -40)},
		&core.Interaction{UserID: "u1", HotelID: "h1", Kind: core.InteractionClick, CreatedAt: now.AddDate(0, 0, -5)},
		&core.Interaction{UserID: "u2", HotelID: "h1", Kind: core.InteractionBooking, CreatedAt: now.AddDate(0, 0, -1)},
		&core.Interaction{UserID: "u1", HotelID: "h2", Kind: core.InteractionView, CreatedAt: now.AddDate(0, 0, -2)},
	)

	total, err := ds.CountHotelInteractions(ctx, "h1", time.Time{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}

	recent, err := ds.CountHotelInteractions(ctx, "h1", now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if recent != 2 {
		t.Errorf("recent = %d, want 2", recent)
	}

	// 窗口 + 倒序 + limit
	inters, err := ds.UserInteractions(ctx, "u1", now.AddDate(0, 0, -30), 1)
	if err != nil {
		t.Fatalf("UserInteractions: %v", err)
	}
	if len(inters) != 1 || inters[0].HotelID != "h2" {
		t.Errorf("expected latest u1 interaction h2, got %+v", inters)
	}
}

func TestMemoryDocStorePreference(t *testing.T) {
	ctx := context.Background()
	ds := NewMemoryDocStore()

	if _, err := ds.GetPreference(ctx, "u1"); !core.IsStoreNotFound(err) {
		t.Errorf("expected not found for missing preference, got %v", err)
	}

	ds.SeedPreference("u1", &core.Preference{TravelStyle: "luxury"})
	pref, err := ds.GetPreference(ctx, "u1")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if pref.TravelStyle != "luxury" {
		t.Errorf("got %q", pref.TravelStyle)
	}
}

func TestMemoryStoreKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	if _, err := kv.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := kv.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(v) != "v" {
		t.Errorf("got %q", v)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := kv.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}
