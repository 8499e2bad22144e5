package filter

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/stayrec/core"
)

func hotelItem(id core.HotelID, h *core.Hotel) *core.Item {
	it := core.NewItem(id)
	h.ID = id
	it.Hotel = h
	return it
}

func ptr(v float64) *float64 { return &v }

func runNode(t *testing.T, c *core.Criteria, items []*core.Item) []*core.Item {
	t.Helper()
	n, err := FromCriteria(c)
	if err != nil {
		t.Fatalf("FromCriteria: %v", err)
	}
	out, err := n.Process(context.Background(), &core.RecommendContext{UserID: "u1", Criteria: c}, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return out
}

func TestFilterEmptyCriteriaPassesAll(t *testing.T) {
	items := []*core.Item{
		hotelItem("h1", &core.Hotel{City: "paris"}),
		hotelItem("h2", &core.Hotel{City: "nice"}),
	}
	out := runNode(t, &core.Criteria{}, items)
	if len(out) != 2 {
		t.Errorf("len = %d, want 2", len(out))
	}
}

func TestFilterCityCaseInsensitive(t *testing.T) {
	items := []*core.Item{
		hotelItem("h1", &core.Hotel{City: "Paris"}),
		hotelItem("h2", &core.Hotel{City: "nice"}),
	}
	out := runNode(t, &core.Criteria{City: "paris"}, items)
	if len(out) != 1 || out[0].ID != "h1" {
		t.Errorf("expected only Paris hotel, got %v", out)
	}
}

func TestFilterPriceRangeInclusive(t *testing.T) {
	items := []*core.Item{
		hotelItem("h1", &core.Hotel{Price: 100}),
		hotelItem("h2", &core.Hotel{Price: 200}),
		hotelItem("h3", &core.Hotel{Price: 201}),
	}
	out := runNode(t, &core.Criteria{PriceRange: &core.PriceRange{Min: ptr(100), Max: ptr(200)}}, items)
	if len(out) != 2 || out[0].ID != "h1" || out[1].ID != "h2" {
		t.Errorf("expected boundary prices kept, got %v", out)
	}
}

func TestFilterMinRatingKeepsThreshold(t *testing.T) {
	// 10 个酒店，minRating=4.0 留下 7 个
	var items []*core.Item
	ratings := []float64{3.2, 4.0, 4.1, 4.5, 3.9, 4.8, 4.2, 3.5, 4.0, 4.9}
	for i, r := range ratings {
		items = append(items, hotelItem(core.HotelID(fmt.Sprintf("h%d", i)), &core.Hotel{Rating: r}))
	}
	out := runNode(t, &core.Criteria{MinRating: ptr(4.0)}, items)
	if len(out) != 7 {
		t.Errorf("len = %d, want 7", len(out))
	}
	for _, it := range out {
		if it.Hotel.Rating < 4.0 {
			t.Errorf("hotel %s rating %v below threshold", it.ID, it.Hotel.Rating)
		}
	}
}

func TestFilterAmenitySuperset(t *testing.T) {
	items := []*core.Item{
		hotelItem("h1", &core.Hotel{Amenities: []string{"wifi", "pool", "spa"}}),
		hotelItem("h2", &core.Hotel{Amenities: []string{"wifi"}}),
	}
	out := runNode(t, &core.Criteria{Amenities: []string{"wifi", "spa"}}, items)
	if len(out) != 1 || out[0].ID != "h1" {
		t.Errorf("expected superset match only, got %v", out)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	items := []*core.Item{
		hotelItem("h1", &core.Hotel{City: "paris", Rating: 4.5}),
		hotelItem("h2", &core.Hotel{City: "nice", Rating: 4.8}),
		hotelItem("h3", &core.Hotel{City: "paris", Rating: 4.1}),
		hotelItem("h4", &core.Hotel{City: "paris", Rating: 3.0}),
	}
	out := runNode(t, &core.Criteria{City: "paris", MinRating: ptr(4.0)}, items)
	if len(out) != 2 || out[0].ID != "h1" || out[1].ID != "h3" {
		t.Errorf("relative order not preserved: %v", out)
	}
}

func TestFilterMissingHotelSnapshotDropped(t *testing.T) {
	bare := core.NewItem("h1") // 无快照
	out := runNode(t, &core.Criteria{City: "paris"}, []*core.Item{bare})
	if len(out) != 0 {
		t.Errorf("expected unverifiable item dropped, got %v", out)
	}
}

func TestFilterCELRule(t *testing.T) {
	items := []*core.Item{
		hotelItem("h1", &core.Hotel{Price: 150, Rating: 4.5}),
		hotelItem("h2", &core.Hotel{Price: 350, Rating: 4.8}),
		hotelItem("h3", &core.Hotel{Price: 120, Rating: 3.2}),
	}
	out := runNode(t, &core.Criteria{Rule: `hotel.price < 200.0 && hotel.rating >= 4.0`}, items)
	if len(out) != 1 || out[0].ID != "h1" {
		t.Errorf("rule filter wrong: %v", out)
	}
}

func TestFilterInvalidRuleFailsFast(t *testing.T) {
	if _, err := FromCriteria(&core.Criteria{Rule: `hotel.price <`}); err == nil {
		t.Errorf("expected compile error for malformed rule")
	}
}
