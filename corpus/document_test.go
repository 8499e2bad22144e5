package corpus

import (
	"strings"
	"testing"

	"github.com/rushteam/stayrec/core"
)

func TestBuildDocument_Deterministic(t *testing.T) {
	h := &core.Hotel{
		ID:        "h1",
		Name:      "Grand Plaza",
		Type:      "hotel",
		City:      "paris",
		Desc:      "elegant rooms near the river",
		Title:     "Grand Plaza Paris",
		Rating:    4.2,
		Amenities: []string{"wifi", "spa"},
		NearbyAttractions: []core.Attraction{
			{Name: "Louvre", Category: "museum"},
		},
	}

	first := BuildDocument(h)
	second := BuildDocument(h)
	if first != second {
		t.Fatalf("document not deterministic:\n%q\n%q", first, second)
	}

	want := "Grand Plaza hotel paris elegant rooms near the river Grand Plaza Paris wifi spa Louvre museum very good quality"
	if first != want {
		t.Fatalf("document = %q, want %q", first, want)
	}
}

func TestBuildDocument_SkipsEmptyFields(t *testing.T) {
	h := &core.Hotel{
		ID:     "h2",
		Name:   "Budget Inn",
		Rating: 4.6,
	}

	doc := BuildDocument(h)
	if !strings.HasSuffix(doc, "excellent luxury premium") {
		t.Fatalf("document should end with the rating tier, got %q", doc)
	}
	if strings.Contains(doc, "  ") {
		t.Fatalf("document contains empty tokens: %q", doc)
	}
	if doc != "Budget Inn excellent luxury premium" {
		t.Fatalf("document = %q", doc)
	}
}

func TestBuildDocument_Nil(t *testing.T) {
	if got := BuildDocument(nil); got != "" {
		t.Fatalf("nil hotel should yield empty document, got %q", got)
	}
}

func TestRatingTier_Partition(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{5.0, "excellent luxury premium"},
		{4.5, "excellent luxury premium"}, // boundary selects higher tier
		{4.49, "very good quality"},
		{4.0, "very good quality"},
		{3.99, "good standard"},
		{3.5, "good standard"},
		{3.49, "budget economy"},
		{0, "budget economy"},
		{-1, "budget economy"},
	}
	for _, tt := range tests {
		if got := RatingTier(tt.rating); got != tt.want {
			t.Errorf("RatingTier(%v) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestRatingTier_ExactlyOneTier(t *testing.T) {
	tiers := []string{
		"excellent luxury premium",
		"very good quality",
		"good standard",
		"budget economy",
	}
	for r := 0.0; r <= 5.0; r += 0.1 {
		got := RatingTier(r)
		matches := 0
		for _, tier := range tiers {
			if got == tier {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("RatingTier(%v) = %q matched %d tiers", r, got, matches)
		}
	}
}
