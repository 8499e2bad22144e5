package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/stayrec/core"
)

func typedItem(id core.HotelID, typ string) *core.Item {
	it := core.NewItem(id)
	it.Hotel = &core.Hotel{ID: id, Type: typ}
	return it
}

func TestTopNTruncates(t *testing.T) {
	items := []*core.Item{core.NewItem("h1"), core.NewItem("h2"), core.NewItem("h3")}

	n := &TopNNode{N: 2}
	out, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 2 || out[0].ID != "h1" || out[1].ID != "h2" {
		t.Errorf("got %v", out)
	}
}

func TestTopNNoTruncationWhenShort(t *testing.T) {
	items := []*core.Item{core.NewItem("h1")}
	n := &TopNNode{N: 5}
	out, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("len = %d, want 1", len(out))
	}
}

func TestDiversityCapsPerType(t *testing.T) {
	items := []*core.Item{
		typedItem("h1", "hotel"),
		typedItem("h2", "hotel"),
		typedItem("h3", "hotel"),
		typedItem("h4", "resort"),
	}
	n := &Diversity{MaxPerType: 2}
	out, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 3 || out[0].ID != "h1" || out[1].ID != "h2" || out[2].ID != "h4" {
		t.Errorf("got %v", out)
	}
}

func TestDiversityDisabledByDefault(t *testing.T) {
	items := []*core.Item{typedItem("h1", "hotel"), typedItem("h2", "hotel")}
	n := &Diversity{}
	out, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("len = %d, want 2", len(out))
	}
}
