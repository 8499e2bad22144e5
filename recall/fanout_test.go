package recall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rushteam/stayrec/core"
)

type stubSource struct {
	name  string
	items []*core.Item
	err   error
	delay time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.items, s.err
}

func contentItem(id core.HotelID, score float64) *core.Item {
	it := core.NewItem(id)
	it.Components.Content = score
	it.Components.HasContent = true
	return it
}

func collabItem(id core.HotelID, score float64) *core.Item {
	it := core.NewItem(id)
	it.Components.Collab = score
	it.Components.HasCollab = true
	return it
}

func TestFanoutMergeOrderDeterministic(t *testing.T) {
	// 第一个源更慢，合并顺序仍然必须按源顺序
	n := &Fanout{Sources: []Source{
		&stubSource{name: "content", delay: 20 * time.Millisecond, items: []*core.Item{contentItem("h1", 0.9), contentItem("h2", 0.5)}},
		&stubSource{name: "collab", items: []*core.Item{collabItem("h3", 4.2)}},
	}}

	for i := 0; i < 5; i++ {
		out, err := n.Process(context.Background(), &core.RecommendContext{UserID: "u1"}, nil)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if len(out) != 3 || out[0].ID != "h1" || out[1].ID != "h2" || out[2].ID != "h3" {
			t.Fatalf("run %d: unexpected order %v", i, ids(out))
		}
	}
}

func TestFanoutMergesDuplicateComponents(t *testing.T) {
	n := &Fanout{Sources: []Source{
		&stubSource{name: "content", items: []*core.Item{contentItem("h1", 0.8)}},
		&stubSource{name: "collab", items: []*core.Item{collabItem("h1", 3.5), collabItem("h2", 1.0)}},
	}}

	out, err := n.Process(context.Background(), &core.RecommendContext{UserID: "u1"}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	h1 := out[0]
	if h1.ID != "h1" {
		t.Fatalf("first item = %s, want h1", h1.ID)
	}
	if !h1.Components.HasContent || h1.Components.Content != 0.8 {
		t.Errorf("content component lost: %+v", h1.Components)
	}
	if !h1.Components.HasCollab || h1.Components.Collab != 3.5 {
		t.Errorf("collab component not merged: %+v", h1.Components)
	}
}

func TestFanoutDegradesOnSourceError(t *testing.T) {
	n := &Fanout{Sources: []Source{
		&stubSource{name: "content", err: errors.New("model unavailable")},
		&stubSource{name: "collab", items: []*core.Item{collabItem("h1", 2.0)}},
	}}

	rctx := &core.RecommendContext{UserID: "u1"}
	out, err := n.Process(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 || out[0].ID != "h1" {
		t.Fatalf("surviving source not merged: %v", ids(out))
	}
	lbl, ok := rctx.GetLabel(DegradedLabel)
	if !ok || lbl.Value == "" {
		t.Errorf("expected degraded label for failed source")
	}
}

func TestFanoutTimeoutDegrades(t *testing.T) {
	n := &Fanout{
		Timeout: 10 * time.Millisecond,
		Sources: []Source{
			&stubSource{name: "content", delay: 200 * time.Millisecond, items: []*core.Item{contentItem("h1", 0.9)}},
			&stubSource{name: "collab", items: []*core.Item{collabItem("h2", 2.0)}},
		},
	}

	rctx := &core.RecommendContext{UserID: "u1"}
	out, err := n.Process(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 || out[0].ID != "h2" {
		t.Fatalf("expected only fast source, got %v", ids(out))
	}
	if _, ok := rctx.GetLabel(DegradedLabel); !ok {
		t.Errorf("expected degraded label after timeout")
	}
}

func ids(items []*core.Item) []core.HotelID {
	out := make([]core.HotelID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
