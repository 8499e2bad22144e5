package model

import (
	"testing"
	"time"

	"github.com/rushteam/stayrec/core"
)

func inter(user, hotel string, kind core.InteractionKind) *core.Interaction {
	return &core.Interaction{
		UserID:    core.UserID(user),
		HotelID:   core.HotelID(hotel),
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

func TestFitCollab_WeightAggregation(t *testing.T) {
	m := FitCollab([]*core.Interaction{
		inter("u1", "h1", core.InteractionView),
		inter("u1", "h1", core.InteractionClick),
		inter("u1", "h2", core.InteractionBooking),
		inter("u2", "h1", core.InteractionView),
	})

	if m.Len() != 2 {
		t.Fatalf("users = %d, want 2", m.Len())
	}
	if len(m.Hotels) != 2 {
		t.Fatalf("hotels = %d, want 2", len(m.Hotels))
	}

	// view(1) + click(2) = 3
	if got := m.Raw[0][0]; got != 3 {
		t.Errorf("u1/h1 = %v, want 3", got)
	}
	// booking(5)
	if got := m.Raw[0][1]; got != 5 {
		t.Errorf("u1/h2 = %v, want 5", got)
	}
	// 无交互 = 0（无信号）
	if got := m.Raw[1][1]; got != 0 {
		t.Errorf("u2/h2 = %v, want 0", got)
	}
}

func TestFitCollab_IgnoresInvalidKinds(t *testing.T) {
	m := FitCollab([]*core.Interaction{
		inter("u1", "h1", core.InteractionKind("share")),
		inter("u1", "h1", core.InteractionView),
	})
	if got := m.Raw[0][0]; got != 1 {
		t.Fatalf("u1/h1 = %v, want 1 (share must not contribute)", got)
	}
}

func TestCollabModel_UnknownUser(t *testing.T) {
	m := FitCollab([]*core.Interaction{inter("u1", "h1", core.InteractionView)})

	if _, err := m.Recommend("ghost", 5); err != ErrUnknownUser {
		t.Fatalf("err = %v, want ErrUnknownUser", err)
	}

	empty := FitCollab(nil)
	if _, err := empty.Recommend("u1", 5); err != ErrUnknownUser {
		t.Fatalf("empty model err = %v, want ErrUnknownUser", err)
	}
}

func TestCollabModel_RecommendsFromSimilarUsers(t *testing.T) {
	// u1 与 u2 的行为高度相似；u2 额外订过 h3，应推给 u1。
	// u3 行为完全不同，订过 h4。
	m := FitCollab([]*core.Interaction{
		inter("u1", "h1", core.InteractionBooking),
		inter("u1", "h2", core.InteractionClick),
		inter("u2", "h1", core.InteractionBooking),
		inter("u2", "h2", core.InteractionClick),
		inter("u2", "h3", core.InteractionBooking),
		inter("u3", "h4", core.InteractionBooking),
		inter("u3", "h5", core.InteractionBooking),
	})

	got, err := m.Recommend("u1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Fatal("no recommendations")
	}
	if got[0].HotelID != "h3" {
		t.Fatalf("top recommendation = %s, want h3", got[0].HotelID)
	}

	// 已交互的酒店绝不出现
	for _, s := range got {
		if s.HotelID == "h1" || s.HotelID == "h2" {
			t.Fatalf("already-interacted hotel %s recommended", s.HotelID)
		}
	}
}

func TestCollabModel_RequiresPositiveContributor(t *testing.T) {
	// h3 只有零分信号：任何邻居都没有正分贡献时不纳入结果
	m := FitCollab([]*core.Interaction{
		inter("u1", "h1", core.InteractionView),
		inter("u2", "h2", core.InteractionView),
	})

	got, err := m.Recommend("u1", 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range got {
		if s.Score <= 0 {
			t.Fatalf("non-positive score %v in results", s.Score)
		}
	}
}

func TestCollabModel_SnapshotRoundtripIndex(t *testing.T) {
	m := FitCollab([]*core.Interaction{
		inter("u1", "h1", core.InteractionBooking),
		inter("u2", "h1", core.InteractionView),
	})

	// 模拟从持久化快照恢复：只保留导出字段，重建索引
	restored := &CollabModel{
		Users:    m.Users,
		Hotels:   m.Hotels,
		Raw:      m.Raw,
		Scaler:   m.Scaler,
		FittedAt: m.FittedAt,
	}
	restored.BuildIndex()

	if !restored.HasUser("u1") || !restored.HasUser("u2") {
		t.Fatal("restored model lost users")
	}
	if _, err := restored.Recommend("u1", 5); err != nil {
		t.Fatalf("restored model recommend: %v", err)
	}
}
