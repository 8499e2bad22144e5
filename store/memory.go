package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rushteam/stayrec/core"
)

// MemoryDocStore 是内存实现的 core.DocStore，用于测试/开发/原型。
// 数据通过 Seed* 方法注入，进程重启后丢失。
type MemoryDocStore struct {
	mu           sync.RWMutex
	hotels       map[core.HotelID]*core.Hotel
	hotelOrder   []core.HotelID
	interactions []*core.Interaction
	preferences  map[core.UserID]*core.Preference
	bookings     map[core.UserID][]*core.Booking
}

func NewMemoryDocStore() *MemoryDocStore {
	return &MemoryDocStore{
		hotels:      make(map[core.HotelID]*core.Hotel),
		preferences: make(map[core.UserID]*core.Preference),
		bookings:    make(map[core.UserID][]*core.Booking),
	}
}

func (m *MemoryDocStore) Name() string { return "memory" }

// SeedHotels 注入酒店数据，保持传入顺序。
func (m *MemoryDocStore) SeedHotels(hotels ...*core.Hotel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range hotels {
		if _, ok := m.hotels[h.ID]; !ok {
			m.hotelOrder = append(m.hotelOrder, h.ID)
		}
		m.hotels[h.ID] = h
	}
}

// SeedInteractions 注入交互事件，保持传入顺序。
func (m *MemoryDocStore) SeedInteractions(interactions ...*core.Interaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactions = append(m.interactions, interactions...)
}

// SeedPreference 注入用户偏好。
func (m *MemoryDocStore) SeedPreference(userID core.UserID, pref *core.Preference) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preferences[userID] = pref
}

// SeedBookings 注入用户订单。
func (m *MemoryDocStore) SeedBookings(userID core.UserID, bookings ...*core.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[userID] = append(m.bookings[userID], bookings...)
}

func (m *MemoryDocStore) GetHotel(ctx context.Context, id core.HotelID) (*core.Hotel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.hotels[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return h, nil
}

func (m *MemoryDocStore) ListHotels(ctx context.Context) ([]*core.Hotel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hotels := make([]*core.Hotel, 0, len(m.hotelOrder))
	for _, id := range m.hotelOrder {
		hotels = append(hotels, m.hotels[id])
	}
	return hotels, nil
}

func (m *MemoryDocStore) ListInteractions(ctx context.Context) ([]*core.Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*core.Interaction, len(m.interactions))
	copy(out, m.interactions)
	return out, nil
}

func (m *MemoryDocStore) InteractionsSince(ctx context.Context, since time.Time) ([]*core.Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*core.Interaction
	for _, inter := range m.interactions {
		if inter.CreatedAt.After(since) {
			out = append(out, inter)
		}
	}
	return out, nil
}

func (m *MemoryDocStore) UserInteractions(ctx context.Context, userID core.UserID, since time.Time, limit int) ([]*core.Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*core.Interaction
	for _, inter := range m.interactions {
		if inter.UserID != userID {
			continue
		}
		if !since.IsZero() && !inter.CreatedAt.After(since) {
			continue
		}
		out = append(out, inter)
	}
	// 时间倒序，最新在前
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryDocStore) CountHotelInteractions(ctx context.Context, hotelID core.HotelID, since time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, inter := range m.interactions {
		if inter.HotelID != hotelID {
			continue
		}
		if !since.IsZero() && !inter.CreatedAt.After(since) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *MemoryDocStore) GetPreference(ctx context.Context, userID core.UserID) (*core.Preference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pref, ok := m.preferences[userID]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return pref, nil
}

func (m *MemoryDocStore) UserBookings(ctx context.Context, userID core.UserID, limit int) ([]*core.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	src := m.bookings[userID]
	out := make([]*core.Booking, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryDocStore) Close() error { return nil }

var _ core.DocStore = (*MemoryDocStore)(nil)

// MemoryStore 是内存实现的 core.Store（模型工件 KV），用于测试/开发。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

var _ core.Store = (*MemoryStore)(nil)
