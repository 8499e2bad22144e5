// Package profile 把用户偏好与行为历史折叠成内容召回的查询文本，
// 并提供画像分析（偏好倾向 + 行为统计）。
package profile

import (
	"context"
	"strings"
	"time"

	"github.com/rushteam/stayrec/core"
	"github.com/rushteam/stayrec/corpus"
)

// 查询构建参数
const (
	// HistoryWindow 参与画像的行为历史窗口
	HistoryWindow = 90 * 24 * time.Hour

	// MaxHistory 参与画像的最大行为条数
	MaxHistory = 50

	// travelStyleRepeat 出行风格的重复次数（权重放大）
	travelStyleRepeat = 3

	// bookingRepeat 预订过的酒店文档重复次数
	bookingRepeat = 3
)

// Builder 构建用户的查询文本。词频即权重：偏好项按权重重复，
// 预订过的酒店文档重复 3 份，浏览/点击 1 份。
type Builder struct {
	Store core.DocStore
	Now   func() time.Time
}

func NewBuilder(store core.DocStore) *Builder {
	return &Builder{Store: store, Now: time.Now}
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// BuildQuery 折叠偏好 + 近 90 天行为（≤50 条）成查询文本。
// 偏好不存在按空偏好处理，不报错。返回空串表示无画像（冷启动）。
func (b *Builder) BuildQuery(ctx context.Context, userID core.UserID) (string, error) {
	var parts []string

	pref, err := b.Store.GetPreference(ctx, userID)
	if err != nil && !core.IsStoreNotFound(err) {
		return "", err
	}
	if pref != nil {
		parts = append(parts, preferenceTerms(pref)...)
	}

	inters, err := b.Store.UserInteractions(ctx, userID, b.now().Add(-HistoryWindow), MaxHistory)
	if err != nil {
		return "", err
	}
	for _, inter := range inters {
		hotel, err := b.Store.GetHotel(ctx, inter.HotelID)
		if core.IsStoreNotFound(err) {
			continue
		}
		if err != nil {
			return "", err
		}
		doc := corpus.BuildDocument(hotel)
		if doc == "" {
			continue
		}
		repeat := 1
		if inter.Kind == core.InteractionBooking {
			repeat = bookingRepeat
		}
		for i := 0; i < repeat; i++ {
			parts = append(parts, doc)
		}
	}

	return strings.Join(parts, " "), nil
}

func preferenceTerms(pref *core.Preference) []string {
	var parts []string
	for _, c := range pref.Cities {
		for i := 0; i < max(c.Weight, 1); i++ {
			parts = append(parts, c.City)
		}
	}
	for _, t := range pref.Types {
		for i := 0; i < max(t.Weight, 1); i++ {
			parts = append(parts, t.Type)
		}
	}
	for _, a := range pref.Amenities {
		for i := 0; i < max(a.Weight, 1); i++ {
			parts = append(parts, a.Amenity)
		}
	}
	if pref.TravelStyle != "" {
		for i := 0; i < travelStyleRepeat; i++ {
			parts = append(parts, pref.TravelStyle)
		}
	}
	return parts
}
