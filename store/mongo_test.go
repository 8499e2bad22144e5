package store

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// 字段名以 backend 的 mongoose schema 为准，文档镜像必须原样解码，
// 解出零值意味着线上静默丢数据。

func decodeInto(t *testing.T, doc bson.M, out any) {
	t.Helper()
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
}

func TestHotelDocDecodesSchema(t *testing.T) {
	oid := bson.NewObjectID()
	var doc hotelDoc
	decodeInto(t, bson.M{
		"_id":           oid,
		"name":          "Grand Palace",
		"type":          "hotel",
		"city":          "paris",
		"title":         "Luxury stay",
		"desc":          "luxury suites near the louvre",
		"rating":        4.7,
		"cheapestPrice": 450.0,
		"amenities":     []string{"wifi", "spa"},
	}, &doc)

	h := doc.toHotel()
	if string(h.ID) != oid.Hex() {
		t.Errorf("ID = %s, want %s", h.ID, oid.Hex())
	}
	if h.Desc != "luxury suites near the louvre" {
		t.Errorf("Desc = %q, desc field must decode", h.Desc)
	}
	if h.Price != 450 {
		t.Errorf("Price = %v, cheapestPrice field must decode", h.Price)
	}
}

func TestInteractionDocDecodesSchema(t *testing.T) {
	user, hotel := bson.NewObjectID(), bson.NewObjectID()
	var doc interactionDoc
	decodeInto(t, bson.M{
		"userId":          user,
		"hotelId":         hotel,
		"interactionType": "click",
		"createdAt":       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}, &doc)

	inter := doc.toInteraction()
	if string(inter.Kind) != "click" {
		t.Fatalf("Kind = %q, interactionType field must decode", inter.Kind)
	}
	if !inter.Kind.Valid() {
		t.Errorf("decoded kind %q must pass validity check", inter.Kind)
	}
	if string(inter.UserID) != user.Hex() || string(inter.HotelID) != hotel.Hex() {
		t.Errorf("ids = %s/%s, want hex of ObjectIds", inter.UserID, inter.HotelID)
	}
}

func TestPreferenceDocDecodesSchema(t *testing.T) {
	var doc preferenceDoc
	decodeInto(t, bson.M{
		"userId": bson.NewObjectID(),
		"preferredCities": []bson.M{
			{"city": "paris", "weight": 2},
		},
		"preferredHotelTypes": []bson.M{
			{"type": "resort", "weight": 3},
		},
		"preferredAmenities": []bson.M{
			{"amenity": "spa", "importance": 4},
		},
		"priceRange":  bson.M{"min": 100.0, "max": 400.0},
		"travelStyle": "luxury",
	}, &doc)

	p := doc.toPreference()
	if len(p.Types) != 1 || p.Types[0].Type != "resort" || p.Types[0].Weight != 3 {
		t.Errorf("Types = %+v, preferredHotelTypes must decode", p.Types)
	}
	if len(p.Amenities) != 1 || p.Amenities[0].Weight != 4 {
		t.Errorf("Amenities = %+v, importance must decode as weight", p.Amenities)
	}
	if p.PriceRange == nil || p.PriceRange.Min == nil || *p.PriceRange.Min != 100 {
		t.Errorf("PriceRange = %+v, nested priceRange must decode", p.PriceRange)
	}
	if p.TravelStyle != "luxury" {
		t.Errorf("TravelStyle = %q", p.TravelStyle)
	}
}

func TestObjectIDRejectsForeignIDs(t *testing.T) {
	if _, ok := objectID("not-an-objectid"); ok {
		t.Error("expected invalid hex to be rejected")
	}
	if _, ok := objectID(bson.NewObjectID().Hex()); !ok {
		t.Error("expected hex roundtrip to parse")
	}
}
