package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/rushteam/stayrec/core"
)

// MongoDocStore 是 MongoDB 实现的 core.DocStore。
// 酒店/交互/偏好/订单各占一个集合，引擎视角全部只读。
type MongoDocStore struct {
	client       *mongo.Client
	hotels       *mongo.Collection
	interactions *mongo.Collection
	preferences  *mongo.Collection
	bookings     *mongo.Collection
}

// NewMongoDocStore 连接 MongoDB 并校验连通性。
func NewMongoDocStore(ctx context.Context, uri, database string) (*MongoDocStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	db := client.Database(database)
	return &MongoDocStore{
		client:       client,
		hotels:       db.Collection("hotels"),
		interactions: db.Collection("userinteractions"),
		preferences:  db.Collection("userpreferences"),
		bookings:     db.Collection("bookings"),
	}, nil
}

func (m *MongoDocStore) Name() string { return "mongo" }

// BSON 文档结构与集合 schema 一一对应（见 backend 的 mongoose model），
// 与 core 领域类型解耦。领域层的 ID 是 ObjectId 的十六进制形式。

type hotelDoc struct {
	ID          bson.ObjectID `bson:"_id"`
	Name        string        `bson:"name"`
	Type        string        `bson:"type"`
	City        string        `bson:"city"`
	Address     string        `bson:"address"`
	Title       string        `bson:"title"`
	Desc        string        `bson:"desc"`
	Rating      float64       `bson:"rating"`
	Price       float64       `bson:"cheapestPrice"`
	Featured    bool          `bson:"featured"`
	Amenities   []string      `bson:"amenities"`
	Attractions []struct {
		Name     string `bson:"name"`
		Category string `bson:"category"`
	} `bson:"nearbyAttractions"`
	StarRating  int `bson:"starRating"`
	ReviewCount int `bson:"reviewCount"`
}

func (d *hotelDoc) toHotel() *core.Hotel {
	h := &core.Hotel{
		ID:          core.HotelID(d.ID.Hex()),
		Name:        d.Name,
		Type:        d.Type,
		City:        d.City,
		Address:     d.Address,
		Title:       d.Title,
		Desc:        d.Desc,
		Rating:      d.Rating,
		Price:       d.Price,
		Featured:    d.Featured,
		Amenities:   d.Amenities,
		StarRating:  d.StarRating,
		ReviewCount: d.ReviewCount,
	}
	for _, a := range d.Attractions {
		h.NearbyAttractions = append(h.NearbyAttractions, core.Attraction{
			Name:     a.Name,
			Category: a.Category,
		})
	}
	return h
}

type interactionDoc struct {
	UserID    bson.ObjectID `bson:"userId"`
	HotelID   bson.ObjectID `bson:"hotelId"`
	Kind      string        `bson:"interactionType"`
	CreatedAt time.Time     `bson:"createdAt"`
	Duration  int           `bson:"duration"`
}

func (d *interactionDoc) toInteraction() *core.Interaction {
	return &core.Interaction{
		UserID:    core.UserID(d.UserID.Hex()),
		HotelID:   core.HotelID(d.HotelID.Hex()),
		Kind:      core.InteractionKind(d.Kind),
		CreatedAt: d.CreatedAt,
		Duration:  d.Duration,
	}
}

type preferenceDoc struct {
	UserID bson.ObjectID `bson:"userId"`
	Cities []struct {
		City   string `bson:"city"`
		Weight int    `bson:"weight"`
	} `bson:"preferredCities"`
	Types []struct {
		Type   string `bson:"type"`
		Weight int    `bson:"weight"`
	} `bson:"preferredHotelTypes"`
	Amenities []struct {
		Amenity string `bson:"amenity"`
		Weight  int    `bson:"importance"`
	} `bson:"preferredAmenities"`
	PriceRange *struct {
		Min *float64 `bson:"min"`
		Max *float64 `bson:"max"`
	} `bson:"priceRange"`
	TravelStyle string `bson:"travelStyle"`
}

func (d *preferenceDoc) toPreference() *core.Preference {
	p := &core.Preference{TravelStyle: d.TravelStyle}
	for _, c := range d.Cities {
		p.Cities = append(p.Cities, core.WeightedCity{City: c.City, Weight: c.Weight})
	}
	for _, t := range d.Types {
		p.Types = append(p.Types, core.WeightedType{Type: t.Type, Weight: t.Weight})
	}
	for _, a := range d.Amenities {
		p.Amenities = append(p.Amenities, core.WeightedAmenity{Amenity: a.Amenity, Weight: a.Weight})
	}
	if d.PriceRange != nil {
		p.PriceRange = &core.PriceRange{Min: d.PriceRange.Min, Max: d.PriceRange.Max}
	}
	return p
}

type bookingDoc struct {
	UserID      bson.ObjectID `bson:"userId"`
	HotelID     bson.ObjectID `bson:"hotelId"`
	TotalAmount float64       `bson:"totalAmount"`
	Status      string        `bson:"status"`
	CreatedAt   time.Time     `bson:"createdAt"`
	Rating      struct {
		Overall float64 `bson:"overall"`
	} `bson:"rating"`
}

func (d *bookingDoc) toBooking() *core.Booking {
	return &core.Booking{
		UserID:      core.UserID(d.UserID.Hex()),
		HotelID:     core.HotelID(d.HotelID.Hex()),
		TotalAmount: d.TotalAmount,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		Rating:      core.BookingRating{Overall: d.Rating.Overall},
	}
}

// objectID 把领域层的十六进制 ID 转回 ObjectId。
// 非法的十六进制串不可能命中任何文档。
func objectID(s string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(s)
	return oid, err == nil
}

func (m *MongoDocStore) GetHotel(ctx context.Context, id core.HotelID) (*core.Hotel, error) {
	oid, ok := objectID(string(id))
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	var doc hotelDoc
	err := m.hotels.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, core.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toHotel(), nil
}

func (m *MongoDocStore) ListHotels(ctx context.Context) ([]*core.Hotel, error) {
	cur, err := m.hotels.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []hotelDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	hotels := make([]*core.Hotel, 0, len(docs))
	for i := range docs {
		hotels = append(hotels, docs[i].toHotel())
	}
	return hotels, nil
}

func (m *MongoDocStore) ListInteractions(ctx context.Context) ([]*core.Interaction, error) {
	return m.findInteractions(ctx, bson.M{})
}

func (m *MongoDocStore) InteractionsSince(ctx context.Context, since time.Time) ([]*core.Interaction, error) {
	return m.findInteractions(ctx, bson.M{"createdAt": bson.M{"$gt": since}})
}

func (m *MongoDocStore) findInteractions(ctx context.Context, filter bson.M) ([]*core.Interaction, error) {
	cur, err := m.interactions.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var docs []interactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*core.Interaction, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toInteraction())
	}
	return out, nil
}

func (m *MongoDocStore) UserInteractions(ctx context.Context, userID core.UserID, since time.Time, limit int) ([]*core.Interaction, error) {
	oid, ok := objectID(string(userID))
	if !ok {
		return nil, nil
	}
	filter := bson.M{"userId": oid}
	if !since.IsZero() {
		filter["createdAt"] = bson.M{"$gt": since}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := m.interactions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []interactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*core.Interaction, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toInteraction())
	}
	return out, nil
}

func (m *MongoDocStore) CountHotelInteractions(ctx context.Context, hotelID core.HotelID, since time.Time) (int64, error) {
	oid, ok := objectID(string(hotelID))
	if !ok {
		return 0, nil
	}
	filter := bson.M{"hotelId": oid}
	if !since.IsZero() {
		filter["createdAt"] = bson.M{"$gt": since}
	}
	return m.interactions.CountDocuments(ctx, filter)
}

func (m *MongoDocStore) GetPreference(ctx context.Context, userID core.UserID) (*core.Preference, error) {
	oid, ok := objectID(string(userID))
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	var doc preferenceDoc
	err := m.preferences.FindOne(ctx, bson.M{"userId": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, core.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toPreference(), nil
}

func (m *MongoDocStore) UserBookings(ctx context.Context, userID core.UserID, limit int) ([]*core.Booking, error) {
	oid, ok := objectID(string(userID))
	if !ok {
		return nil, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := m.bookings.Find(ctx, bson.M{"userId": oid}, opts)
	if err != nil {
		return nil, err
	}
	var docs []bookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*core.Booking, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toBooking())
	}
	return out, nil
}

func (m *MongoDocStore) Close() error {
	return m.client.Disconnect(context.Background())
}

var _ core.DocStore = (*MongoDocStore)(nil)
