package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DeepaShriSG/EcomBE/models"
)

// ProductUpdate carries the fields an edit may change; nil means "leave as is".
type ProductUpdate struct {
	ProductTitle *string   `json:"ProductTitle"`
	ProductCode  *string   `json:"ProductCode"`
	Brand        *string   `json:"brand"`
	ImgURL       *[]string `json:"imgurl"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	Stock        *int      `json:"stock"`
	Category     *string   `json:"category"`
	Offer        *bool     `json:"offer"`
	Availability *bool     `json:"Availability"`
}

// ProductFilter matches a product on any of the provided fields.
type ProductFilter struct {
	ID           *primitive.ObjectID
	ProductTitle *string
	Price        *float64
	Category     *string
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, upd ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Filter(ctx context.Context, f ProductFilter) (*models.Product, error)
	ReserveStock(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, quantity int) error
}

type MongoProductStore struct {
	col *mongo.Collection
}

func NewProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{col: db.Collection("Product")}
}

func (s *MongoProductStore) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, product)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("create product: %w", ErrDuplicate)
	}
	return err
}

func (s *MongoProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *MongoProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoProductStore) Update(ctx context.Context, id primitive.ObjectID, upd ProductUpdate) (*models.Product, error) {
	set := bson.M{}
	if upd.ProductTitle != nil {
		set["ProductTitle"] = *upd.ProductTitle
	}
	if upd.ProductCode != nil {
		set["ProductCode"] = *upd.ProductCode
	}
	if upd.Brand != nil {
		set["brand"] = *upd.Brand
	}
	if upd.ImgURL != nil {
		set["imgurl"] = *upd.ImgURL
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Offer != nil {
		set["offer"] = *upd.Offer
	}
	if upd.Availability != nil {
		set["Availability"] = *upd.Availability
	}

	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}

	var product models.Product
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *MongoProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProductStore) Filter(ctx context.Context, f ProductFilter) (*models.Product, error) {
	var or []bson.M
	if f.ID != nil {
		or = append(or, bson.M{"_id": *f.ID})
	}
	if f.ProductTitle != nil {
		or = append(or, bson.M{"ProductTitle": *f.ProductTitle})
	}
	if f.Price != nil {
		or = append(or, bson.M{"price": *f.Price})
	}
	if f.Category != nil {
		or = append(or, bson.M{"category": *f.Category})
	}
	if len(or) == 0 {
		return nil, ErrNotFound
	}

	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"$or": or}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ReserveStock decrements stock and records the buyer in a single conditional
// update, so stock cannot go below zero under concurrent fulfillment. The
// filter only matches when at least quantity units remain.
func (s *MongoProductStore) ReserveStock(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, quantity int) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": quantity}},
		bson.M{
			"$inc":  bson.M{"stock": -quantity},
			"$push": bson.M{"orders": models.ProductOrder{User: userID, Quantity: quantity}},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// No match: tell a missing product apart from one that is out of stock.
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return ErrInsufficientStock
}
