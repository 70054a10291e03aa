package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/DeepaShriSG/EcomBE/models"
)

// UserStore is the persistence surface the handlers depend on. The Mongo
// implementation below is the only production one; tests substitute fakes.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	AddToCart(ctx context.Context, userID primitive.ObjectID, item models.CartItem) error
	SetPassword(ctx context.Context, userID primitive.ObjectID, hash string) error
	SetOTP(ctx context.Context, userID primitive.ObjectID, code string) error
	ClearOTP(ctx context.Context, userID primitive.ObjectID) error
	HasOrderWithPayment(ctx context.Context, userID primitive.ObjectID, paymentID string) (bool, error)
	CompleteOrder(ctx context.Context, userID primitive.ObjectID, order models.Order) error
	ToggleWishlist(ctx context.Context, userID primitive.ObjectID, productID primitive.ObjectID) (bool, error)
}

type MongoUserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection("user")}
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("create user: %w", ErrDuplicate)
	}
	return err
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUserStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"phonenumber": phone})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddToCart merges a line into the cart: an existing line for the same
// product gets its quantity incremented and its price replaced, otherwise a
// new line is pushed. Both steps are single positional updates.
func (s *MongoUserStore) AddToCart(ctx context.Context, userID primitive.ObjectID, item models.CartItem) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.product": item.Product},
		bson.M{
			"$inc": bson.M{"cart.$.quantity": item.Quantity},
			"$set": bson.M{"cart.$.price": item.Price},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = s.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"cart": item}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) SetPassword(ctx context.Context, userID primitive.ObjectID, hash string) error {
	return s.setField(ctx, userID, "password", hash)
}

func (s *MongoUserStore) SetOTP(ctx context.Context, userID primitive.ObjectID, code string) error {
	return s.setField(ctx, userID, "otp", code)
}

func (s *MongoUserStore) ClearOTP(ctx context.Context, userID primitive.ObjectID) error {
	return s.setField(ctx, userID, "otp", "")
}

func (s *MongoUserStore) setField(ctx context.Context, userID primitive.ObjectID, field string, value interface{}) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) HasOrderWithPayment(ctx context.Context, userID primitive.ObjectID, paymentID string) (bool, error) {
	err := s.col.FindOne(ctx, bson.M{
		"_id":              userID,
		"orders.paymentId": paymentID,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CompleteOrder clears the cart and appends the order entry in one update.
func (s *MongoUserStore) CompleteOrder(ctx context.Context, userID primitive.ObjectID, order models.Order) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$set":  bson.M{"cart": []models.CartItem{}},
			"$push": bson.M{"orders": order},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleWishlist removes the product if present, adds it otherwise. Returns
// true when the product was added.
func (s *MongoUserStore) ToggleWishlist(ctx context.Context, userID primitive.ObjectID, productID primitive.ObjectID) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID, "wishlist": productID},
		bson.M{"$pull": bson.M{"wishlist": productID}},
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount > 0 {
		return false, nil
	}

	res, err = s.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"wishlist": productID}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return true, nil
}
