package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"feedbackpro/internal/model"
)

// AccountRepo handles MongoDB operations for accounts
type AccountRepo interface {
	Create(ctx context.Context, account *model.Account) (string, error)
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}

type accountRepo struct {
	collection *mongo.Collection
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(db *mongo.Database) AccountRepo {
	return &accountRepo{
		collection: db.Collection("accounts"),
	}
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) (string, error) {
	account.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, account)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	account.ID = oid.Hex()
	return account.ID, nil
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var account model.Account
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	account.ID = id
	return &account, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
