package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feedbackpro/internal/model"
)

// ResponseRepo handles MongoDB operations for survey responses. Responses
// are append-only: there is no update method.
type ResponseRepo interface {
	Create(ctx context.Context, response *model.SurveyResponse) (string, error)
	GetByID(ctx context.Context, id string) (*model.SurveyResponse, error)
	GetBySurveyID(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error)
	// GetBySurveyIDs returns responses for the given surveys submitted
	// within [from, to]. Zero bounds are open-ended.
	GetBySurveyIDs(ctx context.Context, surveyIDs []string, from, to time.Time) ([]*model.SurveyResponse, error)
	CountBySurveyID(ctx context.Context, surveyID string) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) Create(ctx context.Context, response *model.SurveyResponse) (string, error) {
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, response)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	response.ID = oid.Hex()
	return response.ID, nil
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.SurveyResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var response model.SurveyResponse
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	response.ID = id
	return &response, nil
}

func (r *responseRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.SurveyResponse
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) GetBySurveyIDs(ctx context.Context, surveyIDs []string, from, to time.Time) ([]*model.SurveyResponse, error) {
	filter := bson.M{"surveyId": bson.M{"$in": surveyIDs}}

	submitted := bson.M{}
	if !from.IsZero() {
		submitted["$gte"] = from
	}
	if !to.IsZero() {
		submitted["$lte"] = to
	}
	if len(submitted) > 0 {
		filter["submittedAt"] = submitted
	}

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.SurveyResponse
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) CountBySurveyID(ctx context.Context, surveyID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"surveyId": surveyID})
}
