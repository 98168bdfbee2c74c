package grouprequest

import (
	"context"
	"time"

	common_models "go-chat/internal/common/models"
	"go-chat/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GroupRequestRepository interface {
	Create(ctx context.Context, request *GroupRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*GroupRequest, error)
	FindByGroup(ctx context.Context, groupID primitive.ObjectID) ([]GroupRequest, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]GroupRequest, error)
	FindPending(ctx context.Context) ([]GroupRequest, error)
	FindPendingByGroupAndUser(ctx context.Context, groupID, userID primitive.ObjectID) (*GroupRequest, error)
	SetReview(ctx context.Context, id primitive.ObjectID, status string, reviewerID primitive.ObjectID, reviewedAt time.Time) error
	RejectOlderThan(ctx context.Context, cutoff time.Time, reviewedAt time.Time) (int64, error)
}

type GroupRequestRepositoryImpl struct {
	collection *mongo.Collection
}

func NewGroupRequestRepository(db *database.MongodbDB) GroupRequestRepository {
	return &GroupRequestRepositoryImpl{
		collection: db.DB.Collection("group_requests"),
	}
}

func (r *GroupRequestRepositoryImpl) Create(ctx context.Context, request *GroupRequest) error {
	request.RequestedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return err
	}

	request.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *GroupRequestRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*GroupRequest, error) {
	var request GroupRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *GroupRequestRepositoryImpl) FindByGroup(ctx context.Context, groupID primitive.ObjectID) ([]GroupRequest, error) {
	return r.find(ctx, bson.M{"group_id": groupID})
}

func (r *GroupRequestRepositoryImpl) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]GroupRequest, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *GroupRequestRepositoryImpl) FindPending(ctx context.Context) ([]GroupRequest, error) {
	return r.find(ctx, bson.M{"status": common_models.RequestStatusPending})
}

func (r *GroupRequestRepositoryImpl) FindPendingByGroupAndUser(ctx context.Context, groupID, userID primitive.ObjectID) (*GroupRequest, error) {
	var request GroupRequest
	err := r.collection.FindOne(ctx, bson.M{
		"group_id": groupID,
		"user_id":  userID,
		"status":   common_models.RequestStatusPending,
	}).Decode(&request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *GroupRequestRepositoryImpl) find(ctx context.Context, filter bson.M) ([]GroupRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	requests := []GroupRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *GroupRequestRepositoryImpl) SetReview(ctx context.Context, id primitive.ObjectID, status string, reviewerID primitive.ObjectID, reviewedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": reviewedAt,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// RejectOlderThan flips every pending request older than cutoff to rejected
// without a reviewer reference; the scheduler is the caller.
func (r *GroupRequestRepositoryImpl) RejectOlderThan(ctx context.Context, cutoff time.Time, reviewedAt time.Time) (int64, error) {
	filter := bson.M{
		"status":       common_models.RequestStatusPending,
		"requested_at": bson.M{"$lt": cutoff},
	}
	update := bson.M{
		"$set": bson.M{
			"status":      common_models.RequestStatusRejected,
			"reviewed_at": reviewedAt,
		},
	}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
