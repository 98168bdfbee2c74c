package channel

import (
	"context"
	"time"

	"go-chat/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ChannelRepository interface {
	Create(ctx context.Context, channel *Channel) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Channel, error)
	FindByGroup(ctx context.Context, groupID primitive.ObjectID) ([]Channel, error)
	Update(ctx context.Context, id primitive.ObjectID, channel *Channel) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type ChannelRepositoryImpl struct {
	collection *mongo.Collection
}

func NewChannelRepository(db *database.MongodbDB) ChannelRepository {
	return &ChannelRepositoryImpl{
		collection: db.DB.Collection("channels"),
	}
}

func (r *ChannelRepositoryImpl) Create(ctx context.Context, channel *Channel) error {
	channel.CreatedAt = time.Now()
	channel.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, channel)
	if err != nil {
		return err
	}

	channel.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ChannelRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Channel, error) {
	var channel Channel
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&channel)
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepositoryImpl) FindByGroup(ctx context.Context, groupID primitive.ObjectID) ([]Channel, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var channels []Channel
	if err := cursor.All(ctx, &channels); err != nil {
		return nil, err
	}

	return channels, nil
}

func (r *ChannelRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, channel *Channel) error {
	channel.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":        channel.Name,
			"description": channel.Description,
			"is_private":  channel.IsPrivate,
			"updated_at":  channel.UpdatedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *ChannelRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *ChannelRepositoryImpl) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountActive counts public channels; channels carry no separate active flag
func (r *ChannelRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"is_private": false})
}
