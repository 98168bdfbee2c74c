package message

import (
	"context"
	"time"

	"go-chat/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchFilter narrows a content search; nil references leave the
// corresponding dimension unfiltered.
type SearchFilter struct {
	Query     string
	ChannelID *primitive.ObjectID
	UserID    *primitive.ObjectID
	Limit     int64
	Offset    int64
}

type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Message, error)
	FindByChannel(ctx context.Context, channelID primitive.ObjectID, limit, offset int64) ([]Message, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]Message, error)
	Search(ctx context.Context, filter SearchFilter) ([]Message, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error)
}

type MessageRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMessageRepository(db *database.MongodbDB) MessageRepository {
	return &MessageRepositoryImpl{
		collection: db.DB.Collection("messages"),
	}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *Message) error {
	message.CreatedAt = time.Now()
	message.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return err
	}

	message.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MessageRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Message, error) {
	var message Message
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// pageOpts sorts newest-first so a page of chat history reads back from the
// most recent message.
func pageOpts(limit, offset int64) *options.FindOptions {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if offset > 0 {
		opts.SetSkip(offset)
	}
	opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	return opts
}

func (r *MessageRepositoryImpl) FindByChannel(ctx context.Context, channelID primitive.ObjectID, limit, offset int64) ([]Message, error) {
	return r.find(ctx, bson.M{"channel_id": channelID}, limit, offset)
}

func (r *MessageRepositoryImpl) FindByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]Message, error) {
	return r.find(ctx, bson.M{"user_id": userID}, limit, offset)
}

func (r *MessageRepositoryImpl) Search(ctx context.Context, filter SearchFilter) ([]Message, error) {
	query := bson.M{
		"content": primitive.Regex{Pattern: filter.Query, Options: "i"},
	}
	if filter.ChannelID != nil {
		query["channel_id"] = *filter.ChannelID
	}
	if filter.UserID != nil {
		query["user_id"] = *filter.UserID
	}

	return r.find(ctx, query, filter.Limit, filter.Offset)
}

func (r *MessageRepositoryImpl) find(ctx context.Context, filter bson.M, limit, offset int64) ([]Message, error) {
	cursor, err := r.collection.Find(ctx, filter, pageOpts(limit, offset))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *MessageRepositoryImpl) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error {
	update := bson.M{
		"$set": bson.M{
			"content":    content,
			"edited":     true,
			"updated_at": time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *MessageRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *MessageRepositoryImpl) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *MessageRepositoryImpl) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
}

func (r *MessageRepositoryImpl) CountByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"channel_id": channelID})
}
