package channel

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Channel is a conversation stream inside a group
type Channel struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	GroupID     primitive.ObjectID `json:"groupId" bson:"group_id"`
	IsPrivate   bool               `json:"isPrivate" bson:"is_private"`
	CreatedBy   primitive.ObjectID `json:"createdBy" bson:"created_by"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}
