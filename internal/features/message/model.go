package message

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a single chat message posted to a channel. The author reference
// is immutable after creation; edits only touch the content and the edited
// flag.
type Message struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	UserID    primitive.ObjectID `json:"userId" bson:"user_id"`
	ChannelID primitive.ObjectID `json:"channelId" bson:"channel_id"`
	Type      string             `json:"type" bson:"type"` // text | file
	Edited    bool               `json:"edited" bson:"edited"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
