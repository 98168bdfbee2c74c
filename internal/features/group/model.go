package group

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group represents a team with an owner and a member list
type Group struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	IsPrivate   bool                 `json:"isPrivate" bson:"is_private"`
	IsActive    bool                 `json:"isActive" bson:"is_active"`
	OwnerID     primitive.ObjectID   `json:"ownerId" bson:"owner_id"`
	Members     []primitive.ObjectID `json:"members" bson:"members"` // User IDs
	CreatedAt   time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updated_at"`
}
