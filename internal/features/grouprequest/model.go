package grouprequest

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupRequest records a user asking to join a group. Group name and
// username are denormalized at creation time so request listings render
// without extra lookups; they are snapshots, not live references.
type GroupRequest struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	GroupID     primitive.ObjectID  `json:"groupId" bson:"group_id"`
	GroupName   string              `json:"groupName" bson:"group_name"`
	UserID      primitive.ObjectID  `json:"userId" bson:"user_id"`
	Username    string              `json:"username" bson:"username"`
	Type        string              `json:"type" bson:"type"`     // register_interest | request_invite
	Status      string              `json:"status" bson:"status"` // pending | approved | rejected
	Message     string              `json:"message,omitempty" bson:"message,omitempty"`
	RequestedAt time.Time           `json:"requestedAt" bson:"requested_at"`
	ReviewedBy  *primitive.ObjectID `json:"reviewedBy,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time          `json:"reviewedAt,omitempty" bson:"reviewed_at,omitempty"`
}
