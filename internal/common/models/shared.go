package models

import (
	"time"
)

// Role names as stored on the user document
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Request types for group join requests
const (
	RequestTypeRegisterInterest = "register_interest"
	RequestTypeRequestInvite    = "request_invite"
)

// Group request statuses. The only legal transitions are
// pending -> approved and pending -> rejected.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Message types
const (
	MessageTypeText = "text"
	MessageTypeFile = "file"
)

// Log is the record shape written to the "logs" collection by the
// async zap writer.
type Log struct {
	AppId        string    `bson:"app_id" json:"app_id"`
	Message      string    `bson:"message" json:"message"`
	IpAddress    string    `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserID       string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	LogLevel     string    `bson:"log_level" json:"log_level"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
