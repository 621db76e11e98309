package models

import "time"

// Provider account statuses (admin approval pipeline).
const (
	ProviderStatusPending  = "pending"
	ProviderStatusApproved = "approved"
	ProviderStatusRejected = "rejected"
)

// Provider presence states shown to customers.
const (
	AvailabilityOnline  = "online"
	AvailabilityBusy    = "busy"
	AvailabilityOffline = "offline"
)

// Provider represents a ceremonial-service provider (priest, decorator,
// caterer, photographer, ...) owned by a single user account.
type Provider struct {
	ID                 string    `bson:"id" json:"id"`
	UserID             string    `bson:"user_id" json:"userId"`
	BusinessName       string    `bson:"business_name" json:"businessName"`
	ServiceType        string    `bson:"service_type,omitempty" json:"serviceType,omitempty"`
	Status             string    `bson:"status" json:"status"`
	Verified           bool      `bson:"verified" json:"verified"`
	DocumentsVerified  bool      `bson:"documents_verified" json:"documentsVerified"`
	AvailabilityStatus string    `bson:"availability_status" json:"availabilityStatus"`
	FCMToken           string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt          time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updatedAt"`
}
