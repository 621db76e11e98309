package inquiryRepo

import (
	"context"
	"errors"

	"ceremo/database"
	"ceremo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no conversation matches the given ID.
var ErrNotFound = errors.New("inquiry conversation not found")

// InquiryRepository defines methods for inquiry-conversation data access.
// Conversion to a booking is handled transactionally by the booking
// repository; this repository never flips the status itself.
type InquiryRepository interface {
	// Create inserts a new open conversation.
	Create(ctx context.Context, conversation *models.InquiryConversation) error
	// GetByID retrieves a conversation by its unique ID.
	GetByID(ctx context.Context, id string) (*models.InquiryConversation, error)
	// ListByCustomer retrieves a customer's conversations.
	ListByCustomer(ctx context.Context, customerID string) ([]models.InquiryConversation, error)
	// ListByProvider retrieves a provider's conversations.
	ListByProvider(ctx context.Context, providerID string) ([]models.InquiryConversation, error)
}

type mongoInquiryRepo struct {
	coll *mongo.Collection
}

// NewMongoInquiryRepo returns an InquiryRepository backed by the
// "inquiry_conversations" collection.
func NewMongoInquiryRepo() InquiryRepository {
	return &mongoInquiryRepo{
		coll: database.DB().Collection("inquiry_conversations"),
	}
}
