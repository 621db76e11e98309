package inquiryRepo

import (
	"context"
	"fmt"
	"time"

	"ceremo/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new open conversation.
func (r *mongoInquiryRepo) Create(ctx context.Context, conversation *models.InquiryConversation) error {
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}
	conversation.Status = models.InquiryStatusOpen
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt

	if _, err := r.coll.InsertOne(ctx, conversation); err != nil {
		return fmt.Errorf("failed to create inquiry conversation: %w", err)
	}
	return nil
}

// GetByID retrieves a conversation by its unique ID.
func (r *mongoInquiryRepo) GetByID(ctx context.Context, id string) (*models.InquiryConversation, error) {
	var conversation models.InquiryConversation
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&conversation)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inquiry conversation %s: %w", id, err)
	}
	return &conversation, nil
}

// ListByCustomer fetches a customer's conversations, newest first.
func (r *mongoInquiryRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.InquiryConversation, error) {
	return r.list(ctx, bson.M{"customer_id": customerID})
}

// ListByProvider fetches a provider's conversations, newest first.
func (r *mongoInquiryRepo) ListByProvider(ctx context.Context, providerID string) ([]models.InquiryConversation, error) {
	return r.list(ctx, bson.M{"provider_id": providerID})
}

func (r *mongoInquiryRepo) list(ctx context.Context, filter bson.M) ([]models.InquiryConversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiry conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var conversations []models.InquiryConversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, fmt.Errorf("failed to decode inquiry conversations: %w", err)
	}
	return conversations, nil
}
