package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ceremo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrInquiryNotOpen is returned when the conversion transaction finds the
// inquiry conversation already converted (or missing).
var ErrInquiryNotOpen = errors.New("inquiry conversation is not open")

// CreateWithInquiryConversion inserts the booking and flips the inquiry
// conversation to converted in one multi-document transaction, so a crash
// cannot leave a booking without its converted conversation or vice versa.
func (r *MongoBookingRepo) CreateWithInquiryConversion(ctx context.Context, booking *models.Booking, inquiryID string) error {
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	booking.InquiryID = inquiryID

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{
			"id":     inquiryID,
			"status": models.InquiryStatusOpen,
		}
		update := bson.M{"$set": bson.M{
			"status":     models.InquiryStatusConverted,
			"booking_id": booking.ID,
			"updated_at": time.Now(),
		}}

		res, err := r.inquiryColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("convert inquiry failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrInquiryNotOpen
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrInquiryNotOpen) {
			return ErrInquiryNotOpen
		}
		return fmt.Errorf("inquiry conversion transaction failed: %w", err)
	}

	return nil
}
