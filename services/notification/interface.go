package notification

import (
	"context"
	"fmt"

	providerRepo "ceremo/database/repository/provider"
	userRepo "ceremo/database/repository/user"
	"ceremo/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService delivers fire-and-forget pushes for lifecycle
// transitions. Delivery failures are the caller's to log, never to act on;
// notifications are a convenience, not a correctness mechanism.
type NotificationService interface {
	NotifyCustomer(ctx context.Context, customerID, event, title, body string, data map[string]string) error
	NotifyProvider(ctx context.Context, providerID, event, title, body string, data map[string]string) error
}

// DefaultNotificationService is the FCM-backed production implementation.
type DefaultNotificationService struct {
	users     userRepo.UserRepository
	providers providerRepo.ProviderRepository
}

func NewDefaultNotificationService(
	users userRepo.UserRepository,
	providers providerRepo.ProviderRepository,
) (*DefaultNotificationService, error) {
	if users == nil || providers == nil {
		return nil, fmt.Errorf("notification service initialization error: user or provider repository is nil")
	}
	return &DefaultNotificationService{
		users:     users,
		providers: providers,
	}, nil
}

// NotifyCustomer looks up the customer's FCM token and sends a push.
func (s *DefaultNotificationService) NotifyCustomer(
	ctx context.Context,
	customerID, event, title, body string,
	data map[string]string,
) error {
	u, err := s.users.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("NotifyCustomer: could not find user %s: %w", customerID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("NotifyCustomer: user %s has no FCM token", customerID)
	}

	return send(ctx, u.FCMToken, event, title, body, withRole(data, "customer"))
}

// NotifyProvider looks up the provider's FCM token and sends a push.
func (s *DefaultNotificationService) NotifyProvider(
	ctx context.Context,
	providerID, event, title, body string,
	data map[string]string,
) error {
	p, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		return fmt.Errorf("NotifyProvider: could not find provider %s: %w", providerID, err)
	}
	if p.FCMToken == "" {
		return fmt.Errorf("NotifyProvider: provider %s has no FCM token", providerID)
	}

	return send(ctx, p.FCMToken, event, title, body, withRole(data, "provider"))
}

func withRole(data map[string]string, role string) map[string]string {
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = role
	}
	return data
}

func send(ctx context.Context, token, event, title, body string, data map[string]string) error {
	data["event"] = event

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
