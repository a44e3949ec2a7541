package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/codecampus/backend/internal/models"
)

// SubscriptionRepository is the interface that wraps methods for Subscription table data access
type SubscriptionRepository interface {
	// Create inserts a new newsletter subscription
	Create(ctx context.Context, subscription *models.Subscription) error
	// ExistsByEmail checks if the email is already subscribed
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ContactMessageRepository is the interface that wraps methods for ContactMessage table data access
type ContactMessageRepository interface {
	// Create inserts a new contact message
	Create(ctx context.Context, message *models.ContactMessage) error
}

type outreachService struct {
	subscriptionRepo SubscriptionRepository
	contactRepo      ContactMessageRepository
}

// NewOutreachService creates a new outreach service
func NewOutreachService(subscriptionRepo SubscriptionRepository, contactRepo ContactMessageRepository) *outreachService {
	return &outreachService{
		subscriptionRepo: subscriptionRepo,
		contactRepo:      contactRepo,
	}
}

// Subscribe signs an email up for the newsletter. Subscribing the same email
// twice is a validation error.
func (s *outreachService) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscription, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", models.ErrValidation)
	}

	exists, err := s.subscriptionRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email already subscribed", models.ErrValidation)
	}

	subscription := &models.Subscription{Email: email}
	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return subscription, nil
}

// SendContactMessage stores a contact form submission
func (s *outreachService) SendContactMessage(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, error) {
	name := strings.TrimSpace(req.Name)
	subject := strings.TrimSpace(req.Subject)
	body := strings.TrimSpace(req.Message)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if name == "" || subject == "" || body == "" {
		return nil, fmt.Errorf("%w: name, subject and message are required", models.ErrValidation)
	}
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", models.ErrValidation)
	}

	message := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: body,
	}
	if err := s.contactRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}

	return message, nil
}
