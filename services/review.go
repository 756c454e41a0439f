package services

import (
	"strings"
	"time"

	"momo-store/models"
)

// JustNow is the display date of a freshly submitted review.
const JustNow = "Just now"

// NewReview validates a submitted review and prepares it for moderation.
// Submitted reviews are never approved on arrival.
func NewReview(in models.CreateReviewInput, now time.Time) (*models.Review, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "Name is required"}
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, &ValidationError{Field: "rating", Message: "Rating must be between 1 and 5"}
	}
	text := strings.TrimSpace(in.Review)
	if text == "" {
		return nil, &ValidationError{Field: "review", Message: "Review text is required"}
	}
	return &models.Review{
		Name:      name,
		Rating:    in.Rating,
		Review:    text,
		Avatar:    Initials(name, 2),
		Date:      JustNow,
		CreatedAt: now.UTC(),
	}, nil
}

// NewContactMessage validates a contact form submission.
func NewContactMessage(in models.CreateContactInput, now time.Time) (*models.ContactMessage, error) {
	m := &models.ContactMessage{
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: now.UTC(),
	}
	switch {
	case m.Name == "":
		return nil, &ValidationError{Field: "name", Message: "Name is required"}
	case m.Phone == "":
		return nil, &ValidationError{Field: "phone", Message: "Phone is required"}
	case m.Message == "":
		return nil, &ValidationError{Field: "message", Message: "Message is required"}
	}
	if in.Email != nil {
		if email := strings.TrimSpace(*in.Email); email != "" {
			m.Email = &email
		}
	}
	return m, nil
}
