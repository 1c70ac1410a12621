package models

import (
	"time"
)

// FeedbackCategory is the closed set of feedback topics offered by the form
type FeedbackCategory string

const (
	FeedbackService         FeedbackCategory = "service"
	FeedbackPickup          FeedbackCategory = "pickup"
	FeedbackRecyclingCenter FeedbackCategory = "recycling_center"
	FeedbackApp             FeedbackCategory = "app"
	FeedbackGeneral         FeedbackCategory = "general"
)

var AllFeedbackCategories = []FeedbackCategory{
	FeedbackService, FeedbackPickup, FeedbackRecyclingCenter, FeedbackApp, FeedbackGeneral,
}

// IsValidFeedbackCategory checks a category against the closed set
func IsValidFeedbackCategory(category string) bool {
	switch FeedbackCategory(category) {
	case FeedbackService, FeedbackPickup, FeedbackRecyclingCenter, FeedbackApp, FeedbackGeneral:
		return true
	default:
		return false
	}
}

// FeedbackStatus tracks moderation progress on a feedback entry
type FeedbackStatus string

const (
	FeedbackStatusPending  FeedbackStatus = "pending"
	FeedbackStatusReviewed FeedbackStatus = "reviewed"
	FeedbackStatusResolved FeedbackStatus = "resolved"
)

// Feedback represents a user-submitted feedback entry.
// AdminResponse must be non-empty whenever Status is resolved; the update
// handler enforces this at the mutation boundary.
type Feedback struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	UserID        uint             `json:"user_id" gorm:"not null;index"`
	User          User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	FeedbackType  FeedbackCategory `json:"feedback_type" gorm:"type:varchar(30);not null"`
	Subject       string           `json:"subject" gorm:"size:255;not null"`
	Message       string           `json:"message" gorm:"type:text;not null"`
	Rating        *int             `json:"rating" gorm:"type:int;check:rating >= 1 AND rating <= 5"`
	Status        FeedbackStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminResponse *string          `json:"admin_response" gorm:"type:text"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TableName sets custom table name
func (Feedback) TableName() string { return "feedback" }

// FeedbackCreate represents the request body for submitting feedback
type FeedbackCreate struct {
	FeedbackType string `json:"feedback_type" binding:"required"`
	Subject      string `json:"subject" binding:"required,max=255"`
	Message      string `json:"message" binding:"required"`
	Rating       *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}

// FeedbackModerate represents an admin's status change on a feedback entry
type FeedbackModerate struct {
	Status        string `json:"status" binding:"required,oneof=reviewed resolved"`
	AdminResponse string `json:"admin_response"`
}
