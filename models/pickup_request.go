package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PickupStatus represents the current status of an e-waste pickup request
type PickupStatus string

const (
	PickupStatusPending   PickupStatus = "pending"
	PickupStatusAccepted  PickupStatus = "accepted"
	PickupStatusCompleted PickupStatus = "completed"
)

// AllPickupStatuses is the closed status set in its fixed enumeration order.
// Status buckets on every dashboard follow this order.
var AllPickupStatuses = []PickupStatus{PickupStatusPending, PickupStatusAccepted, PickupStatusCompleted}

// CanTransitionTo reports whether a status change is allowed. The lifecycle
// moves forward only: pending -> accepted -> completed, never backward and
// never skipping a step.
func (s PickupStatus) CanTransitionTo(next PickupStatus) bool {
	switch s {
	case PickupStatusPending:
		return next == PickupStatusAccepted
	case PickupStatusAccepted:
		return next == PickupStatusCompleted
	default:
		return false
	}
}

// TimeSlot is one of the fixed pickup windows offered by the scheduling form
type TimeSlot string

const (
	SlotMorning   TimeSlot = "9-12"
	SlotAfternoon TimeSlot = "12-3"
	SlotEvening   TimeSlot = "3-6"
)

var AllTimeSlots = []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening}

// IsValidTimeSlot checks a slot against the closed window set
func IsValidTimeSlot(slot string) bool {
	switch TimeSlot(slot) {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return true
	default:
		return false
	}
}

// DeviceTypes is the closed set of accepted device categories, in the order
// the scheduling form presents them.
var DeviceTypes = []string{
	"Smartphones & Tablets",
	"Laptops & Computers",
	"Batteries",
	"Cables & Chargers",
	"Small Appliances",
	"Other Electronic Devices",
}

// IsValidDeviceType checks a tag against the closed device-type set
func IsValidDeviceType(deviceType string) bool {
	for _, t := range DeviceTypes {
		if t == deviceType {
			return true
		}
	}
	return false
}

// PickupRequest represents a scheduled e-waste collection
type PickupRequest struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	ReferenceCode       string         `json:"reference_code" gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID              uint           `json:"user_id" gorm:"not null;index"`
	User                User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	FullName            string         `json:"full_name" gorm:"size:255;not null"`
	Phone               string         `json:"phone" gorm:"size:30;not null"`
	Email               string         `json:"email" gorm:"size:255;not null"`
	Address             string         `json:"address" gorm:"type:text;not null"`
	PickupDate          string         `json:"pickup_date" gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	PickupTime          TimeSlot       `json:"pickup_time" gorm:"type:varchar(10);not null"`
	DeviceTypes         pq.StringArray `json:"device_types" gorm:"type:text[];not null"`
	EstimatedWeight     *float64       `json:"estimated_weight" gorm:"type:decimal(10,2)"`
	SpecialInstructions string         `json:"special_instructions" gorm:"type:text"`
	Status              PickupStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AssignedCollectorID *uint          `json:"assigned_collector_id"`
	AssignedCollector   *User          `json:"assigned_collector,omitempty" gorm:"foreignKey:AssignedCollectorID"`
	AcceptedAt          *time.Time     `json:"accepted_at"`
	CompletedAt         *time.Time     `json:"completed_at"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the PickupRequest model
func (PickupRequest) TableName() string {
	return "pickup_requests"
}

// BeforeCreate is a GORM hook that stamps defaults on new requests
func (p *PickupRequest) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PickupStatusPending
	}
	if p.ReferenceCode == "" {
		p.ReferenceCode = uuid.NewString()
	}
	return nil
}

// PickupRequestCreate represents the request body for scheduling a pickup.
// Required-field presence is checked by the handler so a validation failure
// can report the full missing-field list at once.
type PickupRequestCreate struct {
	FullName            string   `json:"full_name"`
	Phone               string   `json:"phone"`
	Email               string   `json:"email"`
	Address             string   `json:"address"`
	PickupDate          string   `json:"pickup_date"`
	PickupTime          string   `json:"pickup_time"`
	DeviceTypes         []string `json:"device_types"`
	EstimatedWeight     *float64 `json:"estimated_weight"`
	SpecialInstructions string   `json:"special_instructions"`
}
