package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleCollector UserRole = "collector"
	RoleRecycler  UserRole = "recycler"
	RoleRegulator UserRole = "regulator"
	RoleAdmin     UserRole = "admin"
)

// AllRoles is the closed role set in its fixed enumeration order.
// Dashboard role buckets follow this order.
var AllRoles = []UserRole{RoleUser, RoleCollector, RoleRecycler, RoleRegulator, RoleAdmin}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"full_name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'user';check:role IN ('user','collector','recycler','regulator','admin')"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	PickupRequests []PickupRequest `json:"pickup_requests,omitempty" gorm:"foreignKey:UserID"`
	Feedback       []Feedback      `json:"feedback,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// IsValidRole checks if the user role is inside the closed role set
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleUser, RoleCollector, RoleRecycler, RoleRegulator, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsServiceProvider reports whether the user handles e-waste on the
// platform's behalf (collectors pick up, recyclers process).
func (u *User) IsServiceProvider() bool {
	return u.Role == RoleCollector || u.Role == RoleRecycler
}
