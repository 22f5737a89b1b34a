package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles assignable to a user account. New signups always start as staff.
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Account statuses. Inactive staff keep their history but no longer appear active.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User is a staff or admin account. The password hash is never serialized.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status" json:"status"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// SignupRequest is the payload for creating a new staff account.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest carries the credentials plus the role the client claims to hold.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// ChangeStatusRequest toggles a staff account between active and inactive.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
