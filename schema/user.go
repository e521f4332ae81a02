package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserCollection = "users"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleDoctor Role = "doctor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// User is the account that owns reports. Doctors are the field staff
// allowed to run triage.
type User struct {
	ID        primitive.ObjectID   `json:"_id" bson:"_id"`
	UserID    string               `json:"userId" bson:"userId"`
	Email     string               `json:"email" bson:"email"`
	FirstName string               `json:"firstName" bson:"firstName"`
	LastName  string               `json:"lastName" bson:"lastName"`
	Role      Role                 `json:"role" bson:"role"`
	Status    UserStatus           `json:"status" bson:"status"`
	Reports   []primitive.ObjectID `json:"reports" bson:"reports"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
}
