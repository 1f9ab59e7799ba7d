package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleMother  Role = "mother"
	RoleDoctor  Role = "doctor"
	RoleMidwife Role = "midwife"
)

// User represents a user in the system (a Mother, a Doctor or a Midwife).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	RefreshToken string             `bson:"refreshToken,omitempty" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	PhoneNumber  string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Village      string             `bson:"village,omitempty" json:"village,omitempty"`
	DateOfBirth  *time.Time         `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	BloodGroup   string             `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`

	// Object key of the profile image in the S3 bucket, if one was uploaded.
	ProfileImageKey string `bson:"profileImageKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsMother() bool {
	return u.Role == RoleMother
}

func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

func (u *User) IsMidwife() bool {
	return u.Role == RoleMidwife
}
