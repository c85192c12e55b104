package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email" validate:"required,email"`
	Password       string             `bson:"password" json:"-" validate:"required,min=6"`
	Role           string             `bson:"role" json:"role" validate:"omitempty,oneof=guest host admin"`
	FirstName      string             `bson:"first_name" json:"firstName" validate:"required"`
	LastName       string             `bson:"last_name" json:"lastName" validate:"required"`
	ProfilePicture string             `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty" validate:"omitempty,e164"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Languages      []string           `bson:"languages,omitempty" json:"languages,omitempty"`
	DeviceToken    string             `bson:"device_token,omitempty" json:"-"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}
