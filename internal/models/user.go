package models

import "time"

// User augments the external identity-provider account with the profile
// fields this shop needs. Phone and address are captured lazily at the first
// checkout.
type User struct {
	UID       string    `bson:"uid" json:"uid"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string    `bson:"address,omitempty" json:"address,omitempty"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
