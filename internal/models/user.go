package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"fullName" json:"fullName"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password,omitempty" json:"-"` // bcrypt hash, hidden from JSON responses
	Phone      string             `bson:"phone" json:"phone"`
	Address    string             `bson:"address" json:"address"`
	Gender     string             `bson:"gender" json:"gender"`
	DOB        string             `bson:"dob" json:"dob"`
	ProfileImg string             `bson:"profileImg" json:"profileImg"`

	// Medical fields
	BloodType  string `bson:"bloodType" json:"bloodType"`
	Height     string `bson:"height" json:"height"`
	Weight     string `bson:"weight" json:"weight"`
	Allergies  string `bson:"allergies" json:"allergies"`
	Conditions string `bson:"conditions" json:"conditions"`

	SavedData          []SavedPage   `bson:"savedData" json:"savedData"`
	NewsHistory        []NewsItem    `bson:"newsHistory" json:"newsHistory"`
	AppointmentHistory []Appointment `bson:"appointmentHistory" json:"appointmentHistory"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is what login hands back next to the token.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID.Hex(), Name: u.FullName, Email: u.Email}
}
