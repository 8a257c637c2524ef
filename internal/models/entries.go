package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAppointmentStatus is applied when an appointment is added without one.
const DefaultAppointmentStatus = "Upcoming"

// SavedPage is a medical information page bookmarked by the user.
type SavedPage struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	Title           string             `bson:"title" json:"title"`
	InformationType string             `bson:"informationType" json:"informationType"`
	Content         bson.M             `bson:"content" json:"content"`
	SavedAt         time.Time          `bson:"savedAt" json:"savedAt"`
}

// URL returns content.url, or "" when the page carries no string url.
func (p SavedPage) URL() string {
	url, _ := p.Content["url"].(string)
	return url
}

type NewsItem struct {
	ID      primitive.ObjectID `bson:"_id" json:"_id"`
	Title   string             `bson:"title" json:"title"`
	Source  string             `bson:"source" json:"source"`
	Date    string             `bson:"date" json:"date"`
	URL     string             `bson:"url" json:"url"`
	AddedAt time.Time          `bson:"addedAt" json:"addedAt"`
}

type Appointment struct {
	ID      primitive.ObjectID `bson:"_id" json:"_id"`
	Doctor  string             `bson:"doctor" json:"doctor"`
	Type    string             `bson:"type" json:"type"`
	Date    string             `bson:"date" json:"date"`
	Status  string             `bson:"status" json:"status"`
	AddedAt time.Time          `bson:"addedAt" json:"addedAt"`
}
