package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalEntry represents a private journal entry for a user.
// Images and the optional voice note are stored in-band (data URIs or
// Cloudinary URLs); ordering of images is preserved as written.
type JournalEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
	UserIDString string             `bson:"user_id_string,omitempty" json:"user_id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Content      string             `bson:"content" json:"content"`
	Mood         string             `bson:"mood,omitempty" json:"mood,omitempty"`
	Tags         []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Images       []string           `bson:"images,omitempty" json:"images,omitempty"`
	VoiceNote    string             `bson:"voice_note,omitempty" json:"voice_note,omitempty"`
}
