package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soulspace-app/soulspace-backend/internal/database"
	"github.com/soulspace-app/soulspace-backend/internal/models"
)

// journalsCollection is the MongoDB collection holding journal entries.
const journalsCollection = "journal_entries"

// JournalEntryInput carries the caller-editable fields of an entry.
// The owner always comes from the authenticated session.
type JournalEntryInput struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Mood      string   `json:"mood"`
	Tags      []string `json:"tags"`
	Images    []string `json:"images"`
	VoiceNote string   `json:"voice_note"`
}

// CreateJournalEntry inserts a new entry owned by userID.
func CreateJournalEntry(ctx context.Context, userID string, in JournalEntryInput) (*models.JournalEntry, error) {
	now := time.Now()
	entry := models.JournalEntry{
		ID:           primitive.NewObjectID(),
		CreatedAt:    now,
		UpdatedAt:    now,
		UserIDString: userID,
		Title:        in.Title,
		Content:      in.Content,
		Mood:         in.Mood,
		Tags:         in.Tags,
		Images:       in.Images,
		VoiceNote:    in.VoiceNote,
	}

	if _, err := database.DB.Collection(journalsCollection).InsertOne(ctx, entry); err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}
	return &entry, nil
}

// ListJournalEntries returns the user's entries ordered by created_at
// descending, plus the total count. limit <= 0 means no limit.
func ListJournalEntries(ctx context.Context, userID string, limit, skip int) ([]models.JournalEntry, int64, error) {
	filter := bson.M{"user_id_string": userID}
	coll := database.DB.Collection(journalsCollection)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count journal entries: %w", err)
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}
	if skip > 0 {
		findOptions.SetSkip(int64(skip))
	}

	cursor, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("find journal entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.JournalEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, 0, fmt.Errorf("decode journal entries: %w", err)
	}
	return entries, total, nil
}

// CountJournalEntries returns the user's total number of entries.
func CountJournalEntries(ctx context.Context, userID string) (int64, error) {
	total, err := database.DB.Collection(journalsCollection).
		CountDocuments(ctx, bson.M{"user_id_string": userID})
	if err != nil {
		return 0, fmt.Errorf("count journal entries: %w", err)
	}
	return total, nil
}

// GetJournalEntry returns a single entry by ID, scoped to the owner.
func GetJournalEntry(ctx context.Context, userID, entryID string) (*models.JournalEntry, error) {
	oid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, fmt.Errorf("invalid entry id: %w", err)
	}

	var entry models.JournalEntry
	err = database.DB.Collection(journalsCollection).
		FindOne(ctx, bson.M{"_id": oid, "user_id_string": userID}).
		Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find journal entry: %w", err)
	}
	return &entry, nil
}

// UpdateJournalEntry replaces the editable fields of the user's entry and
// bumps updated_at. Returns the updated entry.
func UpdateJournalEntry(ctx context.Context, userID, entryID string, in JournalEntryInput) (*models.JournalEntry, error) {
	oid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, fmt.Errorf("invalid entry id: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"title":      in.Title,
		"content":    in.Content,
		"mood":       in.Mood,
		"tags":       in.Tags,
		"images":     in.Images,
		"voice_note": in.VoiceNote,
		"updated_at": time.Now(),
	}}

	res := database.DB.Collection(journalsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "user_id_string": userID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var entry models.JournalEntry
	if err := res.Decode(&entry); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("update journal entry: %w", err)
	}
	return &entry, nil
}

// DeleteJournalEntry removes the user's entry. Deleting a missing entry
// reports mongo.ErrNoDocuments.
func DeleteJournalEntry(ctx context.Context, userID, entryID string) error {
	oid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return fmt.Errorf("invalid entry id: %w", err)
	}

	res, err := database.DB.Collection(journalsCollection).
		DeleteOne(ctx, bson.M{"_id": oid, "user_id_string": userID})
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SearchJournalEntries does a case-insensitive substring match over title
// and content, newest first.
func SearchJournalEntries(ctx context.Context, userID, query string) ([]models.JournalEntry, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"user_id_string": userID,
		"$or": []bson.M{
			{"title": pattern},
			{"content": pattern},
		},
	}

	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := database.DB.Collection(journalsCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("search journal entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.JournalEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode journal entries: %w", err)
	}
	return entries, nil
}

// RecentJournalEntryTimes returns the created_at of the user's most recent
// entries (newest first), capped at limit. Feeds the streak computation.
func RecentJournalEntryTimes(ctx context.Context, userID string, limit int) ([]time.Time, error) {
	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"created_at": 1})

	cursor, err := database.DB.Collection(journalsCollection).
		Find(ctx, bson.M{"user_id_string": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find recent entries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		CreatedAt time.Time `bson:"created_at"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode recent entries: %w", err)
	}

	times := make([]time.Time, 0, len(docs))
	for _, d := range docs {
		times = append(times, d.CreatedAt)
	}
	return times, nil
}
