package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/health-record-api/internal/models"
)

const usersCollection = "users"

// Sub-list field names inside the user document.
const (
	savedDataField          = "savedData"
	newsHistoryField        = "newsHistory"
	appointmentHistoryField = "appointmentHistory"
)

var withoutPassword = bson.M{"password": 0}

// UserStore persists users and their embedded lists in a single collection.
type UserStore struct {
	users *mongo.Collection
	now   func() time.Time
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{users: db.Collection(usersCollection), now: time.Now}
}

// EnsureIndexes creates the unique email index.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// Create inserts a new user, assigning an id and empty lists.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.SavedData == nil {
		user.SavedData = []models.SavedPage{}
	}
	if user.NewsHistory == nil {
		user.NewsHistory = []models.NewsItem{}
	}
	if user.AppointmentHistory == nil {
		user.AppointmentHistory = []models.Appointment{}
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail returns the full user, password hash included.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return models.User{}, notFound(err, "find user by email")
	}
	return user, nil
}

// FindByID returns the user without the password hash.
func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	opts := options.FindOne().SetProjection(withoutPassword)
	err := s.users.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user)
	if err != nil {
		return models.User{}, notFound(err, "find user by id")
	}
	return user, nil
}

// UpdateProfile writes only the fields present in update and returns the
// resulting document without the password hash.
func (s *UserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (models.User, error) {
	set := update.Set()
	set["updatedAt"] = s.now()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var user models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, notFound(err, "update profile")
	}
	return user, nil
}

// AddSavedPage appends page unless an entry with the same content.url exists.
// The duplicate check and the append happen in one conditional update.
func (s *UserStore) AddSavedPage(ctx context.Context, id primitive.ObjectID, page models.SavedPage) error {
	filter := bson.M{"_id": id}
	if url := page.URL(); url != "" {
		filter[savedDataField+".content.url"] = bson.M{"$ne": url}
	}

	res, err := s.users.UpdateOne(ctx, filter, bson.M{"$push": bson.M{savedDataField: page}})
	if err != nil {
		return fmt.Errorf("push saved page: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	exists, err := s.exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateEntry
	}
	return ErrNotFound
}

func (s *UserStore) SavedPages(ctx context.Context, id primitive.ObjectID) ([]models.SavedPage, error) {
	user, err := s.list(ctx, id, savedDataField)
	return user.SavedData, err
}

func (s *UserStore) RemoveSavedPage(ctx context.Context, id, pageID primitive.ObjectID) (bool, error) {
	return s.pull(ctx, id, savedDataField, pageID)
}

func (s *UserStore) AddNews(ctx context.Context, id primitive.ObjectID, item models.NewsItem) error {
	return s.push(ctx, id, newsHistoryField, item)
}

func (s *UserStore) News(ctx context.Context, id primitive.ObjectID) ([]models.NewsItem, error) {
	user, err := s.list(ctx, id, newsHistoryField)
	return user.NewsHistory, err
}

func (s *UserStore) RemoveNews(ctx context.Context, id, itemID primitive.ObjectID) (bool, error) {
	return s.pull(ctx, id, newsHistoryField, itemID)
}

func (s *UserStore) AddAppointment(ctx context.Context, id primitive.ObjectID, apt models.Appointment) error {
	return s.push(ctx, id, appointmentHistoryField, apt)
}

func (s *UserStore) Appointments(ctx context.Context, id primitive.ObjectID) ([]models.Appointment, error) {
	user, err := s.list(ctx, id, appointmentHistoryField)
	return user.AppointmentHistory, err
}

func (s *UserStore) RemoveAppointment(ctx context.Context, id, aptID primitive.ObjectID) (bool, error) {
	return s.pull(ctx, id, appointmentHistoryField, aptID)
}

func (s *UserStore) push(ctx context.Context, id primitive.ObjectID, field string, entry any) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{field: entry}})
	if err != nil {
		return fmt.Errorf("push %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// pull removes the entry with entryID and reports whether one was removed.
func (s *UserStore) pull(ctx context.Context, id primitive.ObjectID, field string, entryID primitive.ObjectID) (bool, error) {
	update := bson.M{"$pull": bson.M{field: bson.M{"_id": entryID}}}
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, fmt.Errorf("pull %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

// list loads only one sub-list field of the user.
func (s *UserStore) list(ctx context.Context, id primitive.ObjectID, field string) (models.User, error) {
	var user models.User
	opts := options.FindOne().SetProjection(bson.M{field: 1})
	if err := s.users.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user); err != nil {
		return models.User{}, notFound(err, "load "+field)
	}
	return user, nil
}

func (s *UserStore) exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count user: %w", err)
	}
	return n > 0, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
