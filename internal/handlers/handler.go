package handlers

import (
	"context"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/health-record-api/internal/models"
)

// UserStore is the persistence the handlers need. *store.UserStore satisfies it.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (models.User, error)

	AddSavedPage(ctx context.Context, id primitive.ObjectID, page models.SavedPage) error
	SavedPages(ctx context.Context, id primitive.ObjectID) ([]models.SavedPage, error)
	RemoveSavedPage(ctx context.Context, id, pageID primitive.ObjectID) (bool, error)

	AddNews(ctx context.Context, id primitive.ObjectID, item models.NewsItem) error
	News(ctx context.Context, id primitive.ObjectID) ([]models.NewsItem, error)
	RemoveNews(ctx context.Context, id, itemID primitive.ObjectID) (bool, error)

	AddAppointment(ctx context.Context, id primitive.ObjectID, apt models.Appointment) error
	Appointments(ctx context.Context, id primitive.ObjectID) ([]models.Appointment, error)
	RemoveAppointment(ctx context.Context, id, aptID primitive.ObjectID) (bool, error)
}

// ImageStore keeps uploaded profile images. *storage.Storage satisfies it.
type ImageStore interface {
	SaveProfileImage(ctx context.Context, file *multipart.FileHeader) (string, error)
	RemoveProfileImage(ctx context.Context, ref string) error
}

// Notifier is told about new appointments. May be nil.
type Notifier interface {
	SendAppointmentConfirmationSMS(user *models.User, apt *models.Appointment)
}

type Handler struct {
	DB              UserStore
	Images          ImageStore
	NotificationSvc Notifier
	JWTSecret       []byte

	now func() time.Time
}

func NewHandler(db UserStore, images ImageStore, notificationSvc Notifier, jwtSecret string) *Handler {
	return &Handler{
		DB:              db,
		Images:          images,
		NotificationSvc: notificationSvc,
		JWTSecret:       []byte(jwtSecret),
		now:             time.Now,
	}
}

// SetClock replaces the time source used for list timestamps.
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

// timestamp is the current time at the millisecond precision BSON stores.
func (h *Handler) timestamp() time.Time {
	return h.now().UTC().Truncate(time.Millisecond)
}
