package handlers_test

import (
	"context"
	"mime/multipart"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/health-record-api/internal/models"
	"github.com/harentsoaR/health-record-api/internal/store"
)

// memStore mirrors store.UserStore semantics in memory.
type memStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
	err   error // returned by every call when set
}

func newMemStore() *memStore {
	return &memStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (m *memStore) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return store.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.User{}, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (m *memStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.get(id)
	if err != nil {
		return models.User{}, err
	}
	cp := *u
	cp.Password = ""
	return cp, nil
}

func (m *memStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.get(id)
	if err != nil {
		return models.User{}, err
	}
	if update.Email != nil {
		for otherID, other := range m.users {
			if otherID != id && other.Email == *update.Email {
				return models.User{}, store.ErrDuplicateEmail
			}
		}
	}
	applyUpdate(u, update)
	u.UpdatedAt = time.Now()
	cp := *u
	cp.Password = ""
	return cp, nil
}

func (m *memStore) AddSavedPage(ctx context.Context, id primitive.ObjectID, page models.SavedPage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.get(id)
	if err != nil {
		return err
	}
	if url := page.URL(); url != "" {
		for _, p := range u.SavedData {
			if p.URL() == url {
				return store.ErrDuplicateEntry
			}
		}
	}
	u.SavedData = append(u.SavedData, page)
	return nil
}

func (m *memStore) SavedPages(ctx context.Context, id primitive.ObjectID) ([]models.SavedPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return append([]models.SavedPage(nil), u.SavedData...), nil
}

func (m *memStore) RemoveSavedPage(ctx context.Context, id, pageID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.get(id)
	if err != nil {
		return false, err
	}
	var removed bool
	u.SavedData, removed = without(u.SavedData, func(p models.SavedPage) bool { return p.ID == pageID })
	return removed, nil
}

func (m *memStore) AddNews(ctx context.Context, id primitive.ObjectID, item models.NewsItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.get(id)
	if err != nil {
		return err
	}
	u.NewsHistory = append(u.NewsHistory, item)
	return nil
}

func (m *memStore) News(ctx context.Context, id primitive.ObjectID) ([]models.NewsItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return append([]models.NewsItem(nil), u.NewsHistory...), nil
}

func (m *memStore) RemoveNews(ctx context.Context, id, itemID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.get(id)
	if err != nil {
		return false, err
	}
	var removed bool
	u.NewsHistory, removed = without(u.NewsHistory, func(n models.NewsItem) bool { return n.ID == itemID })
	return removed, nil
}

func (m *memStore) AddAppointment(ctx context.Context, id primitive.ObjectID, apt models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.get(id)
	if err != nil {
		return err
	}
	u.AppointmentHistory = append(u.AppointmentHistory, apt)
	return nil
}

func (m *memStore) Appointments(ctx context.Context, id primitive.ObjectID) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return append([]models.Appointment(nil), u.AppointmentHistory...), nil
}

func (m *memStore) RemoveAppointment(ctx context.Context, id, aptID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.get(id)
	if err != nil {
		return false, err
	}
	var removed bool
	u.AppointmentHistory, removed = without(u.AppointmentHistory, func(a models.Appointment) bool { return a.ID == aptID })
	return removed, nil
}

func (m *memStore) get(id primitive.ObjectID) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (m *memStore) delete(id primitive.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

func without[T any](items []T, match func(T) bool) ([]T, bool) {
	out := items[:0:0]
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out, len(out) != len(items)
}

// memImages records uploads instead of writing them anywhere.
type memImages struct {
	mu      sync.Mutex
	saved   []string
	removed []string
	err     error
}

func (m *memImages) SaveProfileImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	ref := "/uploads/profile-" + file.Filename
	m.saved = append(m.saved, ref)
	return ref, nil
}

func (m *memImages) RemoveProfileImage(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, ref)
	return nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []models.Appointment
	users []string
}

func (n *recordingNotifier) SendAppointmentConfirmationSMS(user *models.User, apt *models.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, *apt)
	n.users = append(n.users, user.FullName)
}

// applyUpdate copies the fields the update would $set onto u.
func applyUpdate(u *models.User, update models.ProfileUpdate) {
	targets := map[string]*string{
		"fullName": &u.FullName, "email": &u.Email, "phone": &u.Phone,
		"address": &u.Address, "gender": &u.Gender, "dob": &u.DOB,
		"bloodType": &u.BloodType, "height": &u.Height, "weight": &u.Weight,
		"allergies": &u.Allergies, "conditions": &u.Conditions, "profileImg": &u.ProfileImg,
	}
	for name, v := range update.Set() {
		*targets[name] = v.(string)
	}
}
