package impl

import (
	"context"
	"strings"
	"sync"
	"time"

	"campusevents/internal/domain"
	"campusevents/internal/store"
)

// In-memory store used by the service tests. WithTx snapshots state up front
// and restores it when fn fails, matching the rollback the real store gives
// us. Holding the mutex for the whole transaction serializes concurrent
// callers the same way row locks do.

type regKey struct {
	email   string
	eventID int64
}

type memoryStore struct {
	mu          sync.Mutex
	users       map[string]*domain.User
	events      map[int64]*domain.Event
	regs        map[regKey]time.Time
	nextEventID int64
}

type storeSnapshot struct {
	users  map[string]*domain.User
	events map[int64]*domain.Event
	regs   map[regKey]time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:  make(map[string]*domain.User),
		events: make(map[int64]*domain.Event),
		regs:   make(map[regKey]time.Time),
	}
}

func (m *memoryStore) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.snapshot()
	tx := &memoryTx{store: m}
	if err := fn(tx); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

func (m *memoryStore) snapshot() storeSnapshot {
	users := make(map[string]*domain.User, len(m.users))
	for email, u := range m.users {
		copy := *u
		users[email] = &copy
	}
	events := make(map[int64]*domain.Event, len(m.events))
	for id, e := range m.events {
		copy := *e
		events[id] = &copy
	}
	regs := make(map[regKey]time.Time, len(m.regs))
	for k, v := range m.regs {
		regs[k] = v
	}
	return storeSnapshot{users: users, events: events, regs: regs}
}

func (m *memoryStore) restore(s storeSnapshot) {
	m.users = s.users
	m.events = s.events
	m.regs = s.regs
}

func (m *memoryStore) userByEmail(email string) (*domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, false
	}
	copy := *u
	return &copy, true
}

func (m *memoryStore) eventByID(id int64) (*domain.Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, false
	}
	copy := *e
	return &copy, true
}

func (m *memoryStore) registered(email string, eventID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.regs[regKey{email: email, eventID: eventID}]
	return ok
}

type memoryTx struct {
	store *memoryStore
}

func (m *memoryTx) Users() userStore { return &memoryUserStore{store: m.store} }

func (m *memoryTx) Events() eventStore { return &memoryEventStore{store: m.store} }

func (m *memoryTx) Registrations() registrationStore { return &memoryRegistrationStore{store: m.store} }

type memoryUserStore struct {
	store *memoryStore
}

func (u *memoryUserStore) Create(ctx context.Context, usr *domain.User) error {
	if _, exists := u.store.users[usr.Email]; exists {
		return store.ErrDuplicateKey
	}
	copy := *usr
	u.store.users[usr.Email] = &copy
	return nil
}

func (u *memoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	usr, ok := u.store.users[email]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	copy := *usr
	return &copy, nil
}

func (u *memoryUserStore) SetVerified(ctx context.Context, email string) error {
	usr, ok := u.store.users[email]
	if !ok {
		return store.ErrRecordNotFound
	}
	usr.IsVerified = true
	return nil
}

func (u *memoryUserStore) SetVerificationCode(ctx context.Context, email string, code *string, expiry *time.Time) error {
	usr, ok := u.store.users[email]
	if !ok {
		return store.ErrRecordNotFound
	}
	usr.VerificationCode = code
	usr.VerificationExpiry = expiry
	return nil
}

func (u *memoryUserStore) SetResetCode(ctx context.Context, email string, code *string, expiry *time.Time) error {
	usr, ok := u.store.users[email]
	if !ok {
		return store.ErrRecordNotFound
	}
	usr.ResetCode = code
	usr.ResetExpiry = expiry
	return nil
}

func (u *memoryUserStore) SetPasswordHash(ctx context.Context, email, hash string) error {
	usr, ok := u.store.users[email]
	if !ok {
		return store.ErrRecordNotFound
	}
	usr.PasswordHash = hash
	return nil
}

type memoryEventStore struct {
	store *memoryStore
}

func (e *memoryEventStore) Create(ctx context.Context, evt *domain.Event) error {
	e.store.nextEventID++
	evt.ID = e.store.nextEventID
	copy := *evt
	e.store.events[evt.ID] = &copy
	return nil
}

func (e *memoryEventStore) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	evt, ok := e.store.events[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	copy := *evt
	return &copy, nil
}

func (e *memoryEventStore) List(ctx context.Context) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(e.store.events))
	for _, evt := range e.store.events {
		out = append(out, *evt)
	}
	return out, nil
}

func (e *memoryEventStore) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	evt, ok := e.store.events[id]
	if !ok {
		return store.ErrRecordNotFound
	}
	for col, val := range fields {
		switch col {
		case "title":
			evt.Title = val.(string)
		case "description":
			evt.Description = val.(string)
		case "date":
			d := val.(time.Time)
			evt.Date = &d
		case "location":
			evt.Location = val.(string)
		case "category":
			evt.Category = val.(string)
		case "organizers":
			evt.Organizers = val.(domain.StringList)
		case "speakers":
			evt.Speakers = val.(domain.StringList)
		case "updated_at":
			evt.UpdatedAt = val.(time.Time)
		}
	}
	return nil
}

func (e *memoryEventStore) ApplyCapacity(ctx context.Context, id int64, newCapacity int) error {
	evt, ok := e.store.events[id]
	if !ok {
		return store.ErrRecordNotFound
	}
	if newCapacity > evt.Capacity {
		evt.AvailableSeats += newCapacity - evt.Capacity
	} else if evt.AvailableSeats > newCapacity {
		evt.AvailableSeats = newCapacity
	}
	evt.Capacity = newCapacity
	return nil
}

func (e *memoryEventStore) SetImageURL(ctx context.Context, id int64, url string) error {
	evt, ok := e.store.events[id]
	if !ok {
		return store.ErrRecordNotFound
	}
	evt.ImageURL = url
	return nil
}

func (e *memoryEventStore) Delete(ctx context.Context, id int64) error {
	for k := range e.store.regs {
		if k.eventID == id {
			delete(e.store.regs, k)
		}
	}
	delete(e.store.events, id)
	return nil
}

type memoryRegistrationStore struct {
	store *memoryStore
}

func (r *memoryRegistrationStore) Add(ctx context.Context, email string, eventID int64) error {
	k := regKey{email: email, eventID: eventID}
	if _, exists := r.store.regs[k]; exists {
		return store.ErrDuplicateKey
	}
	r.store.regs[k] = time.Now().UTC()
	return nil
}

func (r *memoryRegistrationStore) Remove(ctx context.Context, email string, eventID int64) (bool, error) {
	k := regKey{email: email, eventID: eventID}
	if _, exists := r.store.regs[k]; !exists {
		return false, nil
	}
	delete(r.store.regs, k)
	return true, nil
}

func (r *memoryRegistrationStore) ReserveSeat(ctx context.Context, eventID int64) (bool, error) {
	evt, ok := r.store.events[eventID]
	if !ok {
		return false, store.ErrRecordNotFound
	}
	if evt.AvailableSeats <= 0 {
		return false, nil
	}
	evt.AvailableSeats--
	return true, nil
}

func (r *memoryRegistrationStore) ReleaseSeat(ctx context.Context, eventID int64) error {
	evt, ok := r.store.events[eventID]
	if !ok {
		return store.ErrRecordNotFound
	}
	if evt.AvailableSeats < evt.Capacity {
		evt.AvailableSeats++
	}
	return nil
}

func (r *memoryRegistrationStore) ListEventsForUser(ctx context.Context, email, search string) ([]domain.Event, error) {
	needle := strings.ToLower(search)
	var out []domain.Event
	for k := range r.store.regs {
		if k.email != email {
			continue
		}
		evt, ok := r.store.events[k.eventID]
		if !ok {
			continue
		}
		if needle != "" {
			haystack := strings.ToLower(evt.Title + " " + evt.Location + " " + evt.Description)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		out = append(out, *evt)
	}
	return out, nil
}
